package handler

import (
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

const (
	// DataStarRequestHeader is set by the DataStar client on every action.
	DataStarRequestHeader = "Datastar-Request"
	// DataStarAcceptHeader is the Accept value used for SSE requests.
	DataStarAcceptHeader = "text/event-stream"
	// DataStarQueryParam carries signals on GET requests.
	DataStarQueryParam = "datastar"
)

const (
	PatchOuter   = datastar.ElementPatchModeOuter
	PatchInner   = datastar.ElementPatchModeInner
	PatchReplace = datastar.ElementPatchModeReplace
	PatchAppend  = datastar.ElementPatchModeAppend
	PatchPrepend = datastar.ElementPatchModePrepend
)

// IsDataStar reports whether r came from the DataStar client and expects an
// event stream back.
func IsDataStar(r *http.Request) bool {
	if r.Header.Get(DataStarRequestHeader) == "true" {
		return true
	}
	if strings.Contains(r.Header.Get("Accept"), DataStarAcceptHeader) {
		return true
	}
	return r.URL.Query().Has(DataStarQueryParam)
}
