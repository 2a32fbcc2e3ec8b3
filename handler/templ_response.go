package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// TemplComponent matches templ.Component.
type TemplComponent interface {
	Render(ctx context.Context, w io.Writer) error
}

// TemplOption controls how a component is patched into the page.
type TemplOption = datastar.PatchElementOption

// WithTarget sets the CSS selector the component is patched into.
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

// WithPatchMode sets how the component is merged into the DOM.
func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

type templResponse struct {
	partial TemplComponent
	full    TemplComponent
	status  int
	options []TemplOption
}

func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return datastar.NewSSE(w, r).PatchElementTempl(t.partial, t.options...)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if t.status != 0 {
		w.WriteHeader(t.status)
	}
	return t.full.Render(r.Context(), w)
}

// Templ renders component as HTML, or as an element patch for DataStar
// requests.
func Templ(component TemplComponent, opts ...TemplOption) Response {
	return templResponse{partial: component, full: component, options: opts}
}

// TemplStatus is Templ with an explicit status code for plain HTML
// responses. Event streams always answer 200.
func TemplStatus(status int, component TemplComponent, opts ...TemplOption) Response {
	return templResponse{partial: component, full: component, status: status, options: opts}
}

// TemplPartial sends only partial to DataStar requests and the whole page
// to everything else, so forms keep working without JavaScript.
func TemplPartial(partial, full TemplComponent, opts ...TemplOption) Response {
	return templResponse{partial: partial, full: full, options: opts}
}
