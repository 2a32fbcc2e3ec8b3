package handler

import (
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

type redirectResponse struct {
	url  string
	code int
}

func (r redirectResponse) Render(w http.ResponseWriter, req *http.Request) error {
	if IsDataStar(req) {
		return datastar.NewSSE(w, req).Redirect(r.url)
	}
	http.Redirect(w, req, r.url, r.code)
	return nil
}

// Redirect answers 303 See Other, or a client-side redirect for DataStar
// requests.
func Redirect(url string) Response {
	return redirectResponse{url: url, code: http.StatusSeeOther}
}
