package binder

import (
	"fmt"
	"mime"
	"net/http"
	"strings"
)

// DefaultMaxMemory caps memory used when parsing multipart forms.
const DefaultMaxMemory = 1 << 20

// Form binds application/x-www-form-urlencoded and multipart/form-data
// bodies to struct fields tagged `form:"name"`. Requests without a body
// (GET, HEAD, DELETE) yield ErrBinderNotApplicable.
//
//	type Credentials struct {
//		Email    string `form:"email"`
//		Password string `form:"password"`
//	}
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodDelete:
			return ErrBinderNotApplicable
		}

		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: expected a form body", ErrMissingContentType)
		}
		mediaType, params, err := mime.ParseMediaType(contentType)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}

		var values map[string][]string
		switch {
		case mediaType == "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = r.PostForm

		case strings.HasPrefix(mediaType, "multipart/form-data"):
			if params["boundary"] == "" {
				return fmt.Errorf("%w: missing boundary in content type", ErrInvalidForm)
			}
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			values = r.MultipartForm.Value

		default:
			return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
		}

		return bindToStruct(v, "form", values, ErrInvalidForm)
	}
}
