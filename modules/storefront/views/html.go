package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// html accumulates markup and keeps the first write error.
type html struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTML(ctx context.Context, w io.Writer) *html {
	return &html{ctx: ctx, w: w}
}

func (h *html) raw(s string) *html {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
	return h
}

func (h *html) text(s string) *html {
	return h.raw(templ.EscapeString(s))
}

func (h *html) url(s string) *html {
	return h.text(string(templ.URL(s)))
}

func (h *html) render(c templ.Component) *html {
	if h.err == nil && c != nil {
		h.err = c.Render(h.ctx, h.w)
	}
	return h
}

func component(fn func(h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTML(ctx, w)
		fn(h)
		return h.err
	})
}
