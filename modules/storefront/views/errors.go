package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/vertextrade/storefront/handler"
)

// ErrorPage is the body shown for failed plain-HTML requests.
func ErrorPage(p handler.ErrorPageParams) templ.Component {
	body := component(func(h *html) {
		h.raw(`<div class="container mx-auto p-4 text-center">`).
			raw(`<h2 class="text-3xl font-bold mb-4">`).raw(strconv.Itoa(p.StatusCode)).raw(`</h2>`).
			raw(`<p class="text-gray-700">`).text(p.Message).raw(`</p>`)
		if p.RequestID != "" {
			h.raw(`<p class="text-gray-400 text-xs mt-4">ID: `).text(p.RequestID).raw(`</p>`)
		}
		h.raw(`<a href="/" class="text-blue-500 mt-6 inline-block">Volver al catálogo</a></div>`)
	})
	return Layout(LayoutParams{Title: "Error"}, body)
}

// ErrorToast is patched into #toast for failed DataStar requests.
func ErrorToast(p handler.ErrorToastParams) templ.Component {
	return component(func(h *html) {
		h.raw(`<div class="fixed top-4 right-4 bg-red-500 text-white px-4 py-2 rounded shadow">`).text(p.Message).raw(`</div>`)
	})
}
