package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/vertextrade/storefront/svc/catalog"
)

// Catalog renders the product grid in the order given.
func Catalog(products []catalog.Product) templ.Component {
	return component(func(h *html) {
		h.raw(`<div class="container mx-auto p-4"><div id="catalog" class="grid grid-cols-1 sm:grid-cols-2 md:grid-cols-3 lg:grid-cols-4 gap-6">`)
		for _, p := range products {
			h.render(ProductCard(p))
		}
		h.raw(`</div></div>`)
	})
}

func ProductCard(p catalog.Product) templ.Component {
	return component(func(h *html) {
		h.raw(`<article id="product-`).raw(strconv.FormatInt(p.ID, 10)).
			raw(`" class="border rounded-lg shadow-sm hover:shadow-lg transition-shadow duration-300 bg-white">`).
			raw(`<img src="`).url(p.ImageURL).raw(`" alt="`).text(p.Name).
			raw(`" class="w-full h-48 object-cover rounded-t-lg">`).
			raw(`<div class="p-4"><h2 class="text-lg font-semibold text-gray-800 truncate">`).text(p.Name).raw(`</h2>`).
			raw(`<p class="text-2xl font-bold text-gray-900 mt-2">`).text(p.FormattedPrice()).raw(`</p>`).
			raw(`</div></article>`)
	})
}
