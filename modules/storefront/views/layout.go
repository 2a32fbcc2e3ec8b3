package views

import (
	"github.com/a-h/templ"

	"github.com/vertextrade/storefront/pkg/backend"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.5/bundles/datastar.js"

// LayoutParams is the data shared by every page.
type LayoutParams struct {
	Title   string
	Session *backend.Session
}

// Layout is the page shell: header with the live navigation bar and the
// page body in <main>.
func Layout(p LayoutParams, body templ.Component) templ.Component {
	return component(func(h *html) {
		h.raw(`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8">`).
			raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`).
			raw(`<title>`).text(title(p.Title)).raw(`</title>`).
			raw(`<script src="https://cdn.tailwindcss.com"></script>`).
			raw(`<script type="module" src="`).text(datastarScript).raw(`"></script>`).
			raw(`</head><body class="bg-gray-100 min-h-screen">`).
			raw(`<header class="bg-white shadow-md"><div class="container mx-auto p-4 flex justify-between items-center">`).
			raw(`<a href="/" class="text-3xl font-bold text-gray-800">Vertex Trade</a>`).
			render(Nav(p.Session)).
			raw(`</div></header>`).
			raw(`<div data-on-load="@get('/session/stream')"></div>`).
			raw(`<div id="toast"></div>`).
			raw(`<main>`).render(body).raw(`</main>`).
			raw(`</body></html>`)
	})
}

func title(page string) string {
	if page == "" {
		return "Vertex Trade"
	}
	return page + " | Vertex Trade"
}

// Nav shows the signed-in user's email with a logout button, or the login
// and registration links. Its id lets the session stream replace it.
func Nav(session *backend.Session) templ.Component {
	return component(func(h *html) {
		h.raw(`<nav id="nav">`)
		if session != nil {
			h.raw(`<div class="flex items-center gap-4">`).
				raw(`<span class="text-gray-700">`).text(session.Email()).raw(`</span>`).
				raw(`<form method="post" action="/logout" data-on-submit="@post('/logout', {contentType: 'form'})">`).
				raw(`<button type="submit" class="bg-red-500 hover:bg-red-700 text-white font-bold py-2 px-4 rounded">Logout</button>`).
				raw(`</form></div>`)
		} else {
			h.raw(`<div class="flex items-center gap-4">`).
				raw(`<a href="/login" class="text-gray-700 hover:text-blue-500">Login</a>`).
				raw(`<a href="/register" class="bg-blue-500 hover:bg-blue-700 text-white font-bold py-2 px-4 rounded">Registro</a>`).
				raw(`</div>`)
		}
		h.raw(`</nav>`)
	})
}
