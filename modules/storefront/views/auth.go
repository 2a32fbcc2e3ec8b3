package views

import (
	"github.com/a-h/templ"

	"github.com/vertextrade/storefront/svc/account"
)

// AuthFormParams is the data for the login and registration pages.
type AuthFormParams struct {
	Email  string
	Status account.Status
}

const inputClass = "shadow appearance-none border rounded w-full py-2 px-3 text-gray-700 leading-tight focus:outline-none focus:shadow-outline"

// AuthMessage is the feedback line under the auth forms. It always renders
// its container so DataStar patches have a target.
func AuthMessage(st account.Status) templ.Component {
	return component(func(h *html) {
		h.raw(`<div id="auth-message">`)
		if !st.IsZero() {
			class := "text-center text-gray-600 text-sm"
			if st.IsError() {
				class = "text-center text-red-500 text-sm"
			}
			h.raw(`<p class="`).raw(class).raw(`">`).text(st.Message).raw(`</p>`)
		}
		h.raw(`</div>`)
	})
}

func LoginPage(p AuthFormParams) templ.Component {
	return component(func(h *html) {
		h.raw(`<div class="container mx-auto p-4 flex justify-center"><div class="w-full max-w-md">`).
			raw(`<h2 class="text-3xl font-bold text-center mb-6">Iniciar Sesión</h2>`).
			raw(`<form method="post" action="/login" data-on-submit="@post('/login', {contentType: 'form'})" class="bg-white shadow-md rounded-lg px-8 pt-6 pb-8 mb-4">`)
		credentialFields(h, p.Email, "demo@ejemplo.com", false)
		h.raw(`<div class="flex flex-col gap-4">`).
			raw(`<button type="submit" class="bg-green-500 hover:bg-green-700 text-white font-bold py-2 px-4 rounded w-full">Entrar</button>`).
			raw(`<button type="submit" formaction="/login/demo" data-on-click__prevent="@post('/login/demo')" class="bg-purple-500 hover:bg-purple-700 text-white font-bold py-2 px-4 rounded w-full">Entrar como Usuario Demo</button>`).
			raw(`</div></form>`).
			render(AuthMessage(p.Status)).
			raw(`</div></div>`)
	})
}

func RegisterPage(p AuthFormParams) templ.Component {
	return component(func(h *html) {
		h.raw(`<div class="container mx-auto p-4 flex justify-center"><div class="w-full max-w-md">`).
			raw(`<h2 class="text-3xl font-bold text-center mb-6">Crear una Cuenta</h2>`).
			raw(`<form method="post" action="/register" data-on-submit="@post('/register', {contentType: 'form'})" class="bg-white shadow-md rounded-lg px-8 pt-6 pb-8 mb-4">`)
		credentialFields(h, p.Email, "tu@email.com", true)
		h.raw(`<div class="flex items-center justify-between">`).
			raw(`<button type="submit" class="bg-blue-500 hover:bg-blue-700 text-white font-bold py-2 px-4 rounded w-full">Registrarse</button>`).
			raw(`</div></form>`).
			render(AuthMessage(p.Status)).
			raw(`</div></div>`)
	})
}

func credentialFields(h *html, email, placeholder string, required bool) {
	req := ""
	if required {
		req = " required"
	}
	h.raw(`<div class="mb-4"><label class="block text-gray-700 text-sm font-bold mb-2" for="email">Correo Electrónico</label>`).
		raw(`<input id="email" name="email" type="email" placeholder="`).text(placeholder).
		raw(`" value="`).text(email).raw(`" class="`).raw(inputClass).raw(`"`).raw(req).raw(`></div>`).
		raw(`<div class="mb-6"><label class="block text-gray-700 text-sm font-bold mb-2" for="password">Contraseña</label>`).
		raw(`<input id="password" name="password" type="password" placeholder="******************" class="`).raw(inputClass).raw(` mb-3"`).raw(req).raw(`></div>`)
}
