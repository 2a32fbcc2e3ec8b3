// Package handler provides typed HTTP handlers and the responses the
// storefront renders: templ pages, DataStar element patches, redirects and
// long-lived event streams.
//
// A handler receives a Context and a request value already bound by the
// configured binders:
//
//	login := func(ctx handler.Context, form account.Credentials) handler.Response {
//		status := actions.SignIn(ctx, form)
//		return handler.TemplPartial(views.AuthMessage(status), views.LoginPage(status),
//			handler.WithTarget("#auth-message"))
//	}
//	r.Post("/login", handler.Wrap(login,
//		handler.WithBinders[handler.Context, account.Credentials](binder.Form()),
//		handler.WithErrorHandler[handler.Context, account.Credentials](errHandler),
//	))
//
// Responses adapt to the caller. DataStar requests (detected by IsDataStar)
// get server-sent events; plain requests get full HTML, so every page works
// without JavaScript.
//
// Errors from binding or rendering go to the ErrorHandler. NewErrorHandler
// logs them with the request id and renders an error page or toast. Return
// an HTTPError to choose the status code and user-facing message.
package handler
