// Package binder decodes HTTP form bodies into tagged structs for use with
// handler.Wrap:
//
//	http.HandleFunc("/login", handler.Wrap(login,
//		handler.WithBinders[handler.Context, account.Credentials](binder.Form()),
//	))
//
// Fields are matched on the `form` tag, falling back to the lowercased field
// name. Strings, integers, floats, booleans (including checkbox "on"),
// pointers and slices of those are supported. Binding failures wrap
// ErrInvalidForm; a body-less request returns ErrBinderNotApplicable so the
// caller can skip the binder.
package binder
