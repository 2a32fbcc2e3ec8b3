package storefront

import (
	"github.com/a-h/templ"

	"github.com/vertextrade/storefront/handler"
	"github.com/vertextrade/storefront/modules/storefront/views"
	"github.com/vertextrade/storefront/pkg/backend"
	"github.com/vertextrade/storefront/svc/account"
	"github.com/vertextrade/storefront/svc/catalog"
)

// Views are the components the storefront renders. Any field can be
// swapped out; DefaultViews fills them all.
type Views struct {
	Layout       func(views.LayoutParams, templ.Component) templ.Component
	Nav          func(*backend.Session) templ.Component
	Catalog      func([]catalog.Product) templ.Component
	LoginPage    func(views.AuthFormParams) templ.Component
	RegisterPage func(views.AuthFormParams) templ.Component
	AuthMessage  func(account.Status) templ.Component
	ErrorPage    func(handler.ErrorPageParams) templ.Component
	ErrorToast   func(handler.ErrorToastParams) templ.Component
}

func DefaultViews() *Views {
	return &Views{
		Layout:       views.Layout,
		Nav:          views.Nav,
		Catalog:      views.Catalog,
		LoginPage:    views.LoginPage,
		RegisterPage: views.RegisterPage,
		AuthMessage:  views.AuthMessage,
		ErrorPage:    views.ErrorPage,
		ErrorToast:   views.ErrorToast,
	}
}

func (v *Views) withDefaults() *Views {
	d := DefaultViews()
	if v == nil {
		return d
	}
	out := *v
	if out.Layout == nil {
		out.Layout = d.Layout
	}
	if out.Nav == nil {
		out.Nav = d.Nav
	}
	if out.Catalog == nil {
		out.Catalog = d.Catalog
	}
	if out.LoginPage == nil {
		out.LoginPage = d.LoginPage
	}
	if out.RegisterPage == nil {
		out.RegisterPage = d.RegisterPage
	}
	if out.AuthMessage == nil {
		out.AuthMessage = d.AuthMessage
	}
	if out.ErrorPage == nil {
		out.ErrorPage = d.ErrorPage
	}
	if out.ErrorToast == nil {
		out.ErrorToast = d.ErrorToast
	}
	return &out
}
