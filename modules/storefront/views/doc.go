// Package views holds the storefront's templ components. Each is a pure
// function from data to markup.
package views
