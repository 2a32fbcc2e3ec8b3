// Package catalog reads the product list from the backend.
package catalog
