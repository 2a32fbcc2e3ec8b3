// Package clientip resolves the client address of a request behind common
// reverse proxies and carries it through the request context for logging.
//
// Proxy headers are trusted as sent. Deploy behind a proxy that overwrites
// them.
package clientip
