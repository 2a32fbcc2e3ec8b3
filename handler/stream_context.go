package handler

import (
	"encoding/json"

	"github.com/starfederation/datastar-go/datastar"
)

// StreamContext is a Context bound to an open event stream.
type StreamContext interface {
	Context

	// SendComponent patches component into the page.
	SendComponent(component TemplComponent, opts ...TemplOption) error

	// SendSignals merges values into the client's signal store.
	SendSignals(signals map[string]any) error
}

type streamContext struct {
	Context
	sse *datastar.ServerSentEventGenerator
}

func (c *streamContext) SendComponent(component TemplComponent, opts ...TemplOption) error {
	if c.sse == nil {
		return ErrSSENotInitialized
	}
	return c.sse.PatchElementTempl(component, opts...)
}

func (c *streamContext) SendSignals(signals map[string]any) error {
	if c.sse == nil {
		return ErrSSENotInitialized
	}
	data, err := json.Marshal(signals)
	if err != nil {
		return err
	}
	return c.sse.PatchSignals(data)
}
