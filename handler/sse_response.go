package handler

import (
	"net/http"
)

// SSEHandler runs for the lifetime of an event stream. Returning ends the
// stream.
type SSEHandler func(stream StreamContext) error

type sseResponse struct {
	handler SSEHandler
}

func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return NewHTTPError(http.StatusBadRequest, "Se requiere una conexión DataStar")
	}
	base := NewContext(w, r)
	sse := base.SSE()
	if sse == nil {
		return ErrSSENotInitialized
	}
	return s.handler(&streamContext{Context: base, sse: sse})
}

// SSE opens an event stream and hands it to h.
//
//	return handler.SSE(func(stream handler.StreamContext) error {
//		for {
//			select {
//			case <-stream.Done():
//				return nil
//			case msg := <-updates:
//				if err := stream.SendComponent(views.Nav(msg), handler.WithTarget("#nav")); err != nil {
//					return err
//				}
//			}
//		}
//	})
func SSE(h SSEHandler) Response {
	return sseResponse{handler: h}
}
