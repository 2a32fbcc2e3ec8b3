// Package broadcast provides type-safe one-to-many message fan-out.
//
// The storefront uses it to push session changes from the session store to
// every open UI stream:
//
//	b := broadcast.NewMemoryBroadcaster[authstate.Change](8)
//	defer b.Close()
//
//	sub := b.Subscribe(r.Context())
//	defer sub.Close()
//
//	for msg := range sub.Receive(r.Context()) {
//		render(msg.Data)
//	}
//
// Subscribers are removed when their context is cancelled, when their buffer
// overflows, or when the broadcaster is closed.
package broadcast
