// Package authstate holds the process-wide authentication session.
//
// A Store is a reactive cell. Start registers exactly one listener with the
// backend client and, independently, fetches the current session. Whichever
// of the two arrives last decides the cell. Every update is published to
// subscribers, which is how open pages learn about sign-in and sign-out.
//
//	store := authstate.New(client, authstate.WithLogger(log))
//	if err := store.Start(ctx); err != nil {
//		return err
//	}
//	defer store.Close()
//
// Handlers read the session through the request context:
//
//	session, err := authstate.Current(r.Context())
//
// Reading without a store in the context returns ErrNoStore.
package authstate
