// Package backend is a client for a Supabase-compatible backend: the GoTrue
// auth API under /auth/v1 and the PostgREST data API under /rest/v1.
//
// The client owns the authenticated session. It persists the session through
// a SessionStorage (memory by default, Redis via pkg/redis), restores it on
// first use, refreshes the access token shortly before expiry and tells
// registered listeners about every change:
//
//	client, err := backend.New(cfg, backend.WithStorage(store))
//	if err != nil {
//		return err
//	}
//	unsubscribe := client.OnAuthStateChange(func(ev backend.AuthEvent, s *backend.Session) {
//		// ev is SIGNED_IN, SIGNED_OUT, TOKEN_REFRESHED, ...
//	})
//	defer unsubscribe()
//
// Non-2xx answers are returned as *APIError. Transport failures wrap
// ErrRequestFailed.
package backend
