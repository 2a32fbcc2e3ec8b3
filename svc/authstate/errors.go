package authstate

import "errors"

var (
	ErrAlreadyStarted = errors.New("authstate: store already started")
	ErrNotStarted     = errors.New("authstate: store not started")
	ErrClosed         = errors.New("authstate: store closed")
	ErrNoStore        = errors.New("authstate: no session store in context")
)
