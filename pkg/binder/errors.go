package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrInvalidForm          = errors.New("invalid form data")
	// ErrBinderNotApplicable tells the caller to skip this binder for the
	// request, e.g. a form binder on a GET.
	ErrBinderNotApplicable = errors.New("binder not applicable to request")
)
