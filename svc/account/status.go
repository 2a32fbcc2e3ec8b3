package account

// Kind classifies an action outcome.
type Kind int

const (
	KindNone Kind = iota
	KindSuccess
	KindError
)

// Status is the user-visible outcome of an action. The zero value shows
// nothing.
type Status struct {
	Kind    Kind
	Message string
}

func Success(msg string) Status {
	return Status{Kind: KindSuccess, Message: msg}
}

// Failure formats err the way every action reports errors.
func Failure(err error) Status {
	return Status{Kind: KindError, Message: "Error: " + err.Error()}
}

func (s Status) IsZero() bool  { return s.Kind == KindNone && s.Message == "" }
func (s Status) IsError() bool { return s.Kind == KindError }
