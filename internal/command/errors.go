package command

import "errors"

// Error kinds. Every failure returned by Parse or Execute wraps exactly one.
var (
	ErrBlankInput           = errors.New("blank input")
	ErrEmptyList            = errors.New("empty list")
	ErrMissingArgument      = errors.New("missing argument")
	ErrInvalidIndex         = errors.New("invalid task number")
	ErrMissingUsageArgument = errors.New("wrong number of arguments")
	ErrInvalidDelimiter     = errors.New("missing or misplaced delimiter")
	ErrEmptyField           = errors.New("empty field")
	ErrInvalidDateFormat    = errors.New("invalid date format")
)

// Error is a command failure carrying a message meant for the user.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Msg
}

// Unwrap returns the error kind.
func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}
