package errors

// ArgumentError is returned when a caller-supplied value is rejected
// before any remote call is made.
type ArgumentError interface {
	CallError
	ArgumentName() string
	// Fields lists the offending parts of the argument, if the error
	// was built with any.
	Fields() []EntityError
}

func Arg(argName string, err error, fields ...EntityError) error {
	return &argumentError{entityError{
		identifier: argName,
		err:        err,
	}, fields}
}

func ArgMsg(argName, errMsg string, fields ...EntityError) error {
	return &argumentError{entityError{
		identifier: argName,
		err:        Msg(errMsg),
	}, fields}
}

func ArgWrap(argName, contextMessage string, err error, fields ...EntityError) error {
	return &argumentError{entityError{
		identifier: argName,
		err:        Wrap(contextMessage, err),
	}, fields}
}

// IsArgumentError reports whether err, or any error it wraps, is an
// ArgumentError.
func IsArgumentError(err error) bool {
	var argErr ArgumentError
	return As(err, &argErr)
}

type argumentError struct {
	entityError
	fields []EntityError
}

var (
	_ error         = &argumentError{}
	_ Unwrappable   = &argumentError{}
	_ CallError     = &argumentError{}
	_ EntityError   = &argumentError{}
	_ ArgumentError = &argumentError{}
)

func (e argumentError) ArgumentName() string {
	return e.entityError.identifier
}

func (e argumentError) Fields() []EntityError { return e.fields }

func (argumentError) CallError() {}

func (e argumentError) Error() string {
	var errMsg string
	if e.err != nil {
		errMsg = e.err.Error()
	}
	if e.identifier != "" {
		if errMsg != "" {
			return "arg " + e.identifier + ": " + errMsg
		}
		return "arg " + e.identifier + " invalid"
	}
	if errMsg != "" {
		return "arg " + errMsg
	}
	return "invalid arg"
}
