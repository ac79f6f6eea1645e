package errors

// CallError marks errors caused by the caller's input rather than by
// the storage backend.
type CallError interface {
	error
	CallError()
}

func IsCallError(e error) bool {
	var v CallError
	return As(e, &v) && v != nil
}
