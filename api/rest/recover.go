package rest

import (
	"fmt"
	"io"
	"net/http"
	"runtime"
)

// Recover turns a panic in a handler into a 500 response and logs it
// with the stack of the panicking goroutine.
type Recover struct {
	StackAll   bool
	StackSize  int
	PrintStack bool
}

func NewRecover() *Recover {
	return &Recover{
		PrintStack: true,
		StackAll:   false,
		StackSize:  1024 * 8,
	}
}

var panicText = "(panic) %v"

// RecoverOnPanic has the signature of restful.RecoverHandleFunction.
func (rec *Recover) RecoverOnPanic(panicReason any, httpWriter http.ResponseWriter) {
	if panicReason == io.ErrUnexpectedEOF {
		RespondTo(httpWriter).Error(&ErrorResponse{
			Code:        "request_too_large",
			Description: http.StatusText(http.StatusRequestEntityTooLarge),
		}, http.StatusRequestEntityTooLarge)
		return
	}

	evt := log.Error().Str("panic", fmt.Sprintf(panicText, panicReason))
	if rec.PrintStack && rec.StackSize > 0 {
		stack := make([]byte, rec.StackSize)
		stack = stack[:runtime.Stack(stack, rec.StackAll)]
		evt = evt.Str("stack", string(stack))
	}
	evt.Msg("recovered from panic")

	RespondTo(httpWriter).Error(&ErrorResponse{
		Code:        "internal",
		Description: http.StatusText(http.StatusInternalServerError),
	}, http.StatusInternalServerError)
}
