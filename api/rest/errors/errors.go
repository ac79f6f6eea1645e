// Package errors maps store errors to HTTP responses.
package errors

import (
	"net/http"

	"github.com/timemore/blobstore/api/rest"
	"github.com/timemore/blobstore/errors"
	"github.com/timemore/blobstore/errors/data"
	storageerrs "github.com/timemore/blobstore/errors/storage"
)

const HTTPStatusUnknown = 0

func Response(err error) (statusCode int, respData *rest.ErrorResponse) {
	return responseStatusCode(err), responseBody(err)
}

func responseStatusCode(err error) (httpStatusCode int) {
	if err == nil {
		return http.StatusOK
	}

	if x, ok := err.(interface{ RESTStatusCode() int }); ok && x != nil {
		code := x.RESTStatusCode()
		return code
	}

	if errors.Is(err, errors.ErrUnimplemented) {
		return http.StatusNotImplemented
	}
	if errors.IsCallError(err) || data.IsDataError(err) {
		return http.StatusBadRequest
	}

	var storageErr storageerrs.Error
	if errors.As(err, &storageErr) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

func responseBody(err error) *rest.ErrorResponse {
	if err == nil {
		return nil
	}

	if d, ok := err.(interface{ RESTErrorResponseBody() *rest.ErrorResponse }); ok && d != nil {
		return d.RESTErrorResponseBody()
	}

	switch code := responseStatusCode(err); code {
	case http.StatusNotImplemented:
		return &rest.ErrorResponse{Code: "unimplemented", Description: err.Error()}
	case http.StatusBadRequest:
		resp := &rest.ErrorResponse{Code: "invalid_argument", Description: err.Error()}
		var argErr errors.ArgumentError
		if errors.As(err, &argErr) {
			resp.Fields = argumentFields(argErr)
		} else if data.IsDataError(err) {
			resp.Code = "malformed"
		}
		return resp
	case http.StatusBadGateway:
		return &rest.ErrorResponse{Code: "storage_failure", Description: err.Error()}
	}

	return &rest.ErrorResponse{Code: "internal", Description: http.StatusText(http.StatusInternalServerError)}
}

func argumentFields(argErr errors.ArgumentError) []rest.ErrorResponseField {
	entErrs := argErr.Fields()
	if len(entErrs) == 0 {
		return []rest.ErrorResponseField{{
			Field:       argErr.ArgumentName(),
			Code:        "invalid",
			Description: argErr.Error(),
		}}
	}

	fields := make([]rest.ErrorResponseField, 0, len(entErrs))
	for _, entErr := range entErrs {
		field := entErr.EntityIdentifier()
		if argName := argErr.ArgumentName(); argName != "" {
			field = argName + "." + field
		}
		var description string
		if cause := errors.Unwrap(entErr); cause != nil {
			description = cause.Error()
		}
		fields = append(fields, rest.ErrorResponseField{
			Field:       field,
			Code:        "invalid",
			Description: description,
		})
	}
	return fields
}
