// Package rest holds the HTTP plumbing of the blob store API: the
// server, its filters and the JSON responder.
package rest

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Code this will be used as error code
	Code string `json:"code,omitempty"`

	// We use the term description because it describes the error
	// to the developer rather than a message for the end user.
	Description string `json:"description,omitempty"`

	Fields []ErrorResponseField `json:"fields,omitempty"`
	DocURL string               `json:"doc_url,omitempty"`
}

type ErrorResponseField struct {
	Field       string `json:"field"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description,omitempty"`
	DocURL      string `json:"doc_url,omitempty"`
}

type Responder struct {
	w http.ResponseWriter
}

func RespondTo(w http.ResponseWriter) Responder { return Responder{w} }

func (r Responder) encodeToJSON(jsonData any) error {
	return json.NewEncoder(r.w).Encode(jsonData)
}

func (r Responder) Error(errorData any, httpStatusCode int) {
	r.w.Header().Set("Content-Type", "application/json")
	if httpStatusCode == 0 {
		httpStatusCode = 422
	}
	r.w.WriteHeader(httpStatusCode)
	err := r.encodeToJSON(errorData)
	if err != nil {
		panic(err)
	}
}

func (r Responder) Success(successData any) {
	if successData == nil {
		r.w.WriteHeader(http.StatusNoContent)
		return
	}
	r.SuccessWithHTTPStatusCode(successData, http.StatusOK)
}

func (r Responder) SuccessWithHTTPStatusCode(successData any, httpStatusCode int) {
	r.w.Header().Set("Content-Type", "application/json")
	if httpStatusCode == 0 {
		httpStatusCode = http.StatusOK
	}
	r.w.WriteHeader(httpStatusCode)
	err := r.encodeToJSON(successData)
	if err != nil {
		panic(err)
	}
}
