/*
Copyright 2022 Lee R. Boynton

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package runtime is imported by generated servers. It extracts raw values from requests,
// converts them, and reports the two request failures separately: a required value that is
// absent, and a value that is present but malformed.
package runtime

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
)

// Request locations a value can be bound from.
const (
	OriginPath    = "path"
	OriginQuery   = "query"
	OriginHeader  = "header"
	OriginPayload = "payload"
	OriginBody    = "body"
)

// MissingFieldError reports a required member with no bound value.
type MissingFieldError struct {
	Field  string
	Origin string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required %s value %q", e.Origin, e.Field)
}

// MissingField returns the error generated code raises when a required value is absent.
func MissingField(field, origin string) error {
	return &MissingFieldError{Field: field, Origin: origin}
}

// ParseError reports a value that is present but cannot be converted to its target type.
type ParseError struct {
	Field string
	Value string
	Kind  string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed %s value for %q: %q (%v)", e.Kind, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("malformed %s value for %q: %q", e.Kind, e.Field, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseError(field, kind string, value interface{}, err error) error {
	return &ParseError{Field: field, Kind: kind, Value: fmt.Sprint(value), Err: err}
}

func IsMissingField(err error) bool {
	var e *MissingFieldError
	return errors.As(err, &e)
}

func IsParseError(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}

// ErrorResponse is the JSON body written by WriteError.
type ErrorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// WriteError writes err as a JSON response. Missing and malformed values are both 400 Bad
// Request but are reported differently; anything else is a 500.
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	resp := ErrorResponse{Error: "internal error", Message: err.Error()}
	var missing *MissingFieldError
	var malformed *ParseError
	switch {
	case errors.As(err, &missing):
		status = http.StatusBadRequest
		resp.Error = "missing field"
		resp.Field = missing.Field
	case errors.As(err, &malformed):
		status = http.StatusBadRequest
		resp.Error = "malformed value"
		resp.Field = malformed.Field
	}
	WriteJSON(w, status, resp)
}

// WriteJSON writes v as the JSON body of a response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}
