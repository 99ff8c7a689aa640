package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaxRequestSize bounds request bodies. Query bodies are a handful of
// selectors; anything larger is rejected on the declared length before a
// single byte is read.
const MaxRequestSize = 10_000

// Request is a convenience wrapper around the http request to make it easy
// to read query params and decode bodies.
type Request struct {
	*http.Request
}

func decorateRequest(r *http.Request) *Request {
	return &Request{Request: r}
}

func (rd *Request) GetQueryParam(name string) string {
	return rd.Request.URL.Query().Get(name)
}

// AcceptsGzip reports whether the client advertised gzip support.
func (rd *Request) AcceptsGzip() bool {
	return strings.Contains(rd.Header.Get("Accept-Encoding"), "gzip")
}

// BodyAs decodes the JSON request body into dst. The body must be a single
// object with no unknown fields and no trailing data.
func (rd *Request) BodyAs(w http.ResponseWriter, dst interface{}) error {
	if rd.ContentLength > MaxRequestSize {
		err := fmt.Errorf("declared content length %d exceeds the %d byte limit", rd.ContentLength, MaxRequestSize)
		return NewRestError(http.StatusRequestEntityTooLarge, err.Error(), err)
	}
	rd.Body = http.MaxBytesReader(w, rd.Body, MaxRequestSize)

	dec := json.NewDecoder(rd.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(&dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError

		switch {
		case errors.As(err, &syntaxError):
			err := fmt.Errorf("request body contains badly-formed JSON (at position %d)", syntaxError.Offset)
			return NewBadRequestError(err)

		case errors.Is(err, io.ErrUnexpectedEOF):
			err := fmt.Errorf("request body contains badly-formed JSON")
			return NewBadRequestError(err)

		case errors.As(err, &unmarshalTypeError):
			err := fmt.Errorf("request body contains an invalid value for the %q field (at position %d)", unmarshalTypeError.Field, unmarshalTypeError.Offset)
			return NewBadRequestError(err)

		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			err := fmt.Errorf("request body contains unknown field %s", fieldName)
			return NewBadRequestError(err)

		case errors.Is(err, io.EOF):
			err := fmt.Errorf("request body must not be empty")
			return NewBadRequestError(err)

		default:
			return err
		}
	}

	if dst == nil {
		return NewBadRequestError(fmt.Errorf("request body must not be empty"))
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return NewBadRequestError(fmt.Errorf("request body must only contain a single JSON object"))
	}

	return nil
}
