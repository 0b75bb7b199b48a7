// Package httpx writes the {status, data} envelope every endpoint answers with.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/baharkarakas/legion/internal/apperr"
)

const (
	StatusOK     = "OK"
	StatusFailed = "FAILED"

	HeaderRequestID = "X-Request-Id"
)

type Envelope struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

type ErrorData struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteOK(w http.ResponseWriter, status int, data any) {
	WriteJSON(w, status, Envelope{Status: StatusOK, Data: data})
}

func WriteFailed(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, Envelope{Status: StatusFailed, Data: ErrorData{Error: msg}})
}

// WriteErr picks the status from the error kind. Store failures are logged
// here, once, with the request id.
func WriteErr(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", w.Header().Get(HeaderRequestID),
			"err", err,
		)
	}
	WriteFailed(w, status, apperr.Message(err))
}

// ErrEmptyBody is returned by Decode when the request carries no JSON object keys.
var ErrEmptyBody = apperr.Validation("Request body can not be empty")

// Decode reads the body into v and also returns the raw top-level object, so
// callers can check which keys were sent.
func Decode(r *http.Request, v any) (map[string]json.RawMessage, error) {
	b, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return nil, apperr.Validation("read request body: %s", err.Error())
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return map[string]json.RawMessage{}, nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, apperr.Validation("Request body must be a JSON object")
	}
	if err := json.Unmarshal(b, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, apperr.Validation("Field '%s' has the wrong type", typeErr.Field)
		}
		return nil, apperr.Validation("Request body must be a JSON object")
	}
	return raw, nil
}

// DecodePatch is Decode for partial updates: an empty object is rejected.
func DecodePatch(r *http.Request, v any) error {
	raw, err := Decode(r, v)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return ErrEmptyBody
	}
	return nil
}
