package json_utilities

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/silktrader/foxfaps/pkg/failure"
	"github.com/silktrader/foxfaps/pkg/rest"
)

var errEncoding = errors.New("error while encoding response")

type httpError struct {
	Kind      failure.Kind `json:"kind"`
	Error     string       `json:"error"`
	Timestamp time.Time    `json:"timestamp"`
}

func newHttpError(kind failure.Kind, err error) *httpError {
	return &httpError{kind, err.Error(), time.Now()}
}

// Outcome is the success payload of operations that don't return rows.
type Outcome struct {
	Id      int64  `json:"id,omitempty"`
	Message string `json:"message"`
}

var statuses = map[failure.Kind]int{
	failure.Validation:       http.StatusBadRequest,
	failure.InvalidReference: http.StatusUnprocessableEntity,
	failure.NotFound:         http.StatusNotFound,
	failure.Storage:          http.StatusInternalServerError,
}

func Created(writer http.ResponseWriter, payload interface{}) {
	encodeJSON(writer, http.StatusCreated, payload)
}

func Ok(writer http.ResponseWriter, payload interface{}) {
	encodeJSON(writer, http.StatusOK, payload)
}

// Message replies 200 with a human readable success message.
func Message(writer http.ResponseWriter, message string) {
	encodeJSON(writer, http.StatusOK, Outcome{Message: message})
}

// Failure replies with the status matching the error's kind; storage faults are logged as well.
func Failure(writer http.ResponseWriter, request *http.Request, err error) {
	var kind = failure.KindOf(err)
	if kind == failure.Storage {
		rest.GetLogger(request).WithError(err).Error("storage failure")
	}
	encodeJSON(writer, statuses[kind], newHttpError(kind, err))
}

func encodeJSON(writer http.ResponseWriter, status int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(writer).Encode(payload); err != nil {
		_ = json.NewEncoder(writer).Encode(newHttpError(failure.Storage, errEncoding))
	}
}

// Decode parses the request body; malformed bodies are validation failures.
func Decode[T any](request *http.Request) (data T, err error) {
	if err = json.NewDecoder(request.Body).Decode(&data); err != nil {
		return data, failure.Invalid("decode request", fmt.Errorf("malformed body: %w", err))
	}
	return data, nil
}
