package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silktrader/foxfaps/pkg/failure"
)

func withParam(name, value string) *http.Request {
	var request = httptest.NewRequest(http.MethodGet, "/creators/"+value, nil)
	var params = httprouter.Params{{Key: name, Value: value}}
	return request.WithContext(context.WithValue(request.Context(), httprouter.ParamsKey, params))
}

func TestGetId(t *testing.T) {
	id, err := GetId(withParam("id", "42"), "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"0", "-3", "abc", "", "1.5", "9223372036854775808"} {
		t.Run(raw, func(t *testing.T) {
			id, err := GetId(withParam("id", raw), "id")
			assert.True(t, failure.Is(err, failure.Validation), err)
			assert.Zero(t, id)
		})
	}
}

func TestGetIdReadsNamedParam(t *testing.T) {
	_, err := GetId(withParam("id", "7"), "creator")
	assert.True(t, failure.Is(err, failure.Validation), err)
}

func TestGetLoggerOutsideEngine(t *testing.T) {
	var request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Same(t, logrus.StandardLogger(), GetLogger(request))
}

func TestEngineProvidesRequestLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	engine, err := New(Config{Logger: logger})
	require.NoError(t, err)

	var requestLogger logrus.FieldLogger
	var id int64
	engine.Get("/creators/:id", func(writer http.ResponseWriter, request *http.Request) {
		requestLogger = GetLogger(request)
		id, _ = GetId(request, "id")
	})

	var recorder = httptest.NewRecorder()
	engine.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/creators/9", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, int64(9), id)
	require.NotNil(t, requestLogger)
	assert.NotSame(t, logrus.StandardLogger(), requestLogger)

	var entry = hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "request received", entry.Message)
	assert.NotEmpty(t, entry.Data["reqid"])
	assert.Equal(t, "/creators/9", entry.Data["path"])
}

func TestNewRequiresLogger(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}
