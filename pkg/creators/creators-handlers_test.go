package creators

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silktrader/foxfaps/pkg/rest"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	cr, _ := newTestRepository(t)
	logger, _ := test.NewNullLogger()
	engine, err := rest.New(rest.Config{Logger: logger})
	require.NoError(t, err)
	RegisterHandlers(engine, cr)
	return engine.Handler()
}

func serve(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(method, path, strings.NewReader(body)))
	return recorder
}

func TestCreatorRoutes(t *testing.T) {
	var handler = newTestHandler(t)

	response := serve(handler, http.MethodPost, "/creators", `{"name":"Fox","homepage":"https://fox.example","rate":4}`)
	require.Equal(t, http.StatusCreated, response.Code)
	assert.JSONEq(t, `{"id":1,"message":"Creator added successfully"}`, response.Body.String())

	response = serve(handler, http.MethodPut, "/creators/1", `{"name":"Fox","homepage":"https://fox.example","rate":9}`)
	require.Equal(t, http.StatusOK, response.Code)
	assert.JSONEq(t, `{"message":"Creator updated successfully"}`, response.Body.String())

	response = serve(handler, http.MethodGet, "/creators", "")
	require.Equal(t, http.StatusOK, response.Code)
	var creators []Creator
	require.NoError(t, json.NewDecoder(response.Body).Decode(&creators))
	assert.Equal(t, []Creator{{Id: 1, Name: "Fox", Homepage: "https://fox.example", Rate: 9}}, creators)

	response = serve(handler, http.MethodDelete, "/creators/1", "")
	require.Equal(t, http.StatusOK, response.Code)
	assert.JSONEq(t, `{"message":"Successfully deleted 1 rows"}`, response.Body.String())
}

func TestCreatorRouteFailures(t *testing.T) {
	var handler = newTestHandler(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		kind   string
	}{
		{"invalid rate", http.MethodPost, "/creators", `{"name":"Fox","homepage":"https://fox.example","rate":11}`, http.StatusBadRequest, "ValidationError"},
		{"malformed body", http.MethodPost, "/creators", `{"name":`, http.StatusBadRequest, "ValidationError"},
		{"malformed id", http.MethodPut, "/creators/abc", `{}`, http.StatusBadRequest, "ValidationError"},
		{"missing creator", http.MethodPut, "/creators/7", `{"name":"Fox","homepage":"https://fox.example","rate":1}`, http.StatusNotFound, "NotFound"},
		{"delete missing creator", http.MethodDelete, "/creators/7", "", http.StatusNotFound, "NotFound"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := serve(handler, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, response.Code)

			var body struct {
				Kind  string `json:"kind"`
				Error string `json:"error"`
			}
			require.NoError(t, json.NewDecoder(response.Body).Decode(&body))
			assert.Equal(t, tt.kind, body.Kind)
			assert.NotEmpty(t, body.Error)
		})
	}
}
