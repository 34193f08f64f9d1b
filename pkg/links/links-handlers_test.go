package links

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silktrader/foxfaps/pkg/ntime"
	"github.com/silktrader/foxfaps/pkg/rest"
)

func serve(handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(method, path, strings.NewReader(body)))
	return recorder
}

func TestLinkRoutes(t *testing.T) {
	logger, _ := test.NewNullLogger()
	engine, err := rest.New(rest.Config{Logger: logger})
	require.NoError(t, err)
	RegisterHandlers(engine, newTestRepository(t))
	var handler = engine.Handler()

	response := serve(handler, http.MethodPost, "/links", `{"url":"https://example.com/v","source":null,"downloaded":false,"date":null}`)
	require.Equal(t, http.StatusCreated, response.Code)
	assert.JSONEq(t, `{"id":1,"message":"Interesting link added successfully"}`, response.Body.String())

	response = serve(handler, http.MethodGet, "/links", "")
	require.Equal(t, http.StatusOK, response.Code)
	assert.JSONEq(t, `[{"id":1,"url":"https://example.com/v","source":null,"downloaded":false,"date":null}]`, response.Body.String())

	response = serve(handler, http.MethodPut, "/links/1", `{"url":"https://example.com/v","source":"board","downloaded":false,"date":"2024-06-01"}`)
	require.Equal(t, http.StatusOK, response.Code)
	assert.JSONEq(t, `{"message":"Interesting link updated successfully"}`, response.Body.String())

	response = serve(handler, http.MethodPost, "/links/1/downloaded", "")
	require.Equal(t, http.StatusOK, response.Code)
	assert.JSONEq(t, `{"message":"Interesting link marked as downloaded"}`, response.Body.String())

	response = serve(handler, http.MethodGet, "/links-history", "")
	require.Equal(t, http.StatusOK, response.Code)
	assert.JSONEq(t, `[{"id":1,"url":"https://example.com/v","source":"board","downloaded":true,"date":"`+
		ntime.Today().String()+`"}]`, response.Body.String())

	response = serve(handler, http.MethodDelete, "/links/1", "")
	require.Equal(t, http.StatusOK, response.Code)
	assert.JSONEq(t, `{"message":"Interesting link deleted successfully"}`, response.Body.String())

	response = serve(handler, http.MethodDelete, "/links/1", "")
	assert.Equal(t, http.StatusNotFound, response.Code)

	response = serve(handler, http.MethodPost, "/links", `{"url":"ftp:/nohost"}`)
	assert.Equal(t, http.StatusBadRequest, response.Code)
}
