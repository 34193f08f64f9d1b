package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gofrs/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/silktrader/foxfaps/pkg/failure"
)

type contextKey string

const requestContextKey contextKey = "requestContext"

// RequestContext is the context of the request, for request-dependent parameters
type RequestContext struct {
	// ReqUUID is the request unique ID
	ReqUUID uuid.UUID

	// Logger is a custom field logger for the request
	Logger logrus.FieldLogger
}

// wrap adds a RequestContext instance related to the request.
func (e *Engine) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqUUID, err := uuid.NewV4()
		if err != nil {
			e.baseLogger.WithError(err).Error("can't generate a request UUID")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var ctx = RequestContext{
			ReqUUID: reqUUID,
		}

		// Create a request-specific logger
		ctx.Logger = e.baseLogger.WithFields(logrus.Fields{
			"reqid":     ctx.ReqUUID.String(),
			"remote-ip": r.RemoteAddr,
		})
		ctx.Logger.WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path}).Debug("request received")

		// Call the next handler in chain (usually, the handler function for the path)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestContextKey, ctx)))
	})
}

// GetLogger returns the request logger, or the standard logger for requests that bypassed the engine.
func GetLogger(request *http.Request) logrus.FieldLogger {
	if ctx, ok := request.Context().Value(requestContextKey).(RequestContext); ok {
		return ctx.Logger
	}
	return logrus.StandardLogger()
}

func GetParam(request *http.Request, name string) string {
	return httprouter.ParamsFromContext(request.Context()).ByName(name)
}

// GetId parses a positive integer path parameter; malformed ids are validation failures.
func GetId(request *http.Request, name string) (int64, error) {
	var raw = GetParam(request, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, failure.Invalid("parse path", fmt.Errorf("%s: %q isn't a positive integer", name, raw))
	}
	return id, nil
}
