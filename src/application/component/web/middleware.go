package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

func (self *Web) middleware(next http.Handler) http.Handler {
	origins := self.Config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	h := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{
			http.MethodGet, http.MethodHead, http.MethodPost,
			http.MethodPut, http.MethodDelete, http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(next)

	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{self.Logger}),
	)(h)

	h = hlog.AccessHandler(func(req *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(req).Debug().
			Str("method", req.Method).
			Stringer("url", req.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("Request")
	})(h)
	h = hlog.RequestIDHandler("req_id", "X-Request-Id")(h)
	h = hlog.RemoteAddrHandler("ip")(h)
	h = hlog.NewHandler(self.Logger)(h)

	return h
}

// metricsMiddleware runs after routing so the route template is known.
func (self *Web) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		route := mux.CurrentRoute(req)
		if route == nil || route.GetName() == dispatchRoute {
			next.ServeHTTP(w, req)
			return
		}

		template, err := route.GetPathTemplate()
		if err != nil {
			template = "unknown"
		}

		m := httpsnoop.CaptureMetrics(next, w, req)
		self.Metrics.RequestDuration.
			WithLabelValues(template, req.Method, strconv.Itoa(m.Code)).
			Observe(m.Duration.Seconds())
	})
}

type recoveryLogger struct {
	zerolog.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.Logger.Error().Msg(fmt.Sprint(v...))
}
