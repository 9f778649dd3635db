package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goto/salt/log"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/goto/folio/ext/bucket"
	"github.com/goto/folio/internal/telemetry"
)

const (
	readTimeout  = 30 * time.Second
	writeTimeout = 60 * time.Second
	idleTimeout  = 120 * time.Second
	shutdownWait = 30 * time.Second
)

func prepareHTTPProxy(l log.Logger, httpAddr string, gwmux *runtime.ServeMux, images *bucket.ImageStore) *http.Server {
	baseMux := http.NewServeMux()
	baseMux.HandleFunc("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "pong")
	})
	baseMux.Handle("/metrics", promhttp.Handler())
	baseMux.Handle(strings.TrimSuffix(images.PublicPath(), "/")+"/", images.Handler())
	baseMux.Handle("/", otelhttp.NewHandler(gwmux, "folio-http"))

	return &http.Server{
		Addr:         httpAddr,
		Handler:      recoverHTTP(l, baseMux),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
}

func recoverHTTP(l log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				telemetry.LogPanic("http", r.URL.Path)
				l.Error("recovered from panic", "path", r.URL.Path, "panic", p)
				http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
