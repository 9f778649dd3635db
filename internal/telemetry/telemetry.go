package telemetry

import (
	"context"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // served only on telemetry.profile_addr
	"time"

	"github.com/goto/salt/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"

	"github.com/goto/folio/config"
)

const (
	serviceName     = "folio"
	shutdownTimeout = 5 * time.Second
)

// Init starts the profiler and the trace exporter when configured, the returned
// func stops them
func Init(l log.Logger, conf config.TelemetryConfig) (func(), error) {
	var closers []func()

	MetricServer = conf.MetricServerAddr

	if conf.ProfileAddr != "" {
		srv := &http.Server{Addr: conf.ProfileAddr, Handler: http.DefaultServeMux, ReadHeaderTimeout: 10 * time.Second}
		go func() {
			l.Info("starting profiler", "address", conf.ProfileAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				l.Error("error starting profiler: %v", err)
			}
		}()
		closers = append(closers, func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = srv.Shutdown(ctx)
		})
	}

	if conf.JaegerAddr != "" {
		l.Info("enabling jaeger traces", "addr", conf.JaegerAddr)
		tp, err := tracerProvider(conf.JaegerAddr)
		if err != nil {
			return nil, err
		}
		otel.SetTracerProvider(tp)

		closers = append(closers, func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				l.Error("error shutting down tracer: %v", err)
			}
		})
	}

	return func() {
		for _, fn := range closers {
			fn()
		}
	}, nil
}

func tracerProvider(url string) (*tracesdk.TracerProvider, error) {
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(url)))
	if err != nil {
		return nil, err
	}

	tp := tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(exp),
		tracesdk.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", config.BuildVersion),
		)),
	)
	return tp, nil
}
