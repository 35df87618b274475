package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"splashbot/server/config"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ShutdownFunc はエクスポーターに溜まったデータを送り出して停止します。
type ShutdownFunc func(ctx context.Context) error

// Telemetry は Setup が組み立てたプロバイダです。
type Telemetry struct {
	// MeterProvider は OTel 無効時には no-op です。
	MeterProvider metric.MeterProvider
	Shutdown      ShutdownFunc
}

// Setup は slog の既定ロガーを設定します。
// OTelEnabled なら OTLP (gRPC) のトレース・メトリクス・ログのエクスポーターを起動し、
// グローバルプロバイダとして登録したうえで slog を otelslog 経由で送ります。
// エンドポイント等は OTEL_EXPORTER_OTLP_* 環境変数から読まれます。
func Setup(ctx context.Context, cfg config.Config, out io.Writer) (*Telemetry, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	if !cfg.OTelEnabled {
		slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
		return &Telemetry{
			MeterProvider: noop.NewMeterProvider(),
			Shutdown:      func(context.Context) error { return nil },
		}, nil
	}

	res, err := resource.Merge(resource.Default(),
		resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName)))
	if err != nil {
		return nil, fmt.Errorf("telemetry resource: %w", err)
	}

	var shutdowns []ShutdownFunc
	shutdown := func(ctx context.Context) error {
		var errs []error
		for _, fn := range shutdowns {
			errs = append(errs, fn(ctx))
		}
		return errors.Join(errs...)
	}

	traceExporter, err := otlptracegrpc.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	shutdowns = append(shutdowns, tp.Shutdown)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	metricExporter, err := otlpmetricgrpc.New(ctx)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("metric exporter: %w", err), shutdown(ctx))
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)
	shutdowns = append(shutdowns, mp.Shutdown)
	otel.SetMeterProvider(mp)

	logExporter, err := otlploggrpc.New(ctx)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("log exporter: %w", err), shutdown(ctx))
	}
	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
		sdklog.WithResource(res),
	)
	shutdowns = append(shutdowns, lp.Shutdown)

	bridge := otelslog.NewHandler(cfg.ServiceName, otelslog.WithLoggerProvider(lp))
	slog.SetDefault(slog.New(&levelHandler{Handler: bridge, level: level}))

	return &Telemetry{MeterProvider: mp, Shutdown: shutdown}, nil
}

// levelHandler は下位の Handler に最小レベルを課します。
type levelHandler struct {
	slog.Handler
	level slog.Leveler
}

func (h *levelHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= h.level.Level() && h.Handler.Enabled(ctx, l)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{Handler: h.Handler.WithAttrs(attrs), level: h.level}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{Handler: h.Handler.WithGroup(name), level: h.level}
}
