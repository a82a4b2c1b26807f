package tracing

import (
	"context"
	"net/url"

	"github.com/Kargones/taskdispatch/internal/pkg/logging"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName: имя instrumentation scope для span-ов диспетчера.
const InstrumentationName = "github.com/Kargones/taskdispatch"

// Tracer возвращает tracer из глобального TracerProvider.
// Пока NewTracerProvider не вызван (или трейсинг выключен), это noop tracer.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// NewTracerProvider создаёт и настраивает OTel TracerProvider.
// Если трейсинг выключен, возвращает nop shutdown function.
// При включённом трейсинге:
//  1. создаёт OTLP HTTP exporter
//  2. настраивает BatchSpanProcessor для асинхронного экспорта
//  3. устанавливает resource attributes (service.name, version, environment)
//  4. регистрирует TracerProvider глобально через otel.SetTracerProvider()
//  5. возвращает shutdown function для graceful завершения
func NewTracerProvider(cfg Config, logger logging.Logger) (func(context.Context) error, error) {
	if !cfg.Enabled {
		logger.Debug("трейсинг выключен, используется nop provider")
		return NewNopTracerProvider(), nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx := context.Background()

	// NewSchemaless: без конфликта Schema URL между resource.Default() и semconv.
	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.Version),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	)
	if err != nil {
		return nil, err
	}

	// otlptracehttp.WithEndpoint принимает только host:port.
	endpointHost := cfg.Endpoint
	if u, parseErr := url.Parse(cfg.Endpoint); parseErr == nil && u.Host != "" {
		endpointHost = u.Host
	}

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(endpointHost),
		otlptracehttp.WithTimeout(cfg.Timeout),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(newSampler(cfg.SamplingRate)),
	)

	// TODO: otel.SetTracerProvider без sync.Once: тесты провайдера не могут идти с t.Parallel().
	otel.SetTracerProvider(tp)

	logger.Info("OpenTelemetry трейсинг инициализирован",
		"endpoint", cfg.Endpoint,
		"service_name", cfg.ServiceName,
		"environment", cfg.Environment,
		"sampling_rate", cfg.SamplingRate,
	)

	return tp.Shutdown, nil
}

// ContextWithOTelTraceID создаёт контекст с remote span context с указанным trace ID.
// Все span-ы задач, созданные из этого контекста, попадают в один trace запуска.
// Невалидный traceIDHex: контекст возвращается без изменений.
func ContextWithOTelTraceID(ctx context.Context, traceIDHex string) context.Context {
	traceID, err := trace.TraceIDFromHex(traceIDHex)
	if err != nil {
		return ctx
	}
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})
	return trace.ContextWithRemoteSpanContext(ctx, sc)
}

// newSampler создаёт ParentBased sampler с TraceIDRatioBased для root span-ов
// и для remote parent. ContextWithOTelTraceID всегда ставит FlagsSampled,
// поэтому дефолтный AlwaysSample для remote parent игнорировал бы rate.
func newSampler(rate float64) sdktrace.Sampler {
	return sdktrace.ParentBased(
		sdktrace.TraceIDRatioBased(rate),
		sdktrace.WithRemoteParentSampled(sdktrace.TraceIDRatioBased(rate)),
	)
}
