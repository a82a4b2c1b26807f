// Package main содержит точку входа taskdispatch: прогоняет синтетическую
// нагрузку через диспетчер задач и печатает отчёт о метриках исполнения.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kargones/taskdispatch/internal/config"
	"github.com/Kargones/taskdispatch/internal/constants"
	"github.com/Kargones/taskdispatch/internal/di"
	"github.com/Kargones/taskdispatch/internal/pkg/apperrors"
	"github.com/Kargones/taskdispatch/internal/pkg/metrics"
	"github.com/Kargones/taskdispatch/internal/pkg/output"
	"github.com/Kargones/taskdispatch/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

// tracerShutdownTimeout: сколько ждать сброса трейсов при выходе.
const tracerShutdownTimeout = 5 * time.Second

func main() {
	os.Exit(run())
}

// run загружает конфигурацию, собирает App и возвращает exit code.
// os.Exit вызывается только в main, чтобы defer-ы (shutdown трейсинга) отработали.
func run() int {
	cfg, err := config.MustLoad()
	if err != nil || cfg == nil {
		fmt.Fprintf(os.Stderr, "Не удалось загрузить конфигурацию приложения: %v\n", err)
		return constants.ExitConfigError
	}
	cfg.Logger.Debug("Информация о сборке", slog.String("version", constants.Version))

	app, err := di.InitializeApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Не удалось инициализировать приложение: %v\n", err)
		return constants.ExitConfigError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return execute(ctx, app, os.Stdout)
}

// execute прогоняет нагрузку и пишет отчёт в w.
func execute(ctx context.Context, app *di.App, w io.Writer) int {
	start := time.Now()
	logger := app.Logger.With("trace_id", app.TraceID)

	ctx = tracing.WithTraceID(ctx, app.TraceID)
	ctx = tracing.ContextWithOTelTraceID(ctx, app.TraceID)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), tracerShutdownTimeout)
		defer cancel()
		if err := app.TracerShutdown(shutdownCtx); err != nil {
			logger.Warn("ошибка завершения TracerProvider", "error", err.Error())
		}
	}()

	if err := metrics.Install(app.Collector); err != nil {
		logger.Warn("сборщик метрик процесса уже установлен", "error", err.Error())
	}

	ctx, span := tracing.Tracer().Start(ctx, "taskdispatch.run")
	defer span.End()

	// Фоновые компоненты живут до конца прогона нагрузки
	bgCtx, cancelBg := context.WithCancel(ctx)
	bg, bgCtx := errgroup.WithContext(bgCtx)
	bg.Go(func() error {
		app.Poller.Run(bgCtx)
		return nil
	})
	if app.Monitor != nil {
		bg.Go(func() error {
			if err := app.Monitor.Run(bgCtx); err != nil {
				logger.Error("HTTP мониторинг недоступен",
					"error", apperrors.NewAppError(apperrors.ErrMonitorServe, "сервер мониторинга остановился", err).Error())
			}
			return nil
		})
	}

	runErr := runDispatch(ctx, app)

	cancelBg()
	_ = bg.Wait() //nolint:errcheck // фоновые горутины не возвращают ошибок

	snapshot, ok := app.Dispatcher.Metrics()
	report := output.NewSnapshotReport(snapshot, ok, time.Since(start))
	result := &output.Result{
		Status:  output.StatusSuccess,
		Command: constants.CommandRun,
		Data:    report,
		Metadata: &output.Metadata{
			DurationMs: time.Since(start).Milliseconds(),
			TraceID:    app.TraceID,
			APIVersion: output.APIVersion,
		},
		Summary: report.Summary(),
	}
	if runErr != nil {
		result.Status = output.StatusError
		result.Error = &output.ErrorInfo{
			Code:    apperrors.CodeOf(runErr),
			Message: runErr.Error(),
		}
		span.RecordError(runErr)
		span.SetStatus(codes.Error, runErr.Error())
	}
	span.SetAttributes(
		attribute.Bool("metrics.enabled", ok),
		attribute.Int64("tasks.tracked", snapshot.Tracked),
		attribute.Int64("tasks.failed", snapshot.Failed),
	)

	if err := app.OutputWriter.Write(w, result); err != nil {
		logger.Error("не удалось вывести отчёт",
			"error", apperrors.NewAppError(apperrors.ErrOutputFormat, "ошибка форматирования отчёта", err).Error())
		return constants.ExitRuntimeError
	}

	app.Pusher.Push(ctx)

	if runErr != nil {
		logger.Error("Ошибка выполнения", "error", runErr.Error(),
			slog.String(constants.MsgErrProcessing, constants.MsgAppExit))
		return constants.ExitRuntimeError
	}
	return constants.ExitOK
}

// runDispatch запускает диспетчер, прогоняет нагрузку и останавливает диспетчер.
func runDispatch(ctx context.Context, app *di.App) error {
	logger := app.Logger

	if err := app.Dispatcher.Start(ctx); err != nil {
		return apperrors.NewAppError(apperrors.ErrDispatchStart, "не удалось запустить диспетчер", err)
	}

	wc := app.Config.WorkloadConfig
	res, workErr := runWorkload(ctx, app.Dispatcher, wc, logger, app.Progress)

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), app.Config.DispatchConfig.StopTimeout)
	defer cancel()
	stopErr := app.Dispatcher.Stop(stopCtx)

	if workErr != nil {
		return apperrors.NewAppError(apperrors.ErrDispatchSubmit, "нагрузка прервана", workErr)
	}
	if stopErr != nil {
		return apperrors.NewAppError(apperrors.ErrDispatchStop, "диспетчер не остановился в срок", stopErr)
	}

	logger.Info("нагрузка выполнена",
		"submitted", res.Submitted,
		"failed", res.Failed,
	)
	return nil
}
