// Package observability starts the process-wide tracing and profiling
// exporters configured for the API server.
package observability

import (
	"context"
	"errors"

	"github.com/riskibarqy/tournament-league/internal/config"
	"github.com/riskibarqy/tournament-league/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// Telemetry is everything Start brought up. Shutdown is safe on a nil value.
type Telemetry struct {
	tracing   bool
	profiling *Profiling
}

// Start configures the global OpenTelemetry providers through uptrace and
// then profiling. Disabled exporters are skipped.
func Start(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{tracing: startTracing(cfg, logger)}

	profiling, err := StartProfiling(cfg, logger)
	if err != nil {
		return nil, errors.Join(err, t.Shutdown(context.Background()))
	}
	t.profiling = profiling
	return t, nil
}

func startTracing(cfg config.Config, logger *logging.Logger) bool {
	if !cfg.UptraceEnabled || cfg.UptraceDSN == "" {
		logger.Debug("uptrace disabled")
		return false
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)
	logger.Info("uptrace enabled",
		"environment", cfg.AppEnv,
		"logs_enabled", cfg.UptraceLogsEnabled,
	)
	return true
}

// Shutdown stops profiling and then flushes pending spans.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error
	if err := t.profiling.Stop(ctx); err != nil {
		errs = append(errs, err)
	}
	if t.tracing {
		if err := uptrace.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
		t.tracing = false
	}
	return errors.Join(errs...)
}
