package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/minhvuongle/yenvang-backend/api/responses"
	"github.com/minhvuongle/yenvang-backend/pkg/config"
	pkgerrors "github.com/minhvuongle/yenvang-backend/pkg/errors"
	"github.com/minhvuongle/yenvang-backend/pkg/logger"
)

const readyProbeTimeout = 3 * time.Second

// Pinger is any dependency that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-YenVang-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes every backing dependency and reports 503 with the
// aggregated failures when any is down.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-YenVang-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyProbeTimeout)
		defer cancel()

		var probeErr error
		status := map[string]string{}
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				status[name] = "down"
				probeErr = multierr.Append(probeErr, err)
				continue
			}
			status[name] = "up"
		}

		if probeErr != nil {
			err := pkgerrors.Wrap(pkgerrors.CodeDependency, probeErr, "dependencies unreachable").
				WithDetails(status)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "deps": status})
	}
}
