package controllers

import (
	"net/http"

	"github.com/brunomacedo/vitrinezap-backend/api/responses"
	"github.com/brunomacedo/vitrinezap-backend/pkg/config"
	"github.com/brunomacedo/vitrinezap-backend/pkg/db"
	pkgerrors "github.com/brunomacedo/vitrinezap-backend/pkg/errors"
	"github.com/brunomacedo/vitrinezap-backend/pkg/logger"
	"github.com/brunomacedo/vitrinezap-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-VitrineZap-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-VitrineZap-Env", cfg.App.Env)

		checks := map[string]string{}

		if dbP != nil {
			if err := dbP.Ping(r.Context()); err != nil {
				if logg != nil {
					logg.Error(r.Context(), "health.db_unreachable", err)
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
			checks["database"] = "ok"
		}

		if redisClient != nil {
			if err := redisClient.Ping(r.Context()); err != nil {
				if logg != nil {
					logg.Error(r.Context(), "health.redis_unreachable", err)
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unreachable"))
				return
			}
			checks["redis"] = "ok"
		}

		checks["status"] = "ready"
		responses.WriteSuccess(w, checks)
	}
}
