package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/databankhq/databank/modules/crm/infrastructure/persistence"
	"github.com/databankhq/databank/modules/crm/presentation/controllers"
	"github.com/databankhq/databank/modules/crm/services"
	"github.com/databankhq/databank/pkg/composables"
	"github.com/databankhq/databank/pkg/configuration"
	"github.com/databankhq/databank/pkg/eventbus"
	"github.com/databankhq/databank/pkg/httpapi"
	"github.com/databankhq/databank/pkg/middleware"
)

func main() {
	conf := configuration.Use()
	defer conf.Unload()
	log := conf.Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		log.WithError(err).Fatal("failed to create database pool")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.WithError(err).Fatal("database is unreachable")
	}

	bus := eventbus.NewEventPublisher(log)
	profiles := services.NewProfileService(persistence.NewProfileRepository(), bus)
	imports := services.NewImportService(profiles, log)
	exports := services.NewExportService(profiles)

	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))
	r.Use(poolMiddleware(pool))
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		_ = httpapi.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	controller := controllers.NewProfileAPIController(profiles, imports, exports, conf.MaxUploadSize, conf.ImportErrorDetailLimit)
	controller.Register(r)

	srv := &http.Server{
		Addr:              conf.SocketAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
	}()

	log.WithField("address", conf.SocketAddress).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server stopped")
	}
}

// poolMiddleware hangs the pool off every request context so repositories
// can query outside explicit transactions.
func poolMiddleware(pool *pgxpool.Pool) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(composables.WithPool(r.Context(), pool)))
		})
	}
}
