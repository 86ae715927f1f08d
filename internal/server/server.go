// Package server assembles the application: configuration, database,
// repositories, services, controllers and the HTTP stack. Everything is
// wired explicitly here; no package holds hidden global state.
package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/foodnest/foodnest/app/controllers"
	appmw "github.com/foodnest/foodnest/app/middleware"
	"github.com/foodnest/foodnest/app/repositories"
	"github.com/foodnest/foodnest/app/routes"
	"github.com/foodnest/foodnest/app/services"
	"github.com/foodnest/foodnest/config"
	"github.com/foodnest/foodnest/pkg/database"
	"github.com/foodnest/foodnest/pkg/logger"
	"github.com/foodnest/foodnest/pkg/metrics"
	"github.com/foodnest/foodnest/pkg/middleware"
	"github.com/foodnest/foodnest/pkg/reqid"
	"github.com/foodnest/foodnest/pkg/router"
	"github.com/foodnest/foodnest/pkg/storage"
)

const shutdownTimeout = 15 * time.Second

// Build connects the database and wires the full dependency graph for the
// HTTP server. The returned cleanup flushes the Mongo log handler (when
// enabled) and disconnects the client.
func Build(ctx context.Context) (*router.Router, *database.DB, func(), error) {
	if err := config.Load(); err != nil {
		return nil, nil, nil, err
	}

	db, err := database.Connect(ctx, config.MongoURI(), config.MongoDatabase())
	if err != nil {
		return nil, nil, nil, err
	}

	cleanup := func() {
		if err := db.Close(context.Background()); err != nil {
			logger.Error("database close", "error", err)
		}
	}

	// Optionally fan logs out to the api_logs collection as well as stdout.
	if config.LogToMongo() {
		mh := logger.NewMongoHandler(db.Collection(database.ColLogs))
		logger.SetHandler(logger.NewMultiHandler(logger.L.Handler(), mh))

		base := cleanup
		cleanup = func() {
			mh.Close()
			base()
		}
	}

	disk, err := storage.New()
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	authSvc := services.NewAuthService(userRepo)
	userSvc := services.NewUserService(userRepo, disk)
	productSvc := services.NewProductService(productRepo)
	orderSvc := services.NewOrderService(orderRepo, productRepo)

	r := router.New()
	r.Use(
		reqid.Middleware(),
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(config.RateLimitMax(), config.RateLimitWindow()),
		metrics.Middleware(),
	)

	routes.RegisterAPI(r, routes.Deps{
		Auth:        controllers.NewAuthController(authSvc),
		Users:       controllers.NewUserController(userSvc),
		Products:    controllers.NewProductController(productSvc),
		Orders:      controllers.NewOrderController(orderSvc),
		RequireUser: appmw.RequireUser(authSvc),
	})

	return r, db, cleanup, nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests before disconnecting from MongoDB.
func Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r, db, cleanup, err := Build(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := db.EnsureIndexes(ctx); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", shutdownTimeout.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
		return err
	}

	return nil
}
