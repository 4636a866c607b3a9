package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benadictjacob/Inav-backend/configs"
	"github.com/benadictjacob/Inav-backend/internal/engine"
	"github.com/benadictjacob/Inav-backend/internal/handlers"
	"github.com/benadictjacob/Inav-backend/internal/ledger"
	"github.com/benadictjacob/Inav-backend/internal/logger"
	"github.com/benadictjacob/Inav-backend/internal/routes"
	"github.com/benadictjacob/Inav-backend/internal/seed"
	"github.com/benadictjacob/Inav-backend/internal/store"
	"go.uber.org/zap"
)

func main() {
	logger.Init(os.Getenv("LOANPAY_DEBUG") != "")
	defer logger.Log.Sync()

	configs.LoadConfig()

	db, err := store.New(configs.AppConfig.DB.DSN)
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}
	logger.Log.Info("connected to the database")

	if err := store.Migrate(db); err != nil {
		logger.Log.Fatal("migrations failed", zap.Error(err))
	}
	logger.Log.Info("migrations loaded")

	if configs.AppConfig.Seed.Enabled {
		seed.Run(db)
	}

	ledgerSvc := ledger.NewService(db, logger.Log)
	paymentEngine := engine.New(db, logger.Log)
	handler := handlers.New(ledgerSvc, paymentEngine, logger.Log, !configs.AppConfig.IsProduction())

	router := routes.New(routes.Options{
		Handler:    handler,
		Log:        logger.Log,
		CORSOrigin: configs.AppConfig.CORS.Origin,
	})

	srv := &http.Server{
		Addr:         configs.AppConfig.Server.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("graceful shutdown failed", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Log.Error("db close skipped, reason:", zap.Error(err))
	} else {
		sqlDB.Close()
		logger.Log.Info("db closed")
	}

	logger.Log.Info("server stopped")
}
