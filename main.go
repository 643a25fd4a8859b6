package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	intconfig "househunters/internal/config"
	intdb "househunters/internal/db"
	router "househunters/internal/http"
	"househunters/internal/http/handlers"
	"househunters/internal/repositories"
	"househunters/internal/repositories/memory"
	"househunters/internal/services"
	"househunters/internal/storage"
	"househunters/internal/utils"
)

func main() {
	env, err := intconfig.LoadEnv()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := utils.NewLogger(env.LogLevel)
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, env, log)
	if err != nil {
		log.WithError(err).Fatal("open storage")
	}
	defer closeStore()

	if env.SeedDemo {
		if err := services.SeedDemo(ctx, store, log); err != nil {
			log.WithError(err).Error("seed demo data")
		}
	}

	if err := os.MkdirAll(env.UploadDir, 0o755); err != nil {
		log.WithError(err).Fatal("create upload dir")
	}
	files := storage.Local{
		Dir:         env.UploadDir,
		URLPrefix:   env.PublicUploads,
		MaxSize:     env.MaxUploadSize,
		AllowedExts: env.AllowedExts,
	}

	hd := &handlers.Handler{
		Store:    store,
		Files:    files,
		Secret:   []byte(env.JWTSecret.Value()),
		TokenTTL: env.TokenTTL,
		Log:      log,
		App:      handlers.AppInfo{Name: env.AppName, Version: env.AppVersion, Environment: env.Environment},
	}
	r := router.NewRouter(router.RouterDeps{
		Handler:       hd,
		Log:           log,
		CORSOrigins:   env.CORSOrigins,
		UploadDir:     env.UploadDir,
		UploadURL:     env.PublicUploads,
		MaxUploadSize: env.MaxUploadSize,
	})
	srv := router.NewServer(env.AppAddr, r)

	go func() {
		log.WithFields(logrus.Fields{"addr": env.AppAddr, "storage": env.StorageDriver}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
		return
	}
	log.Info("server stopped")
}

// openStore builds the repository set for the configured driver.
func openStore(ctx context.Context, env intconfig.Env, log *logrus.Logger) (repositories.Store, func(), error) {
	if env.StorageDriver == intconfig.DriverMemory {
		log.Warn("using in-memory storage; data is lost on restart")
		return memory.New().Repositories(), func() {}, nil
	}

	conn, err := intconfig.ConnectDB(ctx, env.DatabaseDSN.Value())
	if err != nil {
		return repositories.Store{}, nil, err
	}
	if err := intdb.EnsureSchema(ctx, conn, log); err != nil {
		_ = conn.Close()
		return repositories.Store{}, nil, err
	}
	log.Info("database connected")

	store := repositories.NewSQLStore(conn)
	store.Ping = func(ctx context.Context) error { return intconfig.PingDB(ctx, conn) }
	return store, func() { _ = conn.Close() }, nil
}
