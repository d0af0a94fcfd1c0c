package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"

	"github.com/markd315/football-vibes-sub000/data"
	"github.com/markd315/football-vibes-sub000/internal/api"
	"github.com/markd315/football-vibes-sub000/internal/config"
	"github.com/markd315/football-vibes-sub000/internal/dice"
	"github.com/markd315/football-vibes-sub000/internal/engine"
	"github.com/markd315/football-vibes-sub000/internal/logger"
	"github.com/markd315/football-vibes-sub000/internal/outcome"
	"github.com/markd315/football-vibes-sub000/internal/rpc"
	"github.com/markd315/football-vibes-sub000/internal/store"
	"github.com/markd315/football-vibes-sub000/internal/tuning"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	entry := logger.WithService("play-engine")

	var (
		fsys   fs.FS = data.FS
		loader       = tuning.NewLoader(data.FS, tuning.DefaultPaths())
	)
	if cfg.DataDir != "" {
		fsys = os.DirFS(cfg.DataDir)
		loader = tuning.NewDirLoader(cfg.DataDir)
	}
	params, err := loader.Params()
	if err != nil {
		log.WithError(err).Fatal("Failed to load tuning")
	}

	st, err := store.Open(cfg.StateStore, cfg.StatePath)
	if err != nil {
		log.WithError(err).Fatal("Failed to open state store")
	}
	defer st.Close()

	rng := dice.DefaultRNG()
	if cfg.RNGSeed != 0 {
		rng = dice.NewSeededRNG(cfg.RNGSeed)
		entry.WithField("seed", cfg.RNGSeed).Warn("Using seeded RNG; plays are reproducible")
	}

	sc, err := engine.New(context.Background(), engine.Options{
		Profiles: outcome.NewFileRepository(fsys),
		Store:    st,
		Params:   &params,
		RNG:      rng,
		Log:      entry,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to start session")
	}
	session := engine.NewSession(sc)
	entry = logger.WithSession(session.ID()).WithField("service", "play-engine")

	if cfg.DataDir != "" && cfg.TuningReloadInterval > 0 {
		reloader := tuning.NewReloader(loader, session.SetTuning, entry)
		watcher := tuning.NewFileWatcher(tuning.DefaultPaths().OnDisk(cfg.DataDir), cfg.TuningReloadInterval, reloader.OnChange)
		watcher.Start()
		defer watcher.Stop()
	}

	history, _ := st.(store.Historian)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      api.NewHandler(session, history, entry).Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	gs := grpc.NewServer()
	rpc.Register(gs, rpc.NewServer(session, entry))
	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.GRPCPort))
	if err != nil {
		log.WithError(err).Fatal("Failed to listen for gRPC")
	}

	go func() {
		entry.WithField("port", cfg.GRPCPort).Info("gRPC server listening")
		if err := gs.Serve(lis); err != nil {
			entry.WithError(err).Error("gRPC server stopped")
		}
	}()
	go func() {
		entry.WithFields(logrus.Fields{
			"port":  cfg.Port,
			"store": cfg.StateStore,
		}).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	entry.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	gs.GracefulStop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		entry.WithError(err).Error("Server forced to shutdown")
	}
}
