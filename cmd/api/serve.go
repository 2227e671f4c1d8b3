package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"pets-catalog/internal/adapters/storage"
	"pets-catalog/internal/config"
	"pets-catalog/internal/domain/kinds"
	"pets-catalog/internal/domain/pets"
	"pets-catalog/internal/platform/logger"
	"pets-catalog/internal/router"
)

func serve(ctx context.Context, cli *config.CLI, log *logger.ZapLogger) error {
	stores, err := storage.Open(ctx, cli.Storage.Config(cli.App, cli.Serve.Migrate), log)
	if err != nil {
		return err
	}
	defer func() { _ = stores.Close(context.Background()) }()

	if cli.Serve.Seed {
		if err := seedIfEmpty(ctx, stores, log); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	h, err := router.NewRouter(router.Options{
		Kinds:    stores.Kinds,
		Pets:     stores.Pets,
		Backend:  string(stores.Backend),
		Logger:   log,
		Registry: reg,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cli.Serve.Addr(),
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "backend": string(stores.Backend)})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("stopping server", nil)

		sctx, cancel := context.WithTimeout(context.Background(), cli.Serve.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	return g.Wait()
}

// seedIfEmpty: con --seed, un backend sin kinds arranca con los datos de ejemplo.
func seedIfEmpty(ctx context.Context, stores *storage.Stores, log logger.Logger) error {
	ks, ps := kinds.NewService(stores.Kinds), pets.NewService(stores.Pets)

	existing, err := ks.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info("seed skipped: data already present", map[string]any{"kinds": len(existing)})
		return nil
	}
	if err := storage.Seed(ctx, ks, ps); err != nil {
		return err
	}
	log.Info("sample data loaded", nil)
	return nil
}
