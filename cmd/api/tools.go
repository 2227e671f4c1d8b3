package main

import (
	"context"
	"fmt"
	"os"

	"pets-catalog/internal/adapters/storage"
	"pets-catalog/internal/adapters/storage/dataset"
	"pets-catalog/internal/adapters/storage/sqlstore"
	"pets-catalog/internal/config"
	"pets-catalog/internal/domain/kinds"
	"pets-catalog/internal/domain/pets"
	"pets-catalog/internal/importer"
	"pets-catalog/internal/platform/httpclient"
	"pets-catalog/internal/platform/logger"
)

func openSQL(ctx context.Context, cli *config.CLI, log *logger.ZapLogger, what string) (*storage.Stores, error) {
	stores, err := storage.Open(ctx, cli.Storage.Config(cli.App, false), log)
	if err != nil {
		return nil, err
	}
	if stores.SQL == nil {
		_ = stores.Close(ctx)
		return nil, fmt.Errorf("%s needs a SQL backend (sqlite:, postgres://, mysql://), got %s", what, stores.Backend)
	}
	return stores, nil
}

func migrate(ctx context.Context, cli *config.CLI, log *logger.ZapLogger) error {
	stores, err := openSQL(ctx, cli, log, "migrate")
	if err != nil {
		return err
	}
	defer func() { _ = stores.Close(context.Background()) }()

	opts := sqlstore.MigrateOptions{Reset: cli.Migrate.Reset, GrantTo: cli.Migrate.GrantTo}
	if err := sqlstore.Migrate(ctx, stores.SQL, opts); err != nil {
		return err
	}
	log.Info("schema ready", map[string]any{
		"dialect":  string(stores.SQL.Dialect),
		"reset":    opts.Reset,
		"grant_to": opts.GrantTo,
	})
	return nil
}

func seed(ctx context.Context, cli *config.CLI, log *logger.ZapLogger) error {
	stores, err := storage.Open(ctx, cli.Storage.Config(cli.App, true), log)
	if err != nil {
		return err
	}
	defer func() { _ = stores.Close(context.Background()) }()

	if cli.Seed.Reset {
		if err := stores.Reset(ctx); err != nil {
			return err
		}
	}
	if err := storage.Seed(ctx, kinds.NewService(stores.Kinds), pets.NewService(stores.Pets)); err != nil {
		return err
	}
	log.Info("sample data loaded", map[string]any{"backend": string(stores.Backend)})
	return nil
}

func importTSV(ctx context.Context, cli *config.CLI, log *logger.ZapLogger) error {
	stores, err := openSQL(ctx, cli, log, "import")
	if err != nil {
		return err
	}
	defer func() { _ = stores.Close(context.Background()) }()

	tbl, err := dataset.Open(stores.SQL).Table(cli.Import.Table)
	if err != nil {
		return err
	}

	f, err := os.Open(cli.Import.File)
	if err != nil {
		return err
	}
	defer f.Close()

	l := log.With(map[string]any{"file": cli.Import.File})
	res, err := importer.Import(ctx, f, tbl, importer.Options{ChunkSize: cli.Import.ChunkSize}, l)
	if err != nil {
		return err
	}
	l.Info("import done", map[string]any{"table": tbl.Name(), "rows": res.Rows, "chunks": res.Chunks})
	return nil
}

// check consulta un servidor en marcha: /health y el tamaño de los listados.
func check(ctx context.Context, cli *config.CLI, log *logger.ZapLogger) error {
	c, err := httpclient.New(cli.Check.URL, cli.Check.Timeout)
	if err != nil {
		return err
	}

	h, err := c.Health(ctx)
	if err != nil {
		return err
	}
	ks, err := c.ListKinds(ctx)
	if err != nil {
		return err
	}
	ps, err := c.ListPets(ctx)
	if err != nil {
		return err
	}

	log.Info("server healthy", map[string]any{
		"url":     c.BaseURL,
		"status":  h.Status,
		"backend": h.Backend,
		"kinds":   len(ks),
		"pets":    len(ps),
	})
	return nil
}
