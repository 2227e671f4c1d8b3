// Package storage elige el adapter (memory, sqlstore, mongo) a partir del DSN.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"pets-catalog/internal/adapters/storage/memory"
	"pets-catalog/internal/adapters/storage/mongo"
	"pets-catalog/internal/adapters/storage/sqlstore"
	"pets-catalog/internal/domain/kinds"
	"pets-catalog/internal/domain/pets"
	"pets-catalog/internal/platform/logger"
)

type Backend string

const (
	BackendMemory Backend = "memory"
	BackendSQL    Backend = "sql"
	BackendMongo  Backend = "mongo"
)

type Config struct {
	// DSN vacío => memory.
	DSN string
	// MongoDB es la base para DSNs mongodb:// (la URI no siempre la trae).
	MongoDB string
	AppName string
	// ConnectTimeout acota los reintentos de conexión al arrancar.
	ConnectTimeout time.Duration
	// Migrate crea las tablas SQL al abrir.
	Migrate bool
	// TraceSQL loguea cada query (solo Postgres, vía pgx-zap).
	TraceSQL bool
}

// Stores es lo que necesita el router: un repo por módulo y cómo cerrarlos.
type Stores struct {
	Backend Backend
	Kinds   kinds.Repository
	Pets    pets.Repository

	// SQL queda expuesto para dataset/import; nil si el backend no es SQL.
	SQL *sqlstore.DB

	close func(context.Context) error
	reset func(context.Context) error
}

func (s *Stores) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Reset borra todos los kinds y pets del backend.
func (s *Stores) Reset(ctx context.Context) error {
	if s == nil || s.reset == nil {
		return nil
	}
	return s.reset(ctx)
}

func BackendFor(dsn string) (Backend, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" || dsn == "memory" || dsn == "memory://" {
		return BackendMemory, nil
	}
	if strings.HasPrefix(dsn, "mongodb://") || strings.HasPrefix(dsn, "mongodb+srv://") {
		return BackendMongo, nil
	}
	if _, ok := sqlstore.DetectDialect(dsn); ok {
		return BackendSQL, nil
	}
	return "", fmt.Errorf("storage: unsupported dsn %q", sqlstore.Redact(dsn))
}

func Open(ctx context.Context, cfg Config, log *logger.ZapLogger) (*Stores, error) {
	if log == nil {
		log = logger.Nop()
	}

	backend, err := BackendFor(cfg.DSN)
	if err != nil {
		return nil, err
	}
	l := log.With(map[string]any{"backend": string(backend), "dsn": sqlstore.Redact(cfg.DSN)})

	switch backend {
	case BackendMemory:
		m := memory.NewStore()
		l.Info("storage opened", nil)
		return &Stores{Backend: backend, Kinds: m.Kinds(), Pets: m.Pets(), reset: m.Reset}, nil

	case BackendMongo:
		s, err := mongo.Connect(ctx, mongo.Config{AppName: cfg.AppName, URI: cfg.DSN, DBName: cfg.MongoDB})
		if err != nil {
			return nil, err
		}
		if err := retry(ctx, cfg.ConnectTimeout, l, s.Ping); err != nil {
			_ = s.Close(context.Background())
			return nil, err
		}
		l.Info("storage opened", nil)
		return &Stores{Backend: backend, Kinds: s.Kinds(), Pets: s.Pets(), close: s.Close, reset: s.Drop}, nil

	default:
		opts := sqlstore.Options{}
		if cfg.TraceSQL {
			opts.SQLTracer = log.Zap().Named("sql")
		}
		db, err := sqlstore.Open(cfg.DSN, opts)
		if err != nil {
			return nil, err
		}
		if err := retry(ctx, cfg.ConnectTimeout, l, db.Ping); err != nil {
			_ = db.Close()
			return nil, err
		}
		if cfg.Migrate {
			if err := sqlstore.Migrate(ctx, db, sqlstore.MigrateOptions{}); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		l.Info("storage opened", map[string]any{"dialect": string(db.Dialect)})
		return &Stores{
			Backend: backend,
			Kinds:   sqlstore.NewKindsRepo(db),
			Pets:    sqlstore.NewPetsRepo(db),
			SQL:     db,
			close:   func(context.Context) error { return db.Close() },
			reset: func(ctx context.Context) error {
				return sqlstore.Migrate(ctx, db, sqlstore.MigrateOptions{Reset: true})
			},
		}, nil
	}
}

// retry hace ping con backoff exponencial hasta timeout: en docker-compose
// la base suele arrancar después que la app.
func retry(ctx context.Context, timeout time.Duration, log logger.Logger, ping func(context.Context) error) error {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxElapsedTime = timeout

	op := func() error {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		return ping(pctx)
	}
	notify := func(err error, d time.Duration) {
		log.Warn("storage not ready, retrying", map[string]any{"err": err, "in": d.String()})
	}

	if err := backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify); err != nil {
		return fmt.Errorf("storage: connect: %w", err)
	}
	return nil
}
