// Package config define la línea de comandos (kong) y cómo se traduce a la
// configuración de logger y storage. Cada flag se puede pasar también por env.
package config

import (
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"pets-catalog/internal/adapters/storage"
	"pets-catalog/internal/platform/logger"
)

// EnvPrefix es el prefijo de las variables de entorno de los flags sin env explícito.
const EnvPrefix = "PETS"

type CLI struct {
	App string `name:"app-name" default:"pets-catalog" env:"APP_NAME" help:"Application name (logs, metrics namespace, mongo appname)."`

	Log     Log     `embed:"" prefix:"log-"`
	Storage Storage `embed:""`

	Serve   ServeCmd   `cmd:"" default:"1" help:"Run the HTTP server (HTML pages, JSON API, swagger, metrics)."`
	Migrate MigrateCmd `cmd:"" help:"Create the kind/pet tables (SQL backends)."`
	Seed    SeedCmd    `cmd:"" help:"Load the sample kinds and pets."`
	Import  ImportCmd  `cmd:"" help:"Import a TSV file into a table, in chunks."`
	Check   CheckCmd   `cmd:"" help:"Call /health on a running server."`
}

type Log struct {
	Level  string `default:"info" env:"LOG_LEVEL"  enum:"debug,info,warn,error" help:"Log level."`
	Format string `default:"text" env:"LOG_FORMAT" enum:"text,json"             help:"Log format."`
}

func (l Log) Options(app string) logger.Options {
	return logger.Options{
		Level:  logger.ParseLevel(l.Level),
		Format: logger.ParseFormat(l.Format),
		App:    app,
	}
}

type Storage struct {
	DSN            string        `name:"dsn"      env:"DB_DSN" help:"sqlite:pets.db, postgres://..., mysql://..., mongodb://... (empty: POSTGRES_* or in-memory)."`
	MongoDB        string        `name:"mongo-db" default:"pets" help:"Database used with mongodb:// DSNs."`
	ConnectTimeout time.Duration `default:"10s" help:"How long to retry the first connection."`
	TraceSQL       bool          `name:"trace-sql" help:"Log every SQL statement (postgres)."`

	Postgres Postgres `embed:"" prefix:"postgres-"`
}

// Postgres arma el DSN a partir de variables sueltas, como se suele
// configurar en docker-compose. Sin host no se usa.
type Postgres struct {
	Host     string `env:"POSTGRES_HOST" help:"PostgreSQL host (used when --dsn is empty)."`
	Port     int    `default:"5432" env:"POSTGRES_PORT" help:"PostgreSQL port."`
	DB       string `name:"db" default:"pets_db" env:"POSTGRES_DB" help:"PostgreSQL database."`
	User     string `default:"pets_app" env:"POSTGRES_USER" help:"PostgreSQL user."`
	Password string `env:"POSTGRES_PASSWORD" help:"PostgreSQL password."`
	SSLMode  string `name:"sslmode" default:"disable" env:"POSTGRES_SSLMODE" help:"PostgreSQL sslmode."`
}

func (p Postgres) DSN() string {
	host := strings.TrimSpace(p.Host)
	if host == "" {
		return ""
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, strconv.Itoa(p.Port)),
		Path:   "/" + p.DB,
	}
	switch {
	case p.User != "" && p.Password != "":
		u.User = url.UserPassword(p.User, p.Password)
	case p.User != "":
		u.User = url.User(p.User)
	}
	if p.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {p.SSLMode}}.Encode()
	}
	return u.String()
}

// ResolveDSN: --dsn gana; si no, POSTGRES_*; si no, "" (memoria).
func (s Storage) ResolveDSN() string {
	if dsn := strings.TrimSpace(s.DSN); dsn != "" {
		return dsn
	}
	return s.Postgres.DSN()
}

func (s Storage) Config(app string, migrate bool) storage.Config {
	return storage.Config{
		DSN:            s.ResolveDSN(),
		MongoDB:        s.MongoDB,
		AppName:        app,
		ConnectTimeout: s.ConnectTimeout,
		Migrate:        migrate,
		TraceSQL:       s.TraceSQL,
	}
}

type ServeCmd struct {
	Port            int           `default:"8080" env:"PORT" help:"HTTP port."`
	Migrate         bool          `default:"true" negatable:"" help:"Create SQL tables on start."`
	Seed            bool          `help:"Load sample data on start when there are no kinds."`
	ShutdownTimeout time.Duration `default:"10s" help:"Grace period for in-flight requests."`
}

func (c ServeCmd) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

type MigrateCmd struct {
	Reset   bool   `help:"Drop kind/pet tables first."`
	GrantTo string `name:"grant-to" help:"PostgreSQL role that gets CRUD on the tables (least privilege app user)."`
}

type SeedCmd struct {
	Reset bool `help:"Delete existing data first."`
}

type ImportCmd struct {
	File      string `arg:"" type:"existingfile" help:"TSV file with a header row."`
	Table     string `arg:"" help:"Destination table (created if missing)."`
	ChunkSize int    `default:"10000" help:"Rows per transaction."`
}

type CheckCmd struct {
	URL     string        `default:"http://localhost:8080" help:"Base URL of the server."`
	Timeout time.Duration `default:"5s" help:"Request timeout."`
}

// Options son las opciones de kong compartidas por main y los tests.
func Options() []kong.Option {
	return []kong.Option{
		kong.Name("pets-catalog"),
		kong.Description("Pets and kinds catalog: HTML pages, JSON API and data tools."),
		kong.DefaultEnvars(EnvPrefix),
		kong.UsageOnError(),
	}
}
