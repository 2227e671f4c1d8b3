package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"go.uber.org/automaxprocs/maxprocs"

	"pets-catalog/internal/config"
	"pets-catalog/internal/platform/logger"
)

// @title        Pets catalog API
// @version      1.0
// @description  CRUD de mascotas y kinds (tipos de mascota).
// @BasePath     /api
func main() {
	var cli config.CLI
	kongCtx := kong.Parse(&cli, config.Options()...)

	log := logger.New(cli.Log.Options(cli.App))

	if _, err := maxprocs.Set(maxprocs.Logger(log.Zap().Sugar().Debugf)); err != nil {
		log.Warn("failed to set GOMAXPROCS", map[string]any{"err": err})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd := kongCtx.Command()
	log.Debug("command", map[string]any{"command": cmd})

	var err error
	switch cmd {
	case "serve":
		err = serve(ctx, &cli, log)
	case "migrate":
		err = migrate(ctx, &cli, log)
	case "seed":
		err = seed(ctx, &cli, log)
	case "import <file> <table>":
		err = importTSV(ctx, &cli, log)
	case "check":
		err = check(ctx, &cli, log)
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}

	stop()
	if err != nil {
		log.Error("command failed", map[string]any{"command": cmd, "err": err})
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}
