// Package cli wires configuration, storage and HTTP servers into the
// `bowling` command.  Each service is one subcommand of a single binary.
package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/iliyamo/bowling-center/internal/config"
	"github.com/iliyamo/bowling-center/internal/database"
)

// Version is stamped at build time.
var Version = "dev"

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bowling",
		Short:         "Bowling centre services: lanes, balls, shoes, transactions and the API gateway",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadDotEnv()
		},
	}

	root.AddCommand(laneCmd())
	root.AddCommand(ballCmd())
	root.AddCommand(shoeCmd())
	root.AddCommand(transactionCmd())
	root.AddCommand(gatewayCmd())
	root.AddCommand(seedCmd())
	root.AddCommand(tokenCmd())

	return root
}

// newEcho returns an Echo instance with request logging and panic
// recovery installed.
func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	return e
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// openStore opens the service database and creates its tables.
func openStore(ctx context.Context, cfg config.Config, schema ...string) (*sql.DB, error) {
	db, err := database.Open(cfg.DB)
	if err != nil {
		return nil, err
	}
	sctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(sctx, db, schema...); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// serve runs e on cfg.Port until ctx is cancelled, then drains in-flight
// requests for up to ten seconds.
func serve(ctx context.Context, name string, cfg config.Config, e *echo.Echo) error {
	addr := ":" + cfg.Port
	errc := make(chan error, 1)
	go func() {
		log.Printf("%s: listening on %s (env=%s)", name, addr, cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("%s: %w", name, err)
	case <-ctx.Done():
	}

	log.Printf("%s: shutting down", name)
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(sctx)
}

// httpClient is shared by every downstream client of one process.  It
// keeps the transport's default timeouts.
func httpClient() *http.Client {
	return &http.Client{}
}
