package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/bowling-center/internal/client"
	"github.com/iliyamo/bowling-center/internal/config"
	"github.com/iliyamo/bowling-center/internal/handler"
	"github.com/iliyamo/bowling-center/internal/queue"
	"github.com/iliyamo/bowling-center/internal/repository"
	"github.com/iliyamo/bowling-center/internal/router"
	"github.com/iliyamo/bowling-center/internal/service"
)

func transactionCmd() *cobra.Command {
	var auditDir string
	cmd := &cobra.Command{
		Use:   "transaction",
		Short: "Run transaction-service",
		Long: `Run transaction-service.

Lane, ball and shoe ids are resolved against their owning services on every
create and update.  When RABBITMQ_URL is set, every change is published to
the transaction.events queue and an audit consumer appends it to
<audit-dir>/transactions.log.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			cfg := config.Load(config.ServiceTransaction)
			db, err := openStore(ctx, cfg, repository.TransactionSchema)
			if err != nil {
				return err
			}
			defer db.Close()

			store := repository.NewTransactionRepo(db)
			if cfg.SeedSampleData {
				if _, err := service.SeedSampleData(ctx, store, time.Now()); err != nil {
					return err
				}
			}

			wf := newWorkflow(cfg, store)

			if cfg.AMQPURL != "" {
				go func() {
					err := queue.NewConsumer(cfg.AMQPURL, auditDir).Run(ctx)
					if err != nil && !errors.Is(err, context.Canceled) {
						log.Printf("transaction-consumer: stopped: %v", err)
					}
				}()
			}

			e := newEcho()
			router.RegisterHealth(e, db)
			router.RegisterCollection(e, "/api/transactions", handler.NewTransactionHandler(wf, cfg.IDFormat))
			return serve(ctx, "transaction-service", cfg, e)
		},
	}
	cmd.Flags().StringVar(&auditDir, "audit-dir", "logs", "directory for the transaction audit log")
	return cmd
}

// newWorkflow builds the workflow with remote lookups against the lane,
// ball and shoe services.
func newWorkflow(cfg config.Config, store service.TransactionStore) *service.TransactionWorkflow {
	hc := httpClient()
	remote := func(base string) client.Config {
		return client.Config{BaseURL: base, LogRequests: cfg.LogDownstream}
	}

	var opts []service.Option
	if pub := queue.NewPublisher(cfg.AMQPURL); pub != nil {
		opts = append(opts, service.WithEvents(pub))
	}
	return service.NewTransactionWorkflow(
		client.NewLaneClient(remote(cfg.Clients.LaneURL), hc),
		client.NewBallClient(remote(cfg.Clients.BallURL), hc),
		client.NewShoeClient(remote(cfg.Clients.ShoeURL), hc),
		store,
		opts...,
	)
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample transactions when the transaction store is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			cfg := config.Load(config.ServiceTransaction)
			db, err := openStore(ctx, cfg, repository.TransactionSchema)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := service.SeedSampleData(ctx, repository.NewTransactionRepo(db), time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d transactions\n", n)
			return nil
		},
	}
}
