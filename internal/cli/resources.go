package cli

import (
	"github.com/spf13/cobra"

	"github.com/iliyamo/bowling-center/internal/config"
	"github.com/iliyamo/bowling-center/internal/handler"
	"github.com/iliyamo/bowling-center/internal/repository"
	"github.com/iliyamo/bowling-center/internal/router"
)

func laneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lane",
		Short: "Run lane-service (MySQL)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			cfg := config.Load(config.ServiceLane)
			db, err := openStore(ctx, cfg, repository.LaneSchema)
			if err != nil {
				return err
			}
			defer db.Close()

			e := newEcho()
			router.RegisterHealth(e, db)
			router.RegisterCollection(e, "/lanes", handler.NewLaneHandler(repository.NewLaneRepo(db), cfg.IDFormat))
			return serve(ctx, "lane-service", cfg, e)
		},
	}
}

func ballCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ball",
		Short: "Run bowlingball-service (MySQL)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			cfg := config.Load(config.ServiceBall)
			db, err := openStore(ctx, cfg, repository.BallSchema)
			if err != nil {
				return err
			}
			defer db.Close()

			e := newEcho()
			router.RegisterHealth(e, db)
			router.RegisterCollection(e, "/bowlingballs", handler.NewBallHandler(repository.NewBallRepo(db), cfg.IDFormat))
			return serve(ctx, "bowlingball-service", cfg, e)
		},
	}
}

func shoeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shoe",
		Short: "Run shoe-service (Postgres)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			cfg := config.Load(config.ServiceShoe)
			db, err := openStore(ctx, cfg, repository.ShoeSchema)
			if err != nil {
				return err
			}
			defer db.Close()

			e := newEcho()
			router.RegisterHealth(e, db)
			router.RegisterCollection(e, "/shoes", handler.NewShoeHandler(repository.NewShoeRepo(db), cfg.IDFormat))
			return serve(ctx, "shoe-service", cfg, e)
		},
	}
}
