package cli

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/iliyamo/bowling-center/internal/client"
	"github.com/iliyamo/bowling-center/internal/config"
	"github.com/iliyamo/bowling-center/internal/gateway"
	"github.com/iliyamo/bowling-center/internal/handler"
	"github.com/iliyamo/bowling-center/internal/middleware"
	"github.com/iliyamo/bowling-center/internal/router"
)

func gatewayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gateway",
		Short: "Run the API gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			cfg := config.Load(config.ServiceGateway)
			rl := config.LoadRateLimitConfig()

			var mws []echo.MiddlewareFunc
			if rl.Enabled {
				rdb := config.NewRedisClient(config.LoadRedisConfig())
				if rdb == nil {
					log.Printf("gateway: redis unreachable; rate limiting disabled")
				} else {
					defer rdb.Close()
				}
				mws = append(mws, middleware.NewTokenBucket(rl, rdb))
			}
			if cfg.JWTSecret != "" {
				log.Printf("gateway: write guard enabled")
			}
			mws = append(mws, middleware.WriteGuard(cfg.JWTSecret))

			e := newEcho()
			router.RegisterGateway(e, newGateway(cfg), mws...)
			return serve(ctx, "gateway", cfg, e)
		},
	}
}

func newGateway(cfg config.Config) router.Gateway {
	hc := httpClient()
	down := func(base string) client.Config {
		return client.Config{BaseURL: base, LogRequests: cfg.LogDownstream}
	}
	return router.Gateway{
		Balls:        handler.NewBallProxy(gateway.NewBallClient(down(cfg.Clients.BallURL), hc, cfg.IDFormat)),
		Lanes:        handler.NewLaneProxy(gateway.NewLaneClient(down(cfg.Clients.LaneURL), hc, cfg.IDFormat)),
		Shoes:        handler.NewShoeProxy(gateway.NewShoeClient(down(cfg.Clients.ShoeURL), hc, cfg.IDFormat)),
		Transactions: handler.NewTransactionProxy(gateway.NewTransactionClient(down(cfg.Clients.TransactionURL), hc, cfg.IDFormat)),
	}
}
