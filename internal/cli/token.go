package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/bowling-center/internal/config"
	"github.com/iliyamo/bowling-center/internal/utils"
)

func tokenCmd() *cobra.Command {
	var (
		subject string
		secret  string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a staff token for the gateway write guard",
		Long: `Mint an HS256 staff token.

The secret defaults to the gateway's JWT_SECRET.  Send the token as
"Authorization: Bearer <token>" on POST, PUT and DELETE requests.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = config.Load(config.ServiceGateway).JWTSecret
			}
			tok, err := utils.NewStaffToken(secret, subject, ttl, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok.Token)
			return nil
		},
	}
	cmd.Flags().StringVarP(&subject, "subject", "s", "staff", "token subject")
	cmd.Flags().StringVar(&secret, "secret", "", "signing secret (default: JWT_SECRET)")
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "token lifetime")
	return cmd
}
