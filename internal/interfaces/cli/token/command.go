package token

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/systech-labs/deskflow/internal/infrastructure/auth"
	"github.com/systech-labs/deskflow/internal/interfaces/cli/bootstrap"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/biztime"
	"github.com/systech-labs/deskflow/internal/shared/constants"
)

var (
	env        string
	configPath string
	userID     uint
	role       string
	clientID   uint
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for development",
		Long: `Sign a bearer token for the given actor with the configured JWT secret.
Client tokens need --client.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().UintVarP(&userID, "user", "u", 0, "User ID (required)")
	cmd.Flags().StringVarP(&role, "role", "r", authorization.RoleAgent.String(), "Role: admin, company_admin, agent or client")
	cmd.Flags().UintVar(&clientID, "client", 0, "Client account ID for client tokens")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	actor, err := buildActor(userID, role, clientID)
	if err != nil {
		return err
	}

	cfg, log, err := bootstrap.Load(env, configPath)
	if err != nil {
		return err
	}

	jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.AccessExpMinutes)
	token, expiresAt, err := jwtSvc.Generate(actor)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	log.Debugw("token minted", "user_id", actor.UserID, "role", actor.Role)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, token)
	fmt.Fprintf(out, "expires at %s\n", biztime.FormatInBizTimezone(expiresAt, time.RFC3339))
	return nil
}

func buildActor(userID uint, role string, clientID uint) (authorization.Actor, error) {
	r, err := authorization.ParseUserRole(role)
	if err != nil {
		return authorization.Actor{}, err
	}

	actor := authorization.Actor{UserID: userID, Role: r}
	if clientID != 0 {
		if r != authorization.RoleClient {
			return authorization.Actor{}, fmt.Errorf("--client only applies to client tokens")
		}
		actor.ClientID = &clientID
	}

	if err := actor.Validate(); err != nil {
		return authorization.Actor{}, err
	}
	return actor, nil
}
