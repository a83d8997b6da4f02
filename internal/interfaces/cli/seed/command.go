package seed

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/systech-labs/deskflow/internal/infrastructure/database"
	"github.com/systech-labs/deskflow/internal/infrastructure/migration"
	"github.com/systech-labs/deskflow/internal/infrastructure/persistence/seeds"
	"github.com/systech-labs/deskflow/internal/infrastructure/repository"
	"github.com/systech-labs/deskflow/internal/interfaces/cli/bootstrap"
	"github.com/systech-labs/deskflow/internal/shared/constants"
	"github.com/systech-labs/deskflow/internal/shared/db"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

var (
	env        string
	configPath string
	file       string
	migrate    bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the product catalogue",
		Long: `Create products with their modules, components, add-ons, epics, features and
conversion defaults from a YAML catalogue. Products that already exist are skipped.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVarP(&file, "file", "f", "configs/catalogue.example.yaml", "Path to the catalogue YAML")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Run migrations before seeding")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	catalogue, err := seeds.LoadCatalogue(file)
	if err != nil {
		return err
	}

	cfg, log, err := bootstrap.Load(env, configPath)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	gdb := database.Get()
	if migrate {
		if err := migration.NewStrategy(env, &cfg.Database, log).Migrate(gdb); err != nil {
			return err
		}
	}

	seeder := seeds.NewSeeder(repository.NewProductRepository(gdb), db.NewTransactionManager(gdb), log)
	result, err := seeder.Seed(cmd.Context(), catalogue)
	if err != nil {
		log.Errorw("seeding failed", "file", file, "error", err)
		return fmt.Errorf("seeding failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created: %s\n", listOrNone(result.Created))
	fmt.Fprintf(out, "Skipped: %s\n", listOrNone(result.Skipped))
	return nil
}

func listOrNone(codes []string) string {
	if len(codes) == 0 {
		return "none"
	}
	return strings.Join(codes, ", ")
}
