package main

import (
	"fmt"
	"net"
	"os"
	"os/user"
	"path/filepath"

	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/grc-tools/control-atlas/pkg/server"
	compliancesvc "github.com/grc-tools/control-atlas/pkg/services/compliance"
	"github.com/grc-tools/control-atlas/pkg/services/config"
	"github.com/grc-tools/control-atlas/pkg/services/platforms"
	"github.com/grc-tools/control-atlas/pkg/services/platforms/databricks"
	"github.com/grc-tools/control-atlas/pkg/services/platforms/mock"
	"github.com/grc-tools/control-atlas/pkg/services/platforms/snowflake"
	registersvc "github.com/grc-tools/control-atlas/pkg/services/registers"
	"github.com/grc-tools/control-atlas/pkg/services/scan"
	"github.com/grc-tools/control-atlas/pkg/services/seed"
	"github.com/grc-tools/control-atlas/pkg/store/duckdb"
	duckdbcompliance "github.com/grc-tools/control-atlas/pkg/store/duckdb/compliance"
	duckdbrecords "github.com/grc-tools/control-atlas/pkg/store/duckdb/records"
	duckdbscan "github.com/grc-tools/control-atlas/pkg/store/duckdb/scan"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Control Atlas",
		RunE:  runServer,
	}

	usr, _ := user.Current()
	defaultPath := fmt.Sprintf("%s/.controlatlascfg", usr.HomeDir)

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", defaultPath,
		"Path to the profile registry file (default is $HOME/.controlatlascfg)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	registry, err := config.NewRegistry(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to create config registry: %w", err)
	}

	dbPath := os.Getenv("CONTROL_ATLAS_DB")
	if dbPath == "" {
		dbPath = "control-atlas.db"
	}
	db, err := duckdb.NewDB(duckdb.Settings{DbPath: dbPath})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	recordStore, err := duckdbrecords.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create record store: %w", err)
	}
	complianceStore, err := duckdbcompliance.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create compliance store: %w", err)
	}
	scanStore, err := duckdbscan.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create scan store: %w", err)
	}

	registersExplorer := registersvc.NewExplorer(recordStore)

	catalog, err := compliancesvc.LoadEmbeddedCatalog()
	if err != nil {
		return fmt.Errorf("failed to load control catalog: %w", err)
	}
	if extraPath := os.Getenv("CONTROL_ATLAS_CATALOG"); extraPath != "" {
		raw, err := os.ReadFile(extraPath)
		if err != nil {
			return fmt.Errorf("failed to read catalog %s: %w", extraPath, err)
		}
		extra, err := compliancesvc.ParseCatalog(filepath.Base(extraPath), raw)
		if err != nil {
			return fmt.Errorf("failed to parse catalog %s: %w", extraPath, err)
		}
		catalog.Extend(extra)
	}
	evaluator, err := compliancesvc.NewEvaluator(catalog)
	if err != nil {
		return fmt.Errorf("failed to compile control rules: %w", err)
	}

	platformRegistry := platforms.NewRegistry(map[domain.Platform]platforms.CollectorFactory{
		domain.PlatformIBMi:       mock.IBMiFactory,
		domain.PlatformJDE:        mock.JDEFactory,
		domain.PlatformUnix:       mock.UnixFactory,
		domain.PlatformDatabricks: databricks.Factory,
		domain.PlatformSnowflake:  snowflake.Factory,
	})

	complianceExplorer := compliancesvc.NewExplorer(evaluator, registry, platformRegistry, complianceStore)

	scanCtrl := scan.NewController(db, scanStore, complianceStore, registry, platformRegistry, evaluator, registersExplorer)
	if err := scanCtrl.Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize scan controller: %w", err)
	}

	if err := seed.NewSeeder(registersExplorer, seed.DefaultSeed).Run(ctx); err != nil {
		return fmt.Errorf("failed to seed registers: %w", err)
	}

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	profiles, _ := registry.GetProfiles(ctx)
	for _, profile := range profiles {
		logger.Info().Msgf("Name: `%s`, Platform: `%s`", profile.Name, profile.Platform)
	}

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Registers:  registersExplorer,
			Compliance: complianceExplorer,
			Scans:      scanCtrl,
		},
	})

	return api.Start()
}
