package main

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/grc-tools/control-atlas/pkg/models/domain"
	"github.com/grc-tools/control-atlas/pkg/runtime/terminal"
	compliancesvc "github.com/grc-tools/control-atlas/pkg/services/compliance"
	"github.com/grc-tools/control-atlas/pkg/services/config"
	"github.com/grc-tools/control-atlas/pkg/services/platforms"
	"github.com/grc-tools/control-atlas/pkg/services/platforms/databricks"
	"github.com/grc-tools/control-atlas/pkg/services/platforms/mock"
	"github.com/grc-tools/control-atlas/pkg/services/platforms/snowflake"
	registersvc "github.com/grc-tools/control-atlas/pkg/services/registers"
	"github.com/grc-tools/control-atlas/pkg/store/duckdb"
	duckdbcompliance "github.com/grc-tools/control-atlas/pkg/store/duckdb/compliance"
	duckdbrecords "github.com/grc-tools/control-atlas/pkg/store/duckdb/records"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	usr, err := user.Current()
	if err != nil {
		return err
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
		return err
	}
	complianceStore, err := duckdbcompliance.NewStore(db)
	if err != nil {
		return err
	}

	registersExplorer := registersvc.NewExplorer(recordStore)

	catalog, err := compliancesvc.LoadEmbeddedCatalog()
	if err != nil {
		return err
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
		return err
	}

	registry, err := config.NewRegistry(fmt.Sprintf("%s/.controlatlascfg", usr.HomeDir))
	if err != nil {
		return fmt.Errorf("failed to load profile registry: %w", err)
	}

	platformRegistry := platforms.NewRegistry(map[domain.Platform]platforms.CollectorFactory{
		domain.PlatformIBMi:       mock.IBMiFactory,
		domain.PlatformJDE:        mock.JDEFactory,
		domain.PlatformUnix:       mock.UnixFactory,
		domain.PlatformDatabricks: databricks.Factory,
		domain.PlatformSnowflake:  snowflake.Factory,
	})

	cli := terminal.NewCLI(terminal.Options{
		Registers:  registersExplorer,
		Compliance: compliancesvc.NewExplorer(evaluator, registry, platformRegistry, complianceStore),
		Output:     os.Stdout,
	})

	return cli.Execute()
}
