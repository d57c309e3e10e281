package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/aleister1102/pdfdiff/internal/config"
	"github.com/aleister1102/pdfdiff/internal/datastore"
	"github.com/aleister1102/pdfdiff/internal/logger"
	"github.com/aleister1102/pdfdiff/internal/orchestrator"
	"github.com/rs/zerolog"
)

func main() {
	flags, err := ParseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		code := parseExitCode(err)
		if code != 0 {
			fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		}
		os.Exit(code)
	}

	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile, zerolog.Nop())
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not load global config using path '%s': %v", flags.GlobalConfigFile, err)
	}
	applyFlagOverrides(gCfg, flags)

	if err := config.ValidateConfig(gCfg); err != nil {
		log.Fatalf("[FATAL] Main: Configuration validation failed: %v", err)
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Main: Could not initialize logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if flags.ListHistory > 0 {
		if err := printHistory(ctx, gCfg, flags.ListHistory, zLogger); err != nil {
			zLogger.Error().Err(err).Msg("Could not list comparison history")
			stop()
			os.Exit(1)
		}
		return
	}

	code := runComparison(ctx, gCfg, flags, zLogger)
	stop()
	os.Exit(code)
}

func applyFlagOverrides(gCfg *config.GlobalConfig, flags AppFlags) {
	if flags.LogLevel != "" {
		gCfg.LogConfig.LogLevel = flags.LogLevel
	}
	if flags.Pro {
		gCfg.ProConfig.Enabled = true
	}
	if flags.History {
		gCfg.StorageConfig.EnableHistory = true
	}
	if flags.CellDiffExport {
		gCfg.StorageConfig.EnableCellDiffExport = true
	}
	if flags.MaxPages > 0 {
		gCfg.VisualConfig.MaxPages = flags.MaxPages
	}
}

func runComparison(ctx context.Context, gCfg *config.GlobalConfig, flags AppFlags, zLogger zerolog.Logger) int {
	orch, err := orchestrator.NewOrchestratorBuilder(zLogger).WithConfig(gCfg).Build()
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to initialize comparison pipeline")
		return 1
	}
	defer func() {
		if err := orch.Close(); err != nil {
			zLogger.Warn().Err(err).Msg("Failed to close stores")
		}
	}()

	result, err := orch.Run(ctx, orchestrator.RunRequest{
		PathA:          flags.FileA,
		PathB:          flags.FileB,
		HTMLPath:       flags.HTMLOutput,
		JSONPath:       flags.JSONOutput,
		SideBySidePath: flags.SideBySide,
	})
	if err != nil {
		if ctx.Err() != nil {
			zLogger.Warn().Msg("Comparison interrupted")
		} else {
			zLogger.Error().Err(err).Msg("Comparison failed")
		}
		return 1
	}

	ov := result.Report.Overview()
	fmt.Printf("Report: %s\n", result.HTMLPath)
	if result.JSONPath != "" {
		fmt.Printf("JSON:   %s\n", result.JSONPath)
	}
	if result.SideBySidePath != "" {
		fmt.Printf("Side-by-side: %s (%d pages)\n", result.SideBySidePath, result.SideBySidePages)
	}
	fmt.Printf("Pages with text changes: %d, changed tables: %d, cell diffs: %d, image matches: %d (unmatched A %d, B %d)\n",
		ov.ChangedPages, ov.Tables, ov.CellDiffs, ov.ImageMatches, ov.UnmatchedA, ov.UnmatchedB)
	if result.Report.Summary != "" {
		fmt.Printf("Summary: %s\n", result.Report.Summary)
	}
	return 0
}

func printHistory(ctx context.Context, gCfg *config.GlobalConfig, limit int, zLogger zerolog.Logger) error {
	store, err := datastore.NewHistoryStore(gCfg.StorageConfig.HistoryDBPath, zLogger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entries, err := store.ListRecent(ctx, limit)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tSTATUS\tCOMPARISON\tFILE A\tFILE B\tREPORT")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.StartedAt.Local().Format("2006-01-02 15:04:05"), e.Status, e.ComparisonID, e.FileA, e.FileB, e.ReportPath.String)
	}
	return tw.Flush()
}
