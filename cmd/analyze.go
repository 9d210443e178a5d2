package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/spf13/cobra"

	"github.com/minsu-kang/reclaim/internal/analyzer"
	"github.com/minsu-kang/reclaim/internal/cli"
	"github.com/minsu-kang/reclaim/internal/config"
	"github.com/minsu-kang/reclaim/internal/types"
	"github.com/minsu-kang/reclaim/internal/utils"
)

var (
	jsonOutput bool
	configPath string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Scan for reclaimable disk space",
	Long: `Runs every available analyzer and prints the findings grouped by
location. Analyzers that fail are reported at the bottom without
blocking the rest.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the raw result as JSON")
	analyzeCmd.Flags().StringVar(&configPath, "config", "", "Path to a user config override file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	agg := analyzer.NewAggregator(analyzer.NewDefaultRegistry(cfg))

	interactive := isatty.IsTerminal(os.Stdout.Fd()) && !jsonOutput

	var result *types.AnalysisResult
	if interactive {
		printDiskHeader()
		result, err = cli.RunScan(ctx, cancel, agg)
	} else {
		// Progress goes to stderr so stdout carries only the result.
		result, err = cli.RunScanPlain(ctx, agg, cmd.ErrOrStderr())
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(cmd.ErrOrStderr(), "scan cancelled")
			return nil
		}
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprint(cmd.OutOrStdout(), cli.FormatReport(result))
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadEmbedded()
	if err != nil {
		return nil, err
	}

	path := configPath
	if path == "" {
		if base, err := os.UserConfigDir(); err == nil {
			path = filepath.Join(base, "reclaim", "config.yaml")
		}
	}
	if path == "" {
		return cfg, nil
	}

	user, err := config.LoadUser(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring user config: %v\n", err)
		return cfg, nil
	}
	return config.Merge(cfg, user), nil
}

// printDiskHeader shows the scanned volume's capacity so the findings
// have something to be read against.
func printDiskHeader() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	usage, err := disk.Usage(filepath.VolumeName(home) + string(os.PathSeparator))
	if err != nil {
		return
	}
	fmt.Printf("Volume %s: %s used of %s (%.0f%%), %s free\n",
		usage.Path,
		utils.FormatSize(int64(usage.Used)),
		utils.FormatSize(int64(usage.Total)),
		usage.UsedPercent,
		utils.FormatSize(int64(usage.Free)))
}
