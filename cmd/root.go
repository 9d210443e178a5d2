package cmd

import (
	"github.com/spf13/cobra"

	"github.com/minsu-kang/reclaim/internal/logger"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "reclaim",
	Short: "Find reclaimable disk space",
	Long: `Reclaim scans docker, WSL, package-manager caches, project build
artifacts, IDE caches and cold user files, and reports what could be
cleaned, archived, or reviewed. It never deletes anything itself — every
finding comes with the command you would run yourself.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init(debug)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write detailed logs to the debug log file")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
}
