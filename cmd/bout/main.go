package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bout-dev/bout/pkg/config"
	"github.com/bout-dev/bout/pkg/profile"
	"github.com/bout-dev/bout/pkg/service"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "bout <statement-file>",
	Short:         "Bout (read bank-out) extracts transactions from bank statements into QIF",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		level := log.InfoLevel
		if cfg.Debug {
			level = log.DebugLevel
		}
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "bout",
			Level:           level,
		})

		out := io.Writer(os.Stdout)
		if cfg.Output != "" {
			f, err := os.Create(cfg.Output)
			if err != nil {
				return fmt.Errorf("error creating output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		processor := service.NewProcessor(cfg, logger)
		if _, err := processor.ProcessFile(args[0], out); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is config.yaml)")
	rootCmd.Flags().StringP("profile", "p", "icici", "Statement profile: "+strings.Join(profile.Names(), ", "))
	rootCmd.Flags().String("password", "", "Password for encrypted PDF statements (or BOUT_PASSWORD)")
	rootCmd.Flags().Bool("debug", false, "Show diagnostic messages")
	rootCmd.Flags().StringP("output", "o", "", "Write QIF to a file instead of stdout")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
