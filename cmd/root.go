package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Fadil369/Nphies-pro/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "claims-engine",
	Short: "NPHIES claims normalization and adjudication pipeline",
	Long:  "Normalizes FHIR R4, HL7v2, SBS and custom claim documents, scores them, applies adjudication policy and Saudi compliance rules, and aggregates per-tenant metrics.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
