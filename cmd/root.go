package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docscan/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "docscan",
	Short: "docscan - structured field extraction from Korean business documents",
	Long: `docscan extracts structured fields from scanned Korean business
documents (business registration certificates and bankbook copies) using
Google Cloud Vision OCR and layout-aware extraction heuristics.

The recognized word geometry is regrouped into reading-order lines, labels
such as 법인명 or 대표자 are located spatially, and the neighboring text is
cleaned into a field set ready to prefill a form.`,
	Version: version,
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
