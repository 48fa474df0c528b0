package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Fadil369/Nphies-pro/internal/model"
)

var processTenant string

var processCmd = &cobra.Command{
	Use:   "process [file]",
	Short: "Process a single claim document",
	Long:  "Reads a raw claim document (FHIR R4, HL7v2, SBS or custom JSON) from a file or stdin, runs it through the pipeline and prints the adjudication result.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = os.Stdin
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return eris.Wrapf(err, "open %s", args[0])
			}
			defer f.Close()
			in = f
		}

		var raw map[string]any
		if err := json.NewDecoder(in).Decode(&raw); err != nil {
			return eris.Wrap(err, "decode claim document")
		}

		p, err := initPipeline()
		if err != nil {
			return err
		}

		result, err := p.Process(cmd.Context(), processTenant, raw)
		if err != nil {
			return err
		}

		zap.L().Info("claim processed",
			zap.String("claim_id", result.ClaimID),
			zap.String("decision", string(result.Decision)),
		)

		return printResult(os.Stdout, result)
	},
}

func printResult(w io.Writer, result *model.ClaimResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return eris.Wrap(err, "encode result")
	}
	return nil
}

func init() {
	processCmd.Flags().StringVar(&processTenant, "tenant", "", "tenant id (overrides the document's tenant)")
	rootCmd.AddCommand(processCmd)
}
