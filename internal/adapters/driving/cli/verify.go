package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	verifyRetrieved []string
	verifyJSON      bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify [bundle-id] [answer-file]",
	Short: "Check an answer's citations against the source document",
	Long: `Extracts chunk citations from a previously generated answer and checks
each one against the bundle: the citation must name an existing segment
and the answer's quoted text must actually appear in it. Sentences that
assert legal consequences without any citation are flagged.

Pass "-" as the answer file to read the answer from stdin. With
--retrieved, the answer must additionally be grounded in the named
segments.`,
	Args: cobra.ExactArgs(2),
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringSliceVar(&verifyRetrieved, "retrieved", nil, "chunk IDs the answer was generated from")
	verifyCmd.Flags().BoolVar(&verifyJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	if bundleService == nil || verificationService == nil {
		return errors.New("verification service not configured")
	}

	answer, err := readDocument(args[1])
	if err != nil {
		return err
	}

	bundle, err := bundleService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("loading bundle: %w", err)
	}

	report := verificationService.Verify(bundle, answer)
	if len(verifyRetrieved) > 0 {
		report = verificationService.VerifyAgainstRetrieved(bundle, answer, verifyRetrieved)
	}

	if verifyJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Print(renderReport(report))
	return nil
}
