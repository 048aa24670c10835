package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plainterms/plainterms-cli/internal/core/ports/driving"
)

var (
	askTopK      int
	askSimplify  bool
	askMaxTokens int
	askJSON      bool
)

var askCmd = &cobra.Command{
	Use:   "ask [bundle-id] [question]",
	Short: "Answer a question about a document with verified citations",
	Long: `Retrieves the segments most relevant to the question, generates an
answer grounded in them, and verifies every citation against the source
text. The answer is always shown; an answer that fails verification is
flagged, not suppressed.

With --simplify the question may be omitted: the retrieved segments are
rewritten in plain language instead.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 5, "number of segments to retrieve as context")
	askCmd.Flags().BoolVar(&askSimplify, "simplify", false, "rewrite the document in plain language")
	askCmd.Flags().IntVar(&askMaxTokens, "max-tokens", 0, "bound on the generated answer length (0 = default)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer and report as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if askService == nil {
		return errors.New("ask is unavailable: no LLM configured. Run 'plainterms config' to set one")
	}

	question := ""
	if len(args) > 1 {
		question = args[1]
	}
	if question == "" && !askSimplify {
		return errors.New("a question is required unless --simplify is set")
	}

	result, err := askService.Ask(context.Background(), args[0], question, driving.AskOptions{
		TopK:            askTopK,
		Simplify:        askSimplify,
		MaxOutputTokens: askMaxTokens,
	})
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		out := struct {
			Answer string `json:"answer"`
			Report any    `json:"report"`
		}{result.Answer, result.Report}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(result.Answer)
	cmd.Println()
	cmd.Print(renderReport(result.Report))
	return nil
}
