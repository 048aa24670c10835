package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plainterms/plainterms-cli/internal/core/domain"
)

var (
	retrieveTopK int
	retrieveJSON bool
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve [bundle-id] [query]",
	Short: "Find the segments most relevant to a query",
	Long: `Ranks a bundle's segments by semantic similarity to the query and
prints the top matches. Embeddings are computed lazily on first use and
cached; segments whose embeddings cannot be computed score zero rather
than failing the whole query.`,
	Args: cobra.ExactArgs(2),
	RunE: runRetrieve,
}

func init() {
	retrieveCmd.Flags().IntVarP(&retrieveTopK, "top-k", "k", 5, "maximum number of segments to return")
	retrieveCmd.Flags().BoolVar(&retrieveJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(retrieveCmd)
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	if bundleService == nil || retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	ctx := context.Background()
	bundle, err := bundleService.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("loading bundle: %w", err)
	}

	scored, err := retrievalService.TopK(ctx, bundle, args[1], retrieveTopK)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	if retrieveJSON {
		return outputScoredJSON(cmd, scored)
	}

	if len(scored) == 0 {
		cmd.Println("No segments found.")
		return nil
	}
	cmd.Println("Segments:")
	cmd.Print(renderSegments(scored))
	return nil
}

func outputScoredJSON(cmd *cobra.Command, scored []domain.ScoredSegment) error {
	type result struct {
		ChunkID     string  `json:"chunk_id"`
		Text        string  `json:"text"`
		Score       float64 `json:"score"`
		StartOffset int     `json:"start_offset"`
		EndOffset   int     `json:"end_offset"`
	}
	results := make([]result, len(scored))
	for i := range scored {
		results[i] = result{
			ChunkID:     scored[i].Segment.ID,
			Text:        scored[i].Segment.Text,
			Score:       scored[i].Score,
			StartOffset: scored[i].Segment.StartOffset,
			EndOffset:   scored[i].Segment.EndOffset,
		}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
