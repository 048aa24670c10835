package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var bundlesJSON bool

var bundlesCmd = &cobra.Command{
	Use:   "bundles",
	Short: "Manage ingested document bundles",
	Long:  `List, inspect, and delete ingested document bundles.`,
	RunE:  runBundlesList,
}

var bundlesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all bundles",
	RunE:  runBundlesList,
}

var bundlesShowCmd = &cobra.Command{
	Use:   "show [bundle-id]",
	Short: "Show a bundle's segments",
	Args:  cobra.ExactArgs(1),
	RunE:  runBundlesShow,
}

var bundlesDeleteCmd = &cobra.Command{
	Use:   "delete [bundle-id]",
	Short: "Delete a bundle and its cached embeddings",
	Args:  cobra.ExactArgs(1),
	RunE:  runBundlesDelete,
}

func init() {
	bundlesCmd.PersistentFlags().BoolVar(&bundlesJSON, "json", false, "output as JSON")
	bundlesCmd.AddCommand(bundlesListCmd)
	bundlesCmd.AddCommand(bundlesShowCmd)
	bundlesCmd.AddCommand(bundlesDeleteCmd)
	rootCmd.AddCommand(bundlesCmd)
}

func runBundlesList(cmd *cobra.Command, _ []string) error {
	if bundleService == nil {
		return errors.New("bundle service not configured")
	}

	bundles, err := bundleService.List(context.Background())
	if err != nil {
		return fmt.Errorf("listing bundles: %w", err)
	}

	if bundlesJSON {
		type info struct {
			ID          string `json:"id"`
			NumSegments int    `json:"num_segments"`
			Checksum    string `json:"checksum"`
			CreatedAt   string `json:"created_at"`
		}
		infos := make([]info, len(bundles))
		for i := range bundles {
			infos[i] = info{
				ID:          bundles[i].ID,
				NumSegments: len(bundles[i].Segments),
				Checksum:    bundles[i].SourceChecksum,
				CreatedAt:   bundles[i].IndexMetadata.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			}
		}
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal bundles: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(bundles) == 0 {
		cmd.Println("No bundles. Run 'plainterms ingest' to add one.")
		return nil
	}
	for i := range bundles {
		cmd.Printf("%s  %d segments  %s\n",
			bundles[i].ID,
			len(bundles[i].Segments),
			bundles[i].IndexMetadata.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runBundlesShow(cmd *cobra.Command, args []string) error {
	if bundleService == nil {
		return errors.New("bundle service not configured")
	}

	bundle, err := bundleService.Get(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("loading bundle: %w", err)
	}

	if bundlesJSON {
		type seg struct {
			ChunkID     string `json:"chunk_id"`
			Text        string `json:"text"`
			StartOffset int    `json:"start_offset"`
			EndOffset   int    `json:"end_offset"`
			Embedded    bool   `json:"embedded"`
		}
		segs := make([]seg, len(bundle.Segments))
		for i := range bundle.Segments {
			segs[i] = seg{
				ChunkID:     bundle.Segments[i].ID,
				Text:        bundle.Segments[i].Text,
				StartOffset: bundle.Segments[i].StartOffset,
				EndOffset:   bundle.Segments[i].EndOffset,
				Embedded:    bundle.Segments[i].Embedding != nil,
			}
		}
		data, err := json.MarshalIndent(segs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal segments: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("%s  (%d segments, checksum %s)\n", bundle.ID, len(bundle.Segments), truncate(bundle.SourceChecksum, 12))
	for i := range bundle.Segments {
		seg := &bundle.Segments[i]
		cmd.Printf("  %s  chars %d-%d\n", seg.ID, seg.StartOffset, seg.EndOffset)
		cmd.Printf("    %s\n", truncate(seg.Text, 100))
	}
	return nil
}

func runBundlesDelete(cmd *cobra.Command, args []string) error {
	if bundleService == nil {
		return errors.New("bundle service not configured")
	}

	if err := bundleService.Delete(context.Background(), args[0]); err != nil {
		return fmt.Errorf("deleting bundle: %w", err)
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}
