package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var ingestJSON bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a legal document",
	Long: `Splits a legal document into citable segments and stores them as a
bundle. Pass "-" to read the document from stdin.

Each segment gets a stable identifier of the form <bundle-id>-chunk-NNN
that answers can cite and the verify command can check.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if bundleService == nil {
		return errors.New("bundle service not configured")
	}

	document, err := readDocument(args[0])
	if err != nil {
		return err
	}

	bundle, err := bundleService.Ingest(context.Background(), document)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	if ingestJSON {
		out := struct {
			BundleID    string `json:"bundle_id"`
			NumSegments int    `json:"num_segments"`
			Checksum    string `json:"checksum"`
		}{bundle.ID, len(bundle.Segments), bundle.SourceChecksum}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Ingested %s\n", bundle.ID)
	cmd.Printf("  Segments: %d\n", len(bundle.Segments))
	cmd.Printf("  Checksum: %s\n", bundle.SourceChecksum)
	return nil
}

// readDocument reads the document from a file path, or stdin for "-".
func readDocument(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
