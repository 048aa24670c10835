package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for plainterms resources.
const uriScheme = "plainterms://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing bundles.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "bundles",
		Name:        "bundles",
		Description: "List of all ingested document bundles",
		MIMEType:    "application/json",
	}, s.handleBundlesResource)

	// Template for a bundle's segments.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "bundles/{bundleId}/segments",
		Name:        "bundle-segments",
		Description: "Citable segments of a specific bundle",
		MIMEType:    "application/json",
	}, s.handleSegmentsResource)
}

// handleBundlesResource returns a list of all ingested bundles.
func (s *Server) handleBundlesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	bundles, err := s.ports.Bundle.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing bundles: %w", err)
	}

	type bundleInfo struct {
		ID          string `json:"id"`
		NumSegments int    `json:"num_segments"`
		Checksum    string `json:"checksum"`
		CreatedAt   string `json:"created_at"`
	}

	infos := make([]bundleInfo, len(bundles))
	for i := range bundles {
		infos[i] = bundleInfo{
			ID:          bundles[i].ID,
			NumSegments: len(bundles[i].Segments),
			Checksum:    bundles[i].SourceChecksum,
			CreatedAt:   bundles[i].IndexMetadata.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling bundles: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleSegmentsResource returns the segments of a specific bundle.
func (s *Server) handleSegmentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	bundleID := extractBundleID(req.Params.URI)
	if bundleID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	bundle, err := s.ports.Bundle.Get(ctx, bundleID)
	if err != nil {
		return nil, fmt.Errorf("getting bundle: %w", err)
	}

	type segmentInfo struct {
		ChunkID     string `json:"chunk_id"`
		Text        string `json:"text"`
		StartOffset int    `json:"start_offset"`
		EndOffset   int    `json:"end_offset"`
	}

	infos := make([]segmentInfo, len(bundle.Segments))
	for i, seg := range bundle.Segments {
		infos[i] = segmentInfo{
			ChunkID:     seg.ID,
			Text:        seg.Text,
			StartOffset: seg.StartOffset,
			EndOffset:   seg.EndOffset,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling segments: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractBundleID extracts the bundle ID from a URI like
// plainterms://bundles/{bundleId}/segments.
func extractBundleID(uri string) string {
	const prefix = uriScheme + "bundles/"
	const suffix = "/segments"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}
	return strings.TrimSuffix(uri, suffix)
}
