package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/plainterms/plainterms-cli/internal/core/domain"
	"github.com/plainterms/plainterms-cli/internal/core/ports/driving"
)

// IngestInput is the input schema for the ingest tool.
type IngestInput struct {
	Document string `json:"document" jsonschema:"the raw legal document text to segment and index"`
}

// IngestOutput is the output schema for the ingest tool.
type IngestOutput struct {
	BundleID    string `json:"bundle_id"`
	NumSegments int    `json:"num_segments"`
	Checksum    string `json:"checksum"`
}

// RetrieveInput is the input schema for the retrieve tool.
type RetrieveInput struct {
	BundleID string `json:"bundle_id" jsonschema:"the bundle to search"`
	Query    string `json:"query" jsonschema:"the question or phrase to rank segments against"`
	K        int    `json:"k,omitempty" jsonschema:"maximum number of segments to return (default 5)"`
}

// RetrieveOutput is the output schema for the retrieve tool.
type RetrieveOutput struct {
	Segments []SegmentOutput `json:"segments"`
	Count    int             `json:"count"`
}

// SegmentOutput represents a single retrieved segment.
type SegmentOutput struct {
	ChunkID     string  `json:"chunk_id"`
	Text        string  `json:"text"`
	Score       float64 `json:"score"`
	StartOffset int     `json:"start_offset"`
	EndOffset   int     `json:"end_offset"`
}

// VerifyInput is the input schema for the verify tool.
type VerifyInput struct {
	BundleID string `json:"bundle_id" jsonschema:"the bundle the answer cites"`
	Answer   string `json:"answer" jsonschema:"the generated answer to check"`
	// RetrievedChunkIDs, when present, additionally requires the answer
	// to be grounded in exactly these segments.
	RetrievedChunkIDs []string `json:"retrieved_chunk_ids,omitempty" jsonschema:"segment identifiers the answer was generated from"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	BundleID string `json:"bundle_id" jsonschema:"the bundle to ask about"`
	Question string `json:"question,omitempty" jsonschema:"the question; may be empty with simplify"`
	K        int    `json:"k,omitempty" jsonschema:"how many segments to retrieve as context (default 5)"`
	Simplify bool   `json:"simplify,omitempty" jsonschema:"rewrite the retrieved segments in plain language instead of answering"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer          string                     `json:"answer"`
	Report          *domain.VerificationReport `json:"report"`
	RetrievedChunks []SegmentOutput            `json:"retrieved_chunks"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_document",
		Description: "Segment a legal document into citable chunks and index it",
	}, s.handleIngest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve",
		Description: "Find the document segments most relevant to a query",
	}, s.handleRetrieve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "verify_answer",
		Description: "Check an answer's citations and quotes against the source document",
	}, s.handleVerify)

	if s.ports.Ask != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ask",
			Description: "Answer a question about a document with verified citations",
		}, s.handleAsk)
	}
}

// handleIngest handles the ingest_document tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	bundle, err := s.ports.Bundle.Ingest(ctx, input.Document)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	return nil, IngestOutput{
		BundleID:    bundle.ID,
		NumSegments: len(bundle.Segments),
		Checksum:    bundle.SourceChecksum,
	}, nil
}

// handleRetrieve handles the retrieve tool invocation.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	k := input.K
	if k <= 0 {
		k = 5
	}

	bundle, err := s.ports.Bundle.Get(ctx, input.BundleID)
	if err != nil {
		return nil, RetrieveOutput{}, err
	}

	scored, err := s.ports.Retrieval.TopK(ctx, bundle, input.Query, k)
	if err != nil {
		return nil, RetrieveOutput{}, err
	}

	return nil, RetrieveOutput{
		Segments: segmentOutputs(scored),
		Count:    len(scored),
	}, nil
}

// handleVerify handles the verify_answer tool invocation.
func (s *Server) handleVerify(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input VerifyInput,
) (*mcp.CallToolResult, *domain.VerificationReport, error) {
	bundle, err := s.ports.Bundle.Get(ctx, input.BundleID)
	if err != nil {
		return nil, nil, err
	}

	var report *domain.VerificationReport
	if len(input.RetrievedChunkIDs) > 0 {
		report = s.ports.Verification.VerifyAgainstRetrieved(bundle, input.Answer, input.RetrievedChunkIDs)
	} else {
		report = s.ports.Verification.Verify(bundle, input.Answer)
	}
	return nil, report, nil
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	if s.ports.Ask == nil {
		return nil, AskOutput{}, errors.New("ask is unavailable: no LLM configured")
	}

	result, err := s.ports.Ask.Ask(ctx, input.BundleID, input.Question, driving.AskOptions{
		TopK:     input.K,
		Simplify: input.Simplify,
	})
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:          result.Answer,
		Report:          result.Report,
		RetrievedChunks: segmentOutputs(result.Retrieved),
	}, nil
}

// segmentOutputs converts scored segments to the wire shape.
func segmentOutputs(scored []domain.ScoredSegment) []SegmentOutput {
	out := make([]SegmentOutput, len(scored))
	for i := range scored {
		out[i] = SegmentOutput{
			ChunkID:     scored[i].Segment.ID,
			Text:        scored[i].Segment.Text,
			Score:       scored[i].Score,
			StartOffset: scored[i].Segment.StartOffset,
			EndOffset:   scored[i].Segment.EndOffset,
		}
	}
	return out
}
