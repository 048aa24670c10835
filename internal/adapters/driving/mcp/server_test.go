package mcp

import (
	"errors"
	"testing"

	"github.com/plainterms/plainterms-cli/internal/core/domain"
)

func validPorts() *Ports {
	return &Ports{
		Bundle:       &mockBundleService{},
		Retrieval:    &mockRetrievalService{},
		Verification: &mockVerificationService{report: &domain.VerificationReport{OK: true}},
	}
}

func TestNewServer(t *testing.T) {
	server, err := NewServer(validPorts())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if server == nil {
		t.Fatal("expected non-nil server")
	}
}

func TestNewServer_MissingPorts(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Ports)
		wantErr error
	}{
		{
			name:    "missing bundle service",
			mutate:  func(p *Ports) { p.Bundle = nil },
			wantErr: ErrMissingBundleService,
		},
		{
			name:    "missing retrieval service",
			mutate:  func(p *Ports) { p.Retrieval = nil },
			wantErr: ErrMissingRetrievalService,
		},
		{
			name:    "missing verification service",
			mutate:  func(p *Ports) { p.Verification = nil },
			wantErr: ErrMissingVerificationService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ports := validPorts()
			tt.mutate(ports)
			if _, err := NewServer(ports); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNewServer_AskOptional(t *testing.T) {
	// No Ask service just means no ask tool; the server still starts.
	ports := validPorts()
	ports.Ask = nil
	if _, err := NewServer(ports); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
