package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plainterms/plainterms-cli/internal/core/domain"
)

func writeTestAnswer(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "answer.txt")
	content := "\"The term is two years.\" [bundle-cli000000001-chunk-001]"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestVerifyCmd_Use(t *testing.T) {
	assert.Equal(t, "verify [bundle-id] [answer-file]", verifyCmd.Use)
}

func TestVerifyCmd_ExecutesWithAnswerFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"verify", "bundle-cli000000001", writeTestAnswer(t)})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "GROUNDED")
	assert.Contains(t, buf.String(), "1/2 segments cited")
}

func TestVerifyCmd_RetrievedFlagGates(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{
		"verify", "bundle-cli000000001", writeTestAnswer(t),
		"--retrieved", "bundle-cli000000001-chunk-001",
	})
	defer func() {
		rootCmd.SetArgs(nil)
		verifyRetrieved = nil
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	// The mock sets CitesRetrieved on the grounded path only.
	assert.Contains(t, buf.String(), "GROUNDED")
}

func TestVerifyCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"verify", "--json", "bundle-cli000000001", writeTestAnswer(t)})
	defer func() {
		rootCmd.SetArgs(nil)
		verifyJSON = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "\"ok\"")
	assert.Contains(t, buf.String(), "\"cited_chunk_ids\"")
}

func TestVerifyCmd_ReportsUnknownCitations(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	verificationService = &mockVerificationService{
		report: &domain.VerificationReport{
			OK:              false,
			UnknownChunkIDs: []string{"bundle-cli000000001-chunk-999"},
			NumSegments:     2,
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"verify", "bundle-cli000000001", writeTestAnswer(t)})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "NOT GROUNDED")
	assert.Contains(t, buf.String(), "unknown citation")
	assert.Contains(t, buf.String(), "chunk-999")
}

func TestVerifyCmd_ServiceNotConfigured(t *testing.T) {
	oldService := verificationService
	verificationService = nil
	defer func() {
		verificationService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"verify", "bundle-cli000000001", writeTestAnswer(t)})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "verification service not configured")
}
