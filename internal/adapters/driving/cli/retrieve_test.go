package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrieveCmd_Use(t *testing.T) {
	assert.Equal(t, "retrieve [bundle-id] [query]", retrieveCmd.Use)
}

func TestRetrieveCmd_HasTopKFlag(t *testing.T) {
	flag := retrieveCmd.Flags().Lookup("top-k")
	require.NotNil(t, flag, "top-k flag should exist")
	assert.Equal(t, "k", flag.Shorthand)
	assert.Equal(t, "5", flag.DefValue)
}

func TestRetrieveCmd_RequiresTwoArgs(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"retrieve", "bundle-cli000000001"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestRetrieveCmd_ExecutesWithQuery(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"retrieve", "bundle-cli000000001", "how long is the term"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Segments:")
	assert.Contains(t, buf.String(), "bundle-cli000000001-chunk-001")
	assert.Contains(t, buf.String(), "0.910")
}

func TestRetrieveCmd_TopKTruncates(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"retrieve", "-k", "1", "bundle-cli000000001", "term"})
	defer func() {
		rootCmd.SetArgs(nil)
		retrieveTopK = 5
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "chunk-001")
	assert.NotContains(t, buf.String(), "chunk-002")
}

func TestRetrieveCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"retrieve", "--json", "bundle-cli000000001", "term"})
	defer func() {
		rootCmd.SetArgs(nil)
		retrieveJSON = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "\"chunk_id\"")
	assert.Contains(t, buf.String(), "\"score\"")
}

func TestRetrieveCmd_NoResults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	retrievalService = &mockRetrievalService{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"retrieve", "bundle-cli000000001", "term"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No segments found")
}

func TestRetrieveCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	retrievalService = &mockRetrievalService{err: errors.New("embeddings offline")}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"retrieve", "bundle-cli000000001", "term"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "retrieval failed")
}
