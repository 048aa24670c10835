package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plainterms/plainterms-cli/internal/core/domain"
)

func TestBundlesCmd_ListsBundles(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"bundles"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "bundle-cli000000001")
	assert.Contains(t, buf.String(), "2 segments")
}

func TestBundlesCmd_EmptyList(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	bundleService = &mockBundleService{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"bundles", "list"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No bundles")
}

func TestBundlesCmd_ListJSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"bundles", "list", "--json"})
	defer func() {
		rootCmd.SetArgs(nil)
		bundlesJSON = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "\"id\"")
	assert.Contains(t, buf.String(), "\"num_segments\"")
}

func TestBundlesCmd_ShowSegments(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"bundles", "show", "bundle-cli000000001"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "bundle-cli000000001-chunk-001")
	assert.Contains(t, buf.String(), "The term is two years.")
	assert.Contains(t, buf.String(), "chars 0-22")
}

func TestBundlesCmd_Delete(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mock := bundleService.(*mockBundleService)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"bundles", "delete", "bundle-cli000000001"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Deleted bundle-cli000000001")
	assert.Equal(t, []string{"bundle-cli000000001"}, mock.deleted)
}

func TestBundlesCmd_DeleteMissing(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	bundleService = &mockBundleService{err: domain.ErrNotFound}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"bundles", "delete", "bundle-gone"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
