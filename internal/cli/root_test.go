package cmd_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cmd "github.com/rohmanhakim/termdeck/internal/cli"
	"github.com/rohmanhakim/termdeck/internal/config"
	"github.com/rohmanhakim/termdeck/internal/output"
)

func TestInitConfigWithError_DefaultsFromTermsFile(t *testing.T) {
	cmd.ResetFlags()

	cfg, err := cmd.InitConfigWithError("terms.txt")
	require.NoError(t, err)

	assert.Equal(t, "terms.txt", cfg.TermsFile())
	assert.Equal(t, "startup_terms.apkg", cfg.OutputPath())
	assert.Equal(t, config.FetcherRemote, cfg.FetcherKind())
	assert.False(t, cfg.DryRun())
}

func TestInitConfigWithError_FlagOverrides(t *testing.T) {
	cmd.ResetFlags()
	t.Cleanup(cmd.ResetFlags)

	cmd.SetOutputPathForTest("deck.txt")
	cmd.SetFormatForTest("text")
	cmd.SetFetcherForTest("stub")
	cmd.SetDryRunForTest(true)

	cfg, err := cmd.InitConfigWithError("terms.txt")
	require.NoError(t, err)

	assert.Equal(t, "deck.txt", cfg.OutputPath())
	assert.Equal(t, output.FormatText, cfg.Format())
	assert.Equal(t, config.FetcherStub, cfg.FetcherKind())
	assert.True(t, cfg.DryRun())
}

func TestInitConfigWithError_ConfigFileWinsOverFlags(t *testing.T) {
	cmd.ResetFlags()
	t.Cleanup(cmd.ResetFlags)

	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"termsFile":"from-file.txt","outputPath":"from-file.apkg"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cmd.SetConfigFileForTest(path)
	cmd.SetOutputPathForTest("from-flag.txt")

	cfg, err := cmd.InitConfigWithError("from-flag-terms.txt")
	require.NoError(t, err)

	assert.Equal(t, "from-file.txt", cfg.TermsFile())
	assert.Equal(t, "from-file.apkg", cfg.OutputPath())
}

func TestInitConfigWithError_MissingConfigFile(t *testing.T) {
	cmd.ResetFlags()
	t.Cleanup(cmd.ResetFlags)

	cmd.SetConfigFileForTest(filepath.Join(t.TempDir(), "absent.json"))

	_, err := cmd.InitConfigWithError("")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrFileDoesNotExist)
}

func TestInitConfigWithError_InvalidFlagValues(t *testing.T) {
	cmd.ResetFlags()
	t.Cleanup(cmd.ResetFlags)

	cmd.SetFetcherForTest("carrier-pigeon")

	_, err := cmd.InitConfigWithError("terms.txt")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestInitConfigWithError_EmptyTermsFile(t *testing.T) {
	cmd.ResetFlags()

	_, err := cmd.InitConfigWithError("")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
