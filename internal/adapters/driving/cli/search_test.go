package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bumpbook/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	setupTestServices(t)

	_, err := runCommand(t, "", "search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasLimitFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "3", flag.DefValue)
}

func TestSearchCmd_VectorResults(t *testing.T) {
	setupTestServices(t)

	out, err := runCommand(t, "", "search", "tylenol")
	require.NoError(t, err)
	assert.Contains(t, out, "Results (vector):")
	assert.Contains(t, out, "[1] medication-pain-relief-acetaminophen (1.00)")
	assert.NotContains(t, out, "ibuprofen")
	assert.NotContains(t, out, "Note:")
}

func TestSearchCmd_KeywordFallback(t *testing.T) {
	setupTestServices(t, withoutEmbedder())

	out, err := runCommand(t, "", "search", "bleeding")
	require.NoError(t, err)
	assert.Contains(t, out, "Note: embedding service not configured, using keyword matching.")
	assert.Contains(t, out, "Results (keyword):")
	assert.Contains(t, out, "[1] symptom-bleeding-heavy-bleeding")
	assert.NotContains(t, out, "(0.00)")
}

func TestSearchCmd_LimitFlag(t *testing.T) {
	setupTestServices(t, withoutEmbedder())

	out, err := runCommand(t, "", "search", "-n", "1", "pregnancy")
	require.NoError(t, err)
	assert.Contains(t, out, "[1] ")
	assert.NotContains(t, out, "[2] ")
}

func TestSearchCmd_NoResults(t *testing.T) {
	setupTestServices(t, withoutEmbedder())

	out, err := runCommand(t, "", "search", "quantum chromodynamics")
	require.NoError(t, err)
	assert.Contains(t, out, "No results found.")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	setupTestServices(t)

	out, err := runCommand(t, "", "search", "--json", "tylenol")
	require.NoError(t, err)

	var parsed searchOutputJSON
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, "tylenol", parsed.Query)
	assert.Equal(t, "vector", parsed.Method)
	assert.Equal(t, "success", parsed.Outcome)
	require.Len(t, parsed.Results, 1)
	assert.Equal(t, "medication-pain-relief-acetaminophen", parsed.Results[0].ID)
	assert.InDelta(t, 1.0, parsed.Results[0].Score, 1e-6)
}

func TestOutputSearchTable_DegradedEmpty(t *testing.T) {
	buf := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(buf)

	outputSearchTable(cmd, domain.Retrieval{
		Method:  domain.RetrievalKeyword,
		Outcome: domain.Degraded("index not ready"),
	})
	assert.Equal(t, "Note: index not ready, using keyword matching.\n\nNo results found.\n", buf.String())
}
