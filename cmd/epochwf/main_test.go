package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQuery_Alfred(t *testing.T) {
	out, err := execute(t, "--timezone", "UTC", "1733900000")
	require.NoError(t, err)

	var fb struct {
		Items []struct {
			Title    string `json:"title"`
			Subtitle string `json:"subtitle"`
			Arg      string `json:"arg"`
			Valid    bool   `json:"valid"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &fb))
	require.Len(t, fb.Items, 7)
	assert.Equal(t, "2024-12-11 06:53:20 UTC", fb.Items[0].Title)
	assert.Equal(t, "Local time (Wed)", fb.Items[0].Subtitle)
	assert.Equal(t, "1733900000", fb.Items[4].Arg)
	assert.True(t, fb.Items[4].Valid)
}

func TestQuery_AlfredFailureIsEmpty(t *testing.T) {
	out, err := execute(t, "not a date")
	require.NoError(t, err)

	var fb map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &fb))
	assert.Contains(t, fb, "items")
	assert.Empty(t, fb["items"])
}

func TestQuery_JSON(t *testing.T) {
	out, err := execute(t, "-o", "json", "--timezone", "UTC", "2025-12-01", "-1d", "+4d")
	require.NoError(t, err)

	var res resolveOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Resolved)
	assert.Equal(t, "2025-12-01 -1d +4d", res.Query)
	require.NotNil(t, res.Timestamp)
	assert.Equal(t, float64(1764547200+3*86400), *res.Timestamp)
	assert.False(t, res.IsEpochInput)
	assert.Len(t, res.Items, 7)
}

func TestQuery_LeadingSignAfterSeparator(t *testing.T) {
	out, err := execute(t, "-o", "json", "--", "-1d")
	require.NoError(t, err)

	var res resolveOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Resolved)
	assert.True(t, res.IsEpochInput)
	assert.True(t, res.RepresentsNow)
}

func TestQuery_Text(t *testing.T) {
	out, err := execute(t, "--output", "text", "--timezone", "UTC", "0")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "1970-01-01 00:00:00 UTC"))
	assert.Contains(t, lines[6], "Nanoseconds")

	_, err = execute(t, "--output", "text", "garbage")
	assert.Error(t, err)
}

func TestQuery_InvalidConfiguration(t *testing.T) {
	_, err := execute(t, "--output", "yaml", "0")
	assert.Error(t, err)

	_, err = execute(t, "--timezone", "Mars/Olympus_Mons", "0")
	assert.Error(t, err)

	_, err = execute(t, "--log-level", "loud", "0")
	assert.Error(t, err)
}

func TestQuery_EnvironmentConfiguration(t *testing.T) {
	t.Setenv("EPOCHWF_OUTPUT", "json")
	t.Setenv("EPOCHWF_TIMEZONE", "UTC")

	out, err := execute(t, "0")
	require.NoError(t, err)
	assert.Contains(t, out, `"resolved": true`)
	assert.Contains(t, out, "1970-01-01 00:00:00 UTC")
}

func TestHistory(t *testing.T) {
	dir := t.TempDir()
	common := []string{"--history", "--data", dir, "--mode", "dev"}

	_, err := execute(t, append(common, "1733900000")...)
	require.NoError(t, err)
	_, err = execute(t, append(common, "garbage")...)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "epochwf_dev.db"))

	out, err := execute(t, append(common, "-o", "text", "history")...)
	require.NoError(t, err)
	assert.Contains(t, out, "QUERY")
	assert.Contains(t, out, `"1733900000"`)
	assert.Contains(t, out, "2024-12-11T06:53:20Z")
	assert.Contains(t, out, `"garbage"`)

	out, err = execute(t, append(common, "history", "--limit", "1", "-o", "json")...)
	require.NoError(t, err)
	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Len(t, records, 1)

	out, err = execute(t, append(common, "history", "--clear")...)
	require.NoError(t, err)
	assert.Equal(t, "deleted 2 records\n", out)
}

func TestHistory_Disabled(t *testing.T) {
	_, err := execute(t, "history")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version", "--mode", "prod")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "epochwf "))
	assert.Contains(t, out, "(prod)")
}
