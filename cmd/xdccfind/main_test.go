package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/xdccfind/xdccfind/internal/config"
	"github.com/xdccfind/xdccfind/internal/finder"
)

const mockConfig = `
search:
  finders: [mock]
  output: table
logging:
  level: error
`

func writeTestConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSearchCommand_Table(t *testing.T) {
	out, _, err := runCLI(t, []string{"search", "frieren", "-r", "1080p", "-e", "latest"}, writeTestConfig(t, mockConfig))
	require.NoError(t, err)

	assert.Contains(t, out, "PACK")
	assert.Contains(t, out, "BOT")
	assert.Contains(t, out, "[SubsPlease] Frieren - 03 (1080p).mkv")
	assert.NotContains(t, out, "Frieren - 02")
}

func TestSearchCommand_JSON(t *testing.T) {
	out, _, err := runCLI(t, []string{"search", "frieren", "-e", "2", "-o", "json"}, writeTestConfig(t, mockConfig))
	require.NoError(t, err)

	var body struct {
		Query struct {
			Search  string `json:"search"`
			Episode string `json:"episode"`
		} `json:"query"`
		Finders []string       `json:"finders"`
		Entries []finder.Entry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "frieren", body.Query.Search)
	assert.Equal(t, "2", body.Query.Episode)
	assert.Equal(t, []string{"mock"}, body.Finders)
	require.Len(t, body.Entries, 1)
	assert.Equal(t, 102, body.Entries[0].PackageNumber)
}

func TestSearchCommand_YAML(t *testing.T) {
	out, _, err := runCLI(t, []string{"search", "dungeon", "meshi", "-o", "yaml"}, writeTestConfig(t, mockConfig))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &body))
	query := body["query"].(map[string]any)
	assert.Equal(t, "dungeon meshi", query["search"])
	assert.Equal(t, "all", query["episode"])
	assert.Len(t, body["entries"], 1)
}

func TestSearchCommand_Plain(t *testing.T) {
	out, _, err := runCLI(t, []string{"search", "frieren", "-r", "720p", "-o", "plain"}, writeTestConfig(t, mockConfig))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[SubsPlease] Frieren - 03 (720p).mkv [Ginpachi-Sensei] (700M)", lines[0])
	assert.Equal(t, "  /msg Ginpachi-Sensei xdcc send #2203", lines[1])
}

func TestSearchCommand_NoResults(t *testing.T) {
	out, _, err := runCLI(t, []string{"search", "nothing-matches"}, writeTestConfig(t, mockConfig))
	require.NoError(t, err)
	assert.Contains(t, out, "No packages found.")
}

func TestSearchCommand_InvalidEpisode(t *testing.T) {
	_, _, err := runCLI(t, []string{"search", "frieren", "-e", "abc"}, writeTestConfig(t, mockConfig))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid episode number "abc"`)
}

func TestSearchCommand_InvalidOutput(t *testing.T) {
	_, _, err := runCLI(t, []string{"search", "frieren", "-o", "xml"}, writeTestConfig(t, mockConfig))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestSearchCommand_UnknownFinder(t *testing.T) {
	_, _, err := runCLI(t, []string{"search", "frieren", "--finder", "bogus"}, writeTestConfig(t, mockConfig))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestSearchCommand_RequiresTerms(t *testing.T) {
	_, _, err := runCLI(t, []string{"search"}, writeTestConfig(t, mockConfig))
	require.Error(t, err)
}

func TestConfigShow(t *testing.T) {
	out, _, err := runCLI(t, []string{"config", "show"}, writeTestConfig(t, mockConfig))
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, []string{"mock"}, cfg.Search.Finders)
	assert.Equal(t, config.Default().Nibl.BaseURL, cfg.Nibl.BaseURL)
}

func TestVersion(t *testing.T) {
	out, _, err := runCLI(t, []string{"version"}, "")
	require.NoError(t, err)
	assert.Equal(t, "xdccfind "+config.Version+"\n", out)
}

func TestFormatEntry(t *testing.T) {
	e := finder.Entry{PackageNumber: 1, BotName: "Bot", Name: "file.mkv", Size: "1G"}

	assert.Equal(t, "file.mkv [Bot] (1G)", formatEntry(e, false))

	colored := formatEntry(e, true)
	assert.True(t, strings.HasPrefix(colored, "file.mkv ["))
	assert.Contains(t, colored, "Bot")
	assert.True(t, strings.HasSuffix(colored, "] (1G)"))
}

func TestCheckCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"check"}, writeTestConfig(t, mockConfig))
	require.NoError(t, err)
	assert.Contains(t, out, "mock")
	assert.Contains(t, out, "ok")
}

func TestRenderTable(t *testing.T) {
	out := renderTable(checkColumns, [][]string{{"nibl", "failed", "12ms", "offline"}})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[1], "FINDER")
	assert.Contains(t, lines[1], "ERROR")
	assert.Contains(t, lines[3], "│ nibl ")
	assert.Contains(t, lines[3], "12ms │")
}
