package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrewOch/ClapperRoughCutBackend/internal/testutil"
	"github.com/AndrewOch/ClapperRoughCutBackend/model"
	"github.com/AndrewOch/ClapperRoughCutBackend/services"
)

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

func writeJSONFile(t *testing.T, dir, name string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func writeTestConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

type cliFixture struct {
	dir     string
	script  string
	files   string
	actions string
	config  string
}

func newCLIFixture(t *testing.T) cliFixture {
	t.Helper()
	dir := t.TempDir()
	return cliFixture{
		dir:    dir,
		script: writeJSONFile(t, dir, "script.json", testutil.SampleScript("film")),
		files: writeJSONFile(t, dir, "files.json", []model.MediaFile{
			testutil.ForestFile("take-1"),
			{ID: "take-2", Subtitles: testutil.Subtitles("Камера, мотор")},
		}),
		actions: writeJSONFile(t, dir, "actions.json", map[string]any{
			"files": []model.MediaFile{testutil.MorningForestFile("take-1")},
		}),
		config: writeTestConfig(t, dir, "log:\n  level: error\n  format: json\n"),
	}
}

func TestMatchPhrasesJSON(t *testing.T) {
	fx := newCLIFixture(t)

	stdout, _, err := runCLI(t, []string{"match", "phrases", "--script", fx.script, "--files", fx.files}, fx.config)
	require.NoError(t, err)

	var resp services.PhraseMatchResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "stream", resp.Strategy)
	assert.NotEmpty(t, resp.RequestID)
	require.Len(t, resp.Results, 2)

	require.NotNil(t, resp.Results[0].BestMatch)
	assert.Equal(t, "take-1", resp.Results[0].FileID)
	assert.Equal(t, "p1", resp.Results[0].BestMatch.PhraseID)
	assert.Nil(t, resp.Results[1].BestMatch)
}

func TestMatchPhrasesSummary(t *testing.T) {
	fx := newCLIFixture(t)

	stdout, _, err := runCLI(t, []string{
		"match", "phrases",
		"--script", fx.script,
		"--files", fx.files,
		"--strategy", "combination",
		"--summary",
	}, fx.config)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Phrases (combination")
	assert.Contains(t, stdout, "take-1")
	assert.Contains(t, stdout, "p1")
}

func TestMatchPhrasesUnknownStrategy(t *testing.T) {
	fx := newCLIFixture(t)

	_, _, err := runCLI(t, []string{
		"match", "phrases",
		"--script", fx.script,
		"--files", fx.files,
		"--strategy", "fuzzy",
	}, fx.config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fuzzy")
}

func TestMatchActions(t *testing.T) {
	fx := newCLIFixture(t)

	stdout, _, err := runCLI(t, []string{"match", "actions", "--script", fx.script, "--files", fx.actions}, fx.config)
	require.NoError(t, err)

	var resp services.ActionMatchResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Len(t, resp.Results, 1)
	require.NotNil(t, resp.Results[0].BestMatch)
	assert.Equal(t, "a1", resp.Results[0].BestMatch.ActionID)

	stdout, _, err = runCLI(t, []string{"match", "actions", "--script", fx.script, "--files", fx.actions, "--summary"}, fx.config)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Actions (")
	assert.Contains(t, stdout, "a1")
}

func TestStatsCommand(t *testing.T) {
	fx := newCLIFixture(t)

	stdout, _, err := runCLI(t, []string{"stats", "--script", fx.script}, fx.config)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Classes (3 actions)")
	assert.Contains(t, stdout, "Synonyms")
	assert.Contains(t, stdout, "Unused words")
	assert.Contains(t, stdout, "forest")

	stdout, _, err = runCLI(t, []string{"stats", "--script", fx.script, "--json"}, fx.config)
	require.NoError(t, err)
	var stats model.ClassStatistics
	require.NoError(t, json.Unmarshal([]byte(stdout), &stats))
	assert.Equal(t, 3, stats.ActionCount)
}

func TestMissingInputFile(t *testing.T) {
	fx := newCLIFixture(t)

	_, _, err := runCLI(t, []string{
		"match", "phrases",
		"--script", filepath.Join(fx.dir, "missing.json"),
		"--files", fx.files,
	}, fx.config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read script")
}

func TestInvalidConfigRejected(t *testing.T) {
	fx := newCLIFixture(t)
	badConfig := writeTestConfig(t, t.TempDir(), "log:\n  format: xml\n")

	_, _, err := runCLI(t, []string{"stats", "--script", fx.script}, badConfig)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestReadFilesAcceptsBothShapes(t *testing.T) {
	dir := t.TempDir()
	file := testutil.ForestFile("f1")

	arrayPath := writeJSONFile(t, dir, "array.json", []model.MediaFile{file})
	objectPath := writeJSONFile(t, dir, "object.json", map[string]any{"files": []model.MediaFile{file}})

	fromArray, err := readFiles(arrayPath)
	require.NoError(t, err)
	fromObject, err := readFiles(objectPath)
	require.NoError(t, err)

	require.Len(t, fromArray, 1)
	assert.Equal(t, fromArray, fromObject)
}

func TestReadScriptDefaultsID(t *testing.T) {
	def := testutil.SampleScript("")
	path := writeJSONFile(t, t.TempDir(), "script.json", def)

	got, err := readScript(path)
	require.NoError(t, err)
	assert.Equal(t, localScriptID, got.ScriptID)
}
