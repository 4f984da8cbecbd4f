package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "openai", s.LLM.Provider)
	assert.Equal(t, "falkordb://localhost:6379/durian", s.KnowledgeGraph.URL)
	assert.True(t, s.KnowledgeGraph.SearchNodes)
	assert.True(t, s.KnowledgeGraph.SearchEdges)
	assert.False(t, s.KnowledgeGraph.SearchEpisodes)
	assert.Equal(t, "tavily", s.WebSearch.Provider)
	assert.Equal(t, 5, s.WebSearch.MaxResults)
	assert.True(t, s.Workflow.EnableRetrievedDocumentGrading)
	assert.Equal(t, 3, s.Workflow.MaxQueryTransformationRetries)
	assert.Equal(t, 3, s.Workflow.MaxHallucinationRetries)
	assert.Equal(t, "memory", s.History.Driver)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "durag.yaml")
	content := `
llm:
  provider: ollama
  model: llama3
workflow:
  enable_answer_quality_checking: false
  max_hallucination_retries: 1
history:
  driver: sqlite
  dsn: runs.db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ollama", s.LLM.Provider)
	assert.Equal(t, "llama3", s.LLM.Model)
	assert.False(t, s.Workflow.EnableAnswerQualityChecking)
	assert.Equal(t, 1, s.Workflow.MaxHallucinationRetries)
	assert.Equal(t, "sqlite", s.History.Driver)
	assert.Equal(t, "runs.db", s.History.DSN)
	// untouched keys keep their defaults
	assert.True(t, s.Workflow.EnableHallucinationChecking)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DURAG_WEB_SEARCH_PROVIDER", "duckduckgo")
	t.Setenv("DURAG_LLM_MODEL", "gpt-4o")

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "duckduckgo", s.WebSearch.Provider)
	assert.Equal(t, "gpt-4o", s.LLM.Model)
}
