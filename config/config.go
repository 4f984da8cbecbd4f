// Package config loads workflow settings from defaults, an optional YAML
// file and DURAG_* environment variables, in increasing precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Settings holds everything needed to assemble a workflow.
type Settings struct {
	// LLM selects the model backend for routing, grading and generation.
	LLM LLMSettings `mapstructure:"llm"`

	// KnowledgeGraph configures the FalkorDB evidence provider.
	KnowledgeGraph KnowledgeGraphSettings `mapstructure:"knowledge_graph"`

	// WebSearch configures the web evidence provider.
	WebSearch WebSearchSettings `mapstructure:"web_search"`

	// Workflow holds the control-loop knobs.
	Workflow WorkflowSettings `mapstructure:"workflow"`

	// History selects the run-history store.
	History HistorySettings `mapstructure:"history"`
}

// LLMSettings selects and tunes the model backend.
type LLMSettings struct {
	Provider    string  `mapstructure:"provider"`
	Model       string  `mapstructure:"model"`
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Temperature float64 `mapstructure:"temperature"`
}

// KnowledgeGraphSettings configures graph retrieval.
type KnowledgeGraphSettings struct {
	// URL is a falkordb:// connection string, e.g. falkordb://localhost:6379/durian.
	URL string `mapstructure:"url"`

	// Limit caps results per retrieval component.
	Limit int `mapstructure:"limit"`

	SearchNodes       bool `mapstructure:"search_nodes"`
	SearchEdges       bool `mapstructure:"search_edges"`
	SearchEpisodes    bool `mapstructure:"search_episodes"`
	SearchCommunities bool `mapstructure:"search_communities"`
}

// WebSearchSettings configures web retrieval.
type WebSearchSettings struct {
	// Provider is "tavily" or "duckduckgo".
	Provider   string `mapstructure:"provider"`
	APIKey     string `mapstructure:"api_key"`
	MaxResults int    `mapstructure:"max_results"`
}

// WorkflowSettings holds the control-loop knobs.
type WorkflowSettings struct {
	EnableRetrievedDocumentGrading bool `mapstructure:"enable_retrieved_document_grading"`
	EnableHallucinationChecking    bool `mapstructure:"enable_hallucination_checking"`
	EnableAnswerQualityChecking    bool `mapstructure:"enable_answer_quality_checking"`

	MaxQueryTransformationRetries int `mapstructure:"max_query_transformation_retries"`
	MaxHallucinationRetries       int `mapstructure:"max_hallucination_retries"`
	MaxConcurrentGrades           int `mapstructure:"max_concurrent_grades"`
}

// HistorySettings selects the run-history store.
type HistorySettings struct {
	// Driver is "memory", "sqlite" or "postgres".
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// Load reads settings from the given config file (optional, may be empty)
// and the environment. Environment variables use the DURAG_ prefix with
// underscores, e.g. DURAG_WEB_SEARCH_API_KEY.
func Load(configFile string) (Settings, error) {
	v := viper.New()

	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.temperature", 0.0)
	v.SetDefault("knowledge_graph.url", "falkordb://localhost:6379/durian")
	v.SetDefault("knowledge_graph.limit", 10)
	v.SetDefault("knowledge_graph.search_nodes", true)
	v.SetDefault("knowledge_graph.search_edges", true)
	v.SetDefault("knowledge_graph.search_episodes", false)
	v.SetDefault("knowledge_graph.search_communities", false)
	v.SetDefault("web_search.provider", "tavily")
	v.SetDefault("web_search.max_results", 5)
	v.SetDefault("workflow.enable_retrieved_document_grading", true)
	v.SetDefault("workflow.enable_hallucination_checking", true)
	v.SetDefault("workflow.enable_answer_quality_checking", true)
	v.SetDefault("workflow.max_query_transformation_retries", 3)
	v.SetDefault("workflow.max_hallucination_retries", 3)
	v.SetDefault("workflow.max_concurrent_grades", 4)
	v.SetDefault("history.driver", "memory")

	v.SetEnvPrefix("DURAG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("error unmarshalling config: %w", err)
	}
	return s, nil
}
