package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bumpbook/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/bumpbook/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults, *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("knowledge.source", "/data/knowledge.json")
	_ = store.Set("embedding.provider", "openai")
	_ = store.Set("embedding.model", "text-embedding-3-large")
	_ = store.Set("index.concurrency", int64(2))
	_ = store.Set("index.requests_per_second", 0.5)
	_ = store.Set("cache.backend", "redis")

	settings, err := NewSettingsService(store, nil).Get()

	require.NoError(t, err)
	assert.Equal(t, "/data/knowledge.json", settings.Knowledge.Source)
	assert.Equal(t, domain.AIProviderOpenAI, settings.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-large", settings.Embedding.Model)
	assert.Equal(t, 2, settings.Index.Concurrency)
	assert.InDelta(t, 0.5, settings.Index.RequestsPerSecond, 1e-9)
	assert.Equal(t, domain.CacheBackendRedis, settings.Cache.Backend)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("embedding.provider", "invalid_provider")
	_ = store.Set("cache.backend", "memcached")

	settings, err := NewSettingsService(store, nil).Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Embedding.Provider, settings.Embedding.Provider)
	assert.Equal(t, defaults.Cache.Backend, settings.Cache.Backend)
}

func TestSettingsService_SaveKeepsStoredKeyWhenEmpty(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("llm.api_key", "sk-stored")
	service := NewSettingsService(store, nil)

	settings, _ := service.Get()
	settings.LLM.APIKey = ""
	require.NoError(t, service.Save(settings))

	assert.Equal(t, "sk-stored", store.GetString("llm.api_key"))
}

func TestSettingsService_SetEmbeddingProvider(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, nil)

	require.NoError(t, service.SetEmbeddingProvider(domain.AIProviderOllama, "", ""))
	settings, _ := service.Get()
	assert.Equal(t, "nomic-embed-text", settings.Embedding.Model)
	assert.Equal(t, "http://localhost:11434", settings.Embedding.BaseURL)

	require.NoError(t, service.SetEmbeddingProvider(domain.AIProviderOpenAI, "text-embedding-3-large", "sk-test"))
	settings, _ = service.Get()
	assert.Equal(t, "text-embedding-3-large", settings.Embedding.Model)
	assert.Empty(t, settings.Embedding.BaseURL)
	assert.Equal(t, "sk-test", settings.Embedding.APIKey)
}

func TestSettingsService_SetEmbeddingProvider_Errors(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	assert.Error(t, service.SetEmbeddingProvider("bogus", "", ""))
	assert.Error(t, service.SetEmbeddingProvider(domain.AIProviderAnthropic, "", "key"))
	assert.Error(t, service.SetEmbeddingProvider(domain.AIProviderOpenAI, "", ""))
}

func TestSettingsService_SetLLMProvider(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	require.NoError(t, service.SetLLMProvider(domain.AIProviderAnthropic, "", "sk-ant"))

	settings, _ := service.Get()
	assert.Equal(t, domain.AIProviderAnthropic, settings.LLM.Provider)
	assert.Equal(t, "claude-3-5-sonnet-latest", settings.LLM.Model)
	assert.True(t, settings.LLM.IsConfigured())

	assert.Error(t, service.SetLLMProvider(domain.AIProviderOpenAI, "", ""))
}

func TestSettingsService_SetKnowledgeSourceAndCache(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)

	require.NoError(t, service.SetKnowledgeSource("https://example.org/knowledge.json"))
	require.NoError(t, service.SetCacheBackend(domain.CacheBackendMemory))

	settings, _ := service.Get()
	assert.Equal(t, "https://example.org/knowledge.json", settings.Knowledge.Source)
	assert.Equal(t, domain.CacheBackendMemory, settings.Cache.Backend)

	assert.ErrorIs(t, service.SetKnowledgeSource(""), domain.ErrInvalidInput)
	assert.Error(t, service.SetCacheBackend("memcached"))
}

type mockAIConfigValidator struct {
	embeddingErr error
	llmErr       error
}

func (m *mockAIConfigValidator) ValidateEmbedding(_ *domain.EmbeddingSettings) error {
	return m.embeddingErr
}

func (m *mockAIConfigValidator) ValidateLLM(_ *domain.LLMSettings) error {
	return m.llmErr
}

func TestSettingsService_Validate(t *testing.T) {
	assert.NoError(t, NewSettingsService(memory.NewConfigStore(), nil).ValidateLLMConfig())

	pingErr := errors.New("connection refused")
	service := NewSettingsService(memory.NewConfigStore(), &mockAIConfigValidator{embeddingErr: pingErr, llmErr: pingErr})
	assert.ErrorIs(t, service.ValidateEmbeddingConfig(), pingErr)
	assert.ErrorIs(t, service.ValidateLLMConfig(), pingErr)
}

func TestApplyEnvironment(t *testing.T) {
	env := func(vars map[string]string) func(string) string {
		return func(k string) string { return vars[k] }
	}

	t.Run("openai key configures both services", func(t *testing.T) {
		s := domain.DefaultAppSettings()
		ApplyEnvironment(&s, env(map[string]string{EnvOpenAIKey: "sk-env", EnvKnowledge: "/k.json"}))

		assert.Equal(t, domain.AIProviderOpenAI, s.LLM.Provider)
		assert.Equal(t, "gpt-4o-mini", s.LLM.Model)
		assert.Equal(t, "sk-env", s.LLM.APIKey)
		assert.Equal(t, domain.AIProviderOpenAI, s.Embedding.Provider)
		assert.Equal(t, "text-embedding-3-small", s.Embedding.Model)
		assert.Equal(t, "/k.json", s.Knowledge.Source)
	})

	t.Run("anthropic key configures llm only", func(t *testing.T) {
		s := domain.DefaultAppSettings()
		ApplyEnvironment(&s, env(map[string]string{EnvAnthropicKey: "sk-ant"}))

		assert.Equal(t, domain.AIProviderAnthropic, s.LLM.Provider)
		assert.True(t, s.LLM.IsConfigured())
		assert.False(t, s.Embedding.IsConfigured())
	})

	t.Run("stored settings win", func(t *testing.T) {
		s := domain.DefaultAppSettings()
		s.LLM = domain.LLMSettings{Provider: domain.AIProviderOllama, Model: "llama3.2"}
		s.Knowledge.Source = "/stored.json"
		ApplyEnvironment(&s, env(map[string]string{EnvOpenAIKey: "sk-env", EnvKnowledge: "/env.json"}))

		assert.Equal(t, domain.AIProviderOllama, s.LLM.Provider)
		assert.Empty(t, s.LLM.APIKey)
		assert.Equal(t, "/stored.json", s.Knowledge.Source)
	})

	t.Run("missing key filled for stored provider", func(t *testing.T) {
		s := domain.DefaultAppSettings()
		s.LLM.Provider = domain.AIProviderAnthropic
		ApplyEnvironment(&s, env(map[string]string{EnvAnthropicKey: "sk-ant"}))

		assert.Equal(t, "sk-ant", s.LLM.APIKey)
	})

	t.Run("nothing set stays unconfigured", func(t *testing.T) {
		s := domain.DefaultAppSettings()
		ApplyEnvironment(&s, env(nil))

		assert.False(t, s.LLM.IsConfigured())
		assert.False(t, s.Embedding.IsConfigured())
	})
}
