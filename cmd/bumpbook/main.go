// Command bumpbook answers pregnancy questions from a structured knowledge document.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/bumpbook/internal/adapters/driven/ai"
	"github.com/custodia-labs/bumpbook/internal/adapters/driven/config/file"
	"github.com/custodia-labs/bumpbook/internal/adapters/driven/knowledge"
	"github.com/custodia-labs/bumpbook/internal/adapters/driven/storage"
	"github.com/custodia-labs/bumpbook/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/bumpbook/internal/adapters/driving/cli"
	"github.com/custodia-labs/bumpbook/internal/core/domain"
	"github.com/custodia-labs/bumpbook/internal/core/ports/driven"
	"github.com/custodia-labs/bumpbook/internal/core/services"
	"github.com/custodia-labs/bumpbook/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	homeDir, err := file.DefaultDir()
	if err != nil {
		return fmt.Errorf("locating home directory: %w", err)
	}

	configStore, err := file.NewConfigStore(homeDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())

	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Settings:    settingsService,
		Preferences: services.NewPreferencesService(configStore),
	})
	// Everything that reads the knowledge document or talks to a provider is
	// built after flags are parsed, so --verbose covers it.
	cli.SetLoader(func(ctx context.Context) (cli.Services, error) {
		settings, err := settingsService.Get()
		if err != nil {
			return cli.Services{}, fmt.Errorf("reading settings: %w", err)
		}
		services.ApplyEnvironment(settings, os.Getenv)
		return load(ctx, settings, homeDir, &closers), nil
	})

	return cli.Execute(ctx)
}

// load builds the knowledge-backed services. Failures degrade; they never abort.
func load(ctx context.Context, settings *domain.AppSettings, homeDir string, closers *[]func()) cli.Services {
	aiServices := ai.Init(settings, false)
	*closers = append(*closers, aiServices.Close)
	for _, w := range aiServices.Warnings {
		logger.Debug("%s", w)
	}

	source, err := knowledge.NewSource(settings.Knowledge.Source)
	if err != nil {
		logger.Warn("Knowledge source %s: %v", settings.Knowledge.Source, err)
	}
	knowledgeService := services.NewKnowledgeService(source)
	knowledgeService.Load(ctx)

	sections, problems := services.BuildSections(knowledgeService.Document())
	for _, p := range problems {
		logger.Warn("Section skipped: %s", p.Error())
	}
	logger.Debug("Built %d sections", len(sections))

	cache := openCache(ctx, settings.Cache, filepath.Join(homeDir, "data"))
	if cache != nil {
		*closers = append(*closers, func() { _ = cache.Close() })
	}

	indexService := services.NewIndexService(sections, aiServices.EmbeddingService, cache, services.IndexConfig{
		Concurrency:       settings.Index.Concurrency,
		RequestsPerSecond: settings.Index.RequestsPerSecond,
	})
	retriever := services.NewRetrieverService(indexService, aiServices.EmbeddingService)
	responder := services.NewResponderService(retriever, aiServices.LLMService, memory.NewConversationStore(), nil)

	prompts, err := file.NewPromptStore(filepath.Join(homeDir, "prompts"), services.DefaultPrompts())
	if err != nil {
		logger.Warn("Custom prompts disabled: %v", err)
	} else {
		responder.SetPromptStore(prompts)
		watchPrompts(ctx, prompts)
	}

	return cli.Services{
		Knowledge: knowledgeService,
		Index:     indexService,
		Retrieval: retriever,
		Chat:      responder,
		Lookup:    services.NewLookupService(knowledgeService),
	}
}

// openCache opens the configured embedding cache, falling back to memory
// when the backend is unreachable.
func openCache(ctx context.Context, settings domain.CacheSettings, dataDir string) driven.EmbeddingCache {
	cache, err := storage.NewEmbeddingCache(ctx, settings, dataDir)
	if err != nil {
		logger.Warn("Embedding cache unavailable, using memory: %v", err)
		return memory.NewEmbeddingCache(settings.MemoryEntries)
	}
	return cache
}

// watchPrompts reloads prompt files edited while the process runs.
func watchPrompts(ctx context.Context, prompts *file.PromptStore) {
	watcher, err := file.NewPromptWatcher(prompts)
	if err != nil {
		logger.Debug("Prompt watcher disabled: %v", err)
		return
	}
	go func() {
		defer watcher.Close()
		watcher.Run(ctx, nil)
	}()
}
