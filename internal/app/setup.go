// Package app provides application initialization.
//
// Setup builds the whole object graph from configuration: Genkit with the
// configured provider plugin, the model completer, the intent classifier,
// the expertise estimator, the recall client and the prompt composer, all
// assembled into the turn pipeline the commands drive.
package app

import (
	"context"
	"errors"

	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/ollama"

	"github.com/arlerug/wesafe-assistant/internal/config"
	"github.com/arlerug/wesafe-assistant/internal/expertise"
	"github.com/arlerug/wesafe-assistant/internal/intent"
	"github.com/arlerug/wesafe-assistant/internal/llm"
	"github.com/arlerug/wesafe-assistant/internal/log"
	"github.com/arlerug/wesafe-assistant/internal/pipeline"
	"github.com/arlerug/wesafe-assistant/internal/prompt"
	"github.com/arlerug/wesafe-assistant/internal/recall"
)

// App is the assembled application.
type App struct {
	Config   *config.Config
	Genkit   *genkit.Genkit
	Pipeline *pipeline.Pipeline
	Logger   log.Logger
}

// Setup creates and initializes the application from a validated config.
func Setup(ctx context.Context, cfg *config.Config, logger log.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g, err := provideGenkit(ctx, cfg)
	if err != nil {
		return nil, err
	}

	completer := llm.NewGenkitCompleter(g, cfg.FullModelName())

	recaller := recall.NewClient(cfg.RecallBaseURL, logger,
		recall.WithDomain(cfg.RecallDomain))

	pipe := pipeline.New(pipeline.Params{
		Classifier:      intent.NewClassifier(completer, logger),
		Estimator:       provideEstimator(cfg, completer, logger),
		Recaller:        recaller,
		Composer:        prompt.NewComposer(),
		Completer:       completer,
		Logger:          logger,
		TopK:            cfg.RecallTopK,
		MaxContextChars: cfg.MaxContextChars,
	})

	logger.Info("application initialized",
		"provider", cfg.Provider,
		"model", cfg.FullModelName(),
		"recall_url", cfg.RecallBaseURL,
		"judge_strategy", cfg.JudgeStrategy)

	return &App{
		Config:   cfg,
		Genkit:   g,
		Pipeline: pipe,
		Logger:   logger,
	}, nil
}

// provideGenkit initializes Genkit with the configured provider plugin.
func provideGenkit(ctx context.Context, cfg *config.Config) (*genkit.Genkit, error) {
	switch cfg.Provider {
	case config.ProviderOllama:
		ollamaPlugin := &ollama.Ollama{ServerAddress: cfg.OllamaHost}
		g := genkit.Init(ctx, genkit.WithPlugins(ollamaPlugin))
		if g == nil {
			return nil, errors.New("initializing genkit with ollama provider")
		}
		// Ollama requires explicit model registration (no auto-discovery)
		ollamaPlugin.DefineModel(g, ollama.ModelDefinition{
			Name: cfg.ModelName,
			Type: "chat",
		}, nil)
		return g, nil

	default: // gemini / googleai, GEMINI_API_KEY read by the plugin itself
		g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
		if g == nil {
			return nil, errors.New("initializing genkit with googleai provider")
		}
		return g, nil
	}
}

// provideEstimator picks the expertise strategy. The LLM judge is the
// default; the keyword heuristic is the offline/deterministic alternative.
func provideEstimator(cfg *config.Config, completer llm.Completer, logger log.Logger) expertise.Estimator {
	if cfg.JudgeStrategy == config.JudgeStrategyHeuristic {
		return expertise.NewHeuristic()
	}
	return expertise.NewLLMJudge(completer, logger)
}
