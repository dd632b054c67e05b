package app

import (
	"context"
	"errors"
	"testing"

	"github.com/arlerug/wesafe-assistant/internal/config"
	"github.com/arlerug/wesafe-assistant/internal/expertise"
	"github.com/arlerug/wesafe-assistant/internal/llm"
	"github.com/arlerug/wesafe-assistant/internal/log"
)

func TestSetupRejectsInvalidConfig(t *testing.T) {
	cfg := &config.Config{
		Provider:        "not-a-provider",
		ModelName:       "gemini-2.5-flash",
		MaxTokens:       1024,
		RecallBaseURL:   "http://127.0.0.1",
		RecallTopK:      5,
		MaxContextChars: 3200,
		JudgeStrategy:   config.JudgeStrategyLLM,
	}

	_, err := Setup(context.Background(), cfg, log.NewNop())
	if !errors.Is(err, config.ErrInvalidProvider) {
		t.Errorf("Setup() error = %v, want ErrInvalidProvider", err)
	}
}

func TestProvideEstimator(t *testing.T) {
	completer := &llm.Fake{}
	logger := log.NewNop()

	t.Run("heuristic strategy", func(t *testing.T) {
		cfg := &config.Config{JudgeStrategy: config.JudgeStrategyHeuristic}
		if _, ok := provideEstimator(cfg, completer, logger).(*expertise.Heuristic); !ok {
			t.Error("heuristic strategy must yield the keyword estimator")
		}
	})

	t.Run("llm strategy is the default", func(t *testing.T) {
		for _, strategy := range []string{config.JudgeStrategyLLM, ""} {
			cfg := &config.Config{JudgeStrategy: strategy}
			if _, ok := provideEstimator(cfg, completer, logger).(*expertise.LLMJudge); !ok {
				t.Errorf("strategy %q must yield the model judge", strategy)
			}
		}
	})
}
