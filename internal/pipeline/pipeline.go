// Package pipeline runs one full turn: intent classification, expertise
// estimation and passage recall feed the per-turn state, then the prompt
// composer reads it and the completed prompt goes to the model.
//
// Scheduling is request/response with no background goroutines. The
// classifier and the expertise estimator run concurrently; recall is gated
// on the classified intent, so it runs after classification inside the same
// task. All state writes land before composition. Every stage is total:
// an internal failure degrades to its documented fallback value and the
// assistant still answers.
package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/arlerug/wesafe-assistant/internal/expertise"
	"github.com/arlerug/wesafe-assistant/internal/intent"
	"github.com/arlerug/wesafe-assistant/internal/llm"
	"github.com/arlerug/wesafe-assistant/internal/log"
	"github.com/arlerug/wesafe-assistant/internal/prompt"
	"github.com/arlerug/wesafe-assistant/internal/recall"
	"github.com/arlerug/wesafe-assistant/internal/turn"
)

// Classifier resolves the two-way intent for a message.
type Classifier interface {
	Classify(ctx context.Context, text string) intent.Intent
}

// Recaller fetches the top-k nearest passages; total, never errors.
type Recaller interface {
	Recall(ctx context.Context, query string, k int) []recall.Passage
}

// Params collects the pipeline's collaborators and knobs.
type Params struct {
	Classifier Classifier
	Estimator  expertise.Estimator
	Recaller   Recaller
	Composer   *prompt.Composer
	Completer  llm.Completer
	Logger     log.Logger

	// TopK passages per recall; MaxContextChars bounds the rendered block.
	TopK            int
	MaxContextChars int
}

// Pipeline executes turns for one deployment configuration.
type Pipeline struct {
	classifier Classifier
	estimator  expertise.Estimator
	recaller   Recaller
	composer   *prompt.Composer
	completer  llm.Completer
	logger     log.Logger

	topK     int
	maxChars int
}

// New creates a Pipeline from its parts.
func New(p Params) *Pipeline {
	return &Pipeline{
		classifier: p.Classifier,
		estimator:  p.Estimator,
		recaller:   p.Recaller,
		composer:   p.Composer,
		completer:  p.Completer,
		logger:     p.Logger,
		topK:       p.TopK,
		maxChars:   p.MaxContextChars,
	}
}

// Run executes the stages for one inbound message and returns the filled
// turn state with the composed prompt block. The conversation's last known
// expertise level is updated unless the context was cancelled mid-turn, in
// which case partial writes are discarded with the state.
func (p *Pipeline) Run(ctx context.Context, conv *turn.Conversation, message string) (*turn.State, prompt.Block) {
	st := conv.NewTurn(message)

	// Control messages and empty input short-circuit every stage.
	if st.Bootstrap || st.Query == "" {
		return st, p.composer.Compose(st)
	}

	g, gctx := errgroup.WithContext(ctx)

	// Intent, then recall gated on it. Gating is control flow: recall never
	// runs for download requests, and that is a decision, not a race.
	g.Go(func() error {
		st.Intent = p.classifier.Classify(gctx, st.Query)
		if st.Intent == intent.Informational {
			st.Passages = p.recaller.Recall(gctx, st.Query, p.topK)
			st.Context = recall.Render(st.Passages, p.maxChars)
		} else {
			p.logger.Debug("recall skipped", "intent", st.Intent)
		}
		return nil
	})

	// Expertise estimation is independent of intent and runs in parallel.
	g.Go(func() error {
		res := p.estimator.Estimate(gctx, st.Query)
		st.Level = res.Level
		st.Judgement = res.Judgement
		st.Instructions = res.Instructions
		return nil
	})

	// Stages are total; the group carries no errors, Wait is the join point
	// that makes every state write visible before composition.
	_ = g.Wait()

	if ctx.Err() == nil {
		conv.Finish(st)
	}

	p.logger.Info("turn resolved",
		"conversation", st.ConversationID,
		"intent", st.Intent,
		"level", st.Level,
		"passages", len(st.Passages),
		"context_chars", len(st.Context))

	return st, p.composer.Compose(st)
}

// Respond runs the turn and asks the model for the final answer using the
// composed block as the system instruction. This is the one stage allowed
// to return an error: with no prompt delivered there is nothing to degrade
// to, and the caller decides how to surface it.
func (p *Pipeline) Respond(ctx context.Context, conv *turn.Conversation, message string) (string, error) {
	st, block := p.Run(ctx, conv, message)

	promptText := block.Join()
	if !st.Bootstrap {
		promptText += "\n\nMESSAGGIO UTENTE:\n" + st.Query
	}

	return p.completer.Complete(ctx, promptText)
}
