// Package prompt assembles the system prompt from the resolved turn state.
//
// Multiple candidate handlers may want to contribute to the prefix or suffix
// slot; they are held in an explicit priority-ordered chain and exactly one
// wins per slot (see Chain). The ranking, highest first:
//
//  1. bootstrap greeting — on the session-opening control message it emits a
//     fixed greeting-only instruction and ignores every other contributor;
//  2. the domain persona + retrieved context + document menu composer;
//  3. a generic professional persona with the expertise profile summary,
//     used as fallback when the document flow is disabled.
//
// Composition is pure given the turn state: no I/O, total lookups, same
// state in, same prompt out.
package prompt

import (
	"fmt"
	"strings"

	"github.com/arlerug/wesafe-assistant/internal/expertise"
	"github.com/arlerug/wesafe-assistant/internal/turn"
)

// Handler priorities, highest wins.
const (
	priorityBootstrap    = 200
	priorityDomain       = 100
	priorityProfessional = 10
)

// Block is the assembled prompt: prefix, rendered context (already folded
// into the prefix), suffix. Join() is what the model receives.
type Block struct {
	Prefix  string
	Context string
	Suffix  string
}

// Join concatenates the block into the single system instruction.
func (b Block) Join() string {
	return strings.TrimSpace(b.Prefix + b.Context + b.Suffix)
}

// Composer evaluates the prefix and suffix chains against a turn state.
type Composer struct {
	prefix Chain
	suffix Chain
}

// Option configures a Composer.
type Option func(*composerConfig)

type composerConfig struct {
	documentFlow bool
	styleSuffix  bool
}

// WithoutDocumentFlow disables the domain persona and document menu,
// leaving the generic professional persona to win the prefix. Meant for
// deployments that run the pipeline without a provisioned passage store.
func WithoutDocumentFlow() Option {
	return func(c *composerConfig) {
		c.documentFlow = false
	}
}

// WithStyleSuffix emits the level style rule as a suffix instead of folding
// it into the prefix.
func WithStyleSuffix() Option {
	return func(c *composerConfig) {
		c.styleSuffix = true
	}
}

// NewComposer builds a Composer with the standard handler ranking.
func NewComposer(opts ...Option) *Composer {
	cfg := composerConfig{documentFlow: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Composer{}

	c.prefix.Register(priorityBootstrap, "bootstrap-greeting", bootstrapPrefix)
	if cfg.documentFlow {
		c.prefix.Register(priorityDomain, "domain-persona", func(st *turn.State) (string, bool) {
			return domainPrefix(st, !cfg.styleSuffix), true
		})
	}
	c.prefix.Register(priorityProfessional, "professional-persona", func(st *turn.State) (string, bool) {
		return professionalPrefix(st), true
	})

	// The bootstrap override owns both slots.
	c.suffix.Register(priorityBootstrap, "bootstrap-greeting", func(st *turn.State) (string, bool) {
		return "", st.Bootstrap
	})
	if cfg.styleSuffix {
		c.suffix.Register(priorityDomain, "style-rule", StyleSuffix)
	}

	return c
}

// Prefix composes the winning prefix for the turn.
func (c *Composer) Prefix(st *turn.State) string {
	return c.prefix.Evaluate(st)
}

// Suffix composes the winning suffix for the turn. Empty in the primary
// flow: style is folded into the prefix.
func (c *Composer) Suffix(st *turn.State) string {
	return c.suffix.Evaluate(st)
}

// Compose evaluates both slots once and returns the assembled block.
func (c *Composer) Compose(st *turn.State) Block {
	return Block{
		Prefix: c.Prefix(st),
		Suffix: c.Suffix(st),
	}
}

// bootstrapPrefix short-circuits the chain on the session-opening message.
func bootstrapPrefix(st *turn.State) (string, bool) {
	if !st.Bootstrap {
		return "", false
	}
	return BootstrapGreeting, true
}

// domainPrefix is the standard composition: persona, style directive,
// retrieved context (omitted when empty), rule-based recommendations,
// closed document menu, closing instruction.
func domainPrefix(st *turn.State, embedStyle bool) string {
	var b strings.Builder

	b.WriteString(personaWeSafe)
	b.WriteString("\n")

	if embedStyle {
		b.WriteString("\nAdatta la risposta al livello utente: ")
		b.WriteString(styleFor(st.Level))
		b.WriteString("\n")
	}

	if st.Context != "" {
		b.WriteString("\n### Contesto\n")
		b.WriteString(st.Context)
		b.WriteString("\n")
	}

	if recs := Recommend(st.Query); len(recs) > 0 {
		b.WriteString("\n### Documenti consigliati (se coerenti con la domanda)\n")
		for _, r := range recs {
			fmt.Fprintf(&b, "- %s: %s\n", r.Doc, r.Reason)
		}
	}

	b.WriteString("\n")
	b.WriteString(documentMenu)
	b.WriteString("\n\n")
	b.WriteString(closingInstruction)
	b.WriteString("\n")

	return b.String()
}

// professionalPrefix is the fallback persona with the expertise profile.
func professionalPrefix(st *turn.State) string {
	var b strings.Builder
	b.WriteString(personaProfessional)

	var lines []string
	if st.Level != "" {
		lines = append(lines, fmt.Sprintf("User seniority: %s.", st.Level))
	}
	if j := st.Judgement; len(j.CapabilitiesKnown) > 0 {
		lines = append(lines, "User knows: "+strings.Join(j.CapabilitiesKnown, "; ")+".")
	}
	if j := st.Judgement; len(j.ConceptsUnknown) > 0 {
		lines = append(lines, "Explain briefly: "+strings.Join(j.ConceptsUnknown, "; ")+".")
	}
	if j := st.Judgement; len(j.Misconceptions) > 0 {
		lines = append(lines, "Correct misconceptions about: "+strings.Join(j.Misconceptions, "; ")+".")
	}

	if len(lines) > 0 {
		b.WriteString("\n\n### User expertise profile\n")
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n")
	}

	return b.String()
}

// StyleSuffix is the alternate style-only suffix handler, using the same
// lookup table as the prefix directive.
func StyleSuffix(st *turn.State) (string, bool) {
	return fmt.Sprintf("\n# Style rule\n%s\n", styleFor(st.Level)), true
}

// Style exposes the level lookup for callers that render the directive
// elsewhere; unknown levels resolve to the professional default.
func Style(level expertise.Level) string {
	return styleFor(level)
}
