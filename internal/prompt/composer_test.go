package prompt

import (
	"strings"
	"testing"

	"github.com/arlerug/wesafe-assistant/internal/expertise"
	"github.com/arlerug/wesafe-assistant/internal/turn"
)

func infoState(query, context string) *turn.State {
	conv := turn.NewConversation()
	st := conv.NewTurn(query)
	st.Level = expertise.LevelIntermediate
	st.Context = context
	return st
}

func TestComposerPrefix(t *testing.T) {
	c := NewComposer()

	t.Run("bootstrap flag wins regardless of other state", func(t *testing.T) {
		conv := turn.NewConversation()
		st := conv.NewTurn(turn.BootstrapMessage)
		st.Context = "### contesto che non deve apparire"
		st.Level = expertise.LevelExpert

		if got := c.Prefix(st); got != BootstrapGreeting {
			t.Errorf("bootstrap prefix = %q, want the fixed greeting instruction", got)
		}
		if got := c.Suffix(st); got != "" {
			t.Errorf("bootstrap suffix = %q, want empty", got)
		}
	})

	t.Run("context appears verbatim when non-empty", func(t *testing.T) {
		ctx := "[1] doc1\nLa visura catastale descrive l'immobile."
		got := c.Prefix(infoState("Devo controllare i gravami sull'immobile", ctx))

		if !strings.Contains(got, "### Contesto\n"+ctx) {
			t.Errorf("prefix does not embed the rendered context verbatim:\n%s", got)
		}
	})

	t.Run("context section omitted entirely when empty", func(t *testing.T) {
		got := c.Prefix(infoState("Voglio la visura catastale attuale", ""))

		if strings.Contains(got, "### Contesto") {
			t.Errorf("prefix must omit the context section when empty:\n%s", got)
		}
		if !strings.Contains(got, "### Elenco documenti disponibili") {
			t.Errorf("prefix must still carry the document menu:\n%s", got)
		}
	})

	t.Run("composition order persona, style, context, menu, closing", func(t *testing.T) {
		got := c.Prefix(infoState("domanda", "contesto di prova"))

		persona := strings.Index(got, "Assistente WeSafe")
		style := strings.Index(got, "Adatta la risposta al livello utente")
		context := strings.Index(got, "### Contesto")
		menu := strings.Index(got, "### Elenco documenti disponibili")
		closing := strings.Index(got, "Istruzioni finali")

		for name, idx := range map[string]int{
			"persona": persona, "style": style, "context": context,
			"menu": menu, "closing": closing,
		} {
			if idx < 0 {
				t.Fatalf("prefix missing %s section:\n%s", name, got)
			}
		}
		if !(persona < style && style < context && context < menu && menu < closing) {
			t.Errorf("sections out of order: persona=%d style=%d context=%d menu=%d closing=%d",
				persona, style, context, menu, closing)
		}
	})

	t.Run("style directive tracks the resolved level", func(t *testing.T) {
		st := infoState("domanda", "")
		st.Level = expertise.LevelExpert

		got := c.Prefix(st)
		if !strings.Contains(got, styleRules[expertise.LevelExpert]) {
			t.Errorf("expert style rule missing from prefix:\n%s", got)
		}
	})

	t.Run("unknown level falls back to the default style", func(t *testing.T) {
		st := infoState("domanda", "")
		st.Level = expertise.Level("stregone")

		if got := c.Prefix(st); !strings.Contains(got, styleDefault) {
			t.Errorf("default style rule missing for unknown level:\n%s", got)
		}
	})

	t.Run("recommendations surface for matching queries", func(t *testing.T) {
		got := c.Prefix(infoState("Devo verificare i gravami sull'immobile", ""))
		if !strings.Contains(got, "### Documenti consigliati") {
			t.Errorf("gravami query should produce recommendations:\n%s", got)
		}
		if !strings.Contains(got, "Ispezione ipotecaria ventennale") {
			t.Errorf("history need should recommend the ipotecaria inspection:\n%s", got)
		}
	})

	t.Run("standard suffix is empty", func(t *testing.T) {
		if got := c.Suffix(infoState("domanda", "ctx")); got != "" {
			t.Errorf("standard suffix = %q, want empty", got)
		}
	})

	t.Run("deterministic given the same state", func(t *testing.T) {
		st := infoState("Devo controllare i gravami", "contesto")
		if c.Prefix(st) != c.Prefix(st) {
			t.Error("Prefix is not deterministic")
		}
	})
}

func TestComposerFallbackPersona(t *testing.T) {
	c := NewComposer(WithoutDocumentFlow())

	st := infoState("domanda", "")
	st.Judgement = expertise.Judgement{
		CapabilitiesKnown: []string{"visura catastale"},
		ConceptsUnknown:   []string{"nota di trascrizione"},
		Misconceptions:    []string{"rendita come valore di mercato"},
		SeniorityGuess:    string(expertise.LevelIntermediate),
		Confidence:        0.8,
	}

	got := c.Prefix(st)

	if strings.Contains(got, "Assistente WeSafe") {
		t.Errorf("domain persona must not appear without the document flow:\n%s", got)
	}
	if !strings.Contains(got, "### User expertise profile") {
		t.Errorf("expertise profile summary missing:\n%s", got)
	}
	for _, want := range []string{
		"User seniority: intermedio.",
		"User knows: visura catastale.",
		"Explain briefly: nota di trascrizione.",
		"Correct misconceptions about: rendita come valore di mercato.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("profile line %q missing from:\n%s", want, got)
		}
	}

	t.Run("bootstrap still outranks the fallback", func(t *testing.T) {
		conv := turn.NewConversation()
		if got := c.Prefix(conv.NewTurn(turn.BootstrapMessage)); got != BootstrapGreeting {
			t.Errorf("bootstrap prefix = %q, want greeting", got)
		}
	})
}

func TestComposerStyleSuffix(t *testing.T) {
	c := NewComposer(WithStyleSuffix())

	st := infoState("domanda", "")
	st.Level = expertise.LevelNovice

	if got := c.Prefix(st); strings.Contains(got, "Adatta la risposta al livello utente") {
		t.Errorf("style must not be embedded in the prefix with WithStyleSuffix:\n%s", got)
	}

	got := c.Suffix(st)
	if !strings.Contains(got, "# Style rule") || !strings.Contains(got, styleRules[expertise.LevelNovice]) {
		t.Errorf("style suffix = %q, want novice style rule", got)
	}
}

func TestChain(t *testing.T) {
	t.Run("highest priority wins and replaces", func(t *testing.T) {
		var ch Chain
		ch.Register(1, "low", func(*turn.State) (string, bool) { return "low", true })
		ch.Register(10, "high", func(*turn.State) (string, bool) { return "high", true })

		if got := ch.Evaluate(&turn.State{}); got != "high" {
			t.Errorf("Evaluate() = %q, want high", got)
		}
	})

	t.Run("declining handler passes through", func(t *testing.T) {
		var ch Chain
		ch.Register(10, "declines", func(*turn.State) (string, bool) { return "ignored", false })
		ch.Register(1, "fallback", func(*turn.State) (string, bool) { return "fallback", true })

		if got := ch.Evaluate(&turn.State{}); got != "fallback" {
			t.Errorf("Evaluate() = %q, want fallback", got)
		}
	})

	t.Run("empty chain yields empty string", func(t *testing.T) {
		var ch Chain
		if got := ch.Evaluate(&turn.State{}); got != "" {
			t.Errorf("Evaluate() = %q, want empty", got)
		}
	})

	t.Run("equal priority keeps registration order", func(t *testing.T) {
		var ch Chain
		ch.Register(5, "first", func(*turn.State) (string, bool) { return "first", true })
		ch.Register(5, "second", func(*turn.State) (string, bool) { return "second", true })

		if got := ch.Evaluate(&turn.State{}); got != "first" {
			t.Errorf("Evaluate() = %q, want first", got)
		}
	})
}

func TestRecommend(t *testing.T) {
	t.Run("generic check recommends the base bundle without duplicates", func(t *testing.T) {
		recs := Recommend("Vorrei controllare la situazione del mio immobile")

		if len(recs) == 0 {
			t.Fatal("generic query should produce recommendations")
		}
		seen := map[string]bool{}
		for _, r := range recs {
			if seen[r.Doc] {
				t.Errorf("duplicate recommendation %q", r.Doc)
			}
			seen[r.Doc] = true
		}
	})

	t.Run("succession adds the estate document", func(t *testing.T) {
		recs := Recommend("L'immobile arriva da una successione ereditaria")
		found := false
		for _, r := range recs {
			if strings.Contains(r.Doc, "Dichiarazione di successione") {
				found = true
			}
		}
		if !found {
			t.Errorf("succession query missing estate recommendation: %v", recs)
		}
	})

	t.Run("unrelated query yields nothing", func(t *testing.T) {
		if recs := Recommend("Ciao, come stai?"); len(recs) != 0 {
			t.Errorf("Recommend() = %v, want empty", recs)
		}
	})
}
