package prompt

import "strings"

// Recommendation pairs a document with the reason it helps.
type Recommendation struct {
	Doc    string
	Reason string
}

// Signal terms mapped to document needs. Matching is on the lowercased
// query, substring semantics so inflected forms ("ipoteche", "ipotecaria")
// hit their stem.
var (
	historySignals  = []string{"ventennio", "provenienza", "atto certo", "pregiudiz", "gravami", "ipotec"}
	identitySignals = []string{"identificativi", "foglio", "particella", "sub", "catasto", "mappale", "accatast"}
	planSignals     = []string{"planimetria", "conformità", "planimetric"}
	genericSignals  = []string{"situazione", "controllare", "verificare", "stato", "immobile", "casa"}
	estateSignals   = []string{"succession", "eredit", "donaz"}
)

// Recommend derives rule-based document suggestions from the query.
// Pure and deterministic; duplicates are removed preserving first order.
func Recommend(query string) []Recommendation {
	q := strings.ToLower(query)

	needHistory := containsAny(q, historySignals)
	needIdentity := containsAny(q, identitySignals)
	needPlan := containsAny(q, planSignals)
	genericCheck := containsAny(q, genericSignals)

	var recs []Recommendation
	if needIdentity || genericCheck {
		recs = append(recs,
			Recommendation{
				Doc:    "Visura catastale attuale (Fabbricati/Terreni)",
				Reason: "intestazioni, rendita/superficie, identificativi Comune–Foglio–Particella–Sub.",
			},
			Recommendation{
				Doc:    "Visura catastale storica",
				Reason: "variazioni nel tempo (soppressioni/accorpamenti, dante/avente causa).",
			})
	}

	if needPlan || genericCheck {
		recs = append(recs, Recommendation{
			Doc:    "Planimetria catastale",
			Reason: "confronto con lo stato di fatto; conformità catastale.",
		})
	}

	if needHistory || genericCheck {
		recs = append(recs,
			Recommendation{
				Doc:    "Atto di provenienza (rogito/donazione/successione)",
				Reason: "individuare l'atto certo per la copertura del ventennio.",
			},
			Recommendation{
				Doc:    "Ispezione ipotecaria ventennale (per soggetto e per immobile)",
				Reason: "verifica formalità/gravami (ipoteche, pignoramenti, sequestri) ultimi 20 anni.",
			})
	}

	if containsAny(q, estateSignals) {
		recs = append(recs, Recommendation{
			Doc:    "Dichiarazione di successione / Nota trascrizione donazione",
			Reason: "completare la catena dei titoli se la provenienza non è un rogito standard.",
		})
	}

	return dedup(recs)
}

func containsAny(q string, signals []string) bool {
	for _, s := range signals {
		if strings.Contains(q, s) {
			return true
		}
	}
	return false
}

func dedup(recs []Recommendation) []Recommendation {
	seen := make(map[string]bool, len(recs))
	ordered := recs[:0]
	for _, r := range recs {
		if !seen[r.Doc] {
			seen[r.Doc] = true
			ordered = append(ordered, r)
		}
	}
	return ordered
}
