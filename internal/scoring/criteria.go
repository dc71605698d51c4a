package scoring

import "github.com/DhruvDFT/PD-Assignments-11-Jul/internal/model"

// criteria is the per-topic term table. Three tiers: excellent terms mark
// advanced understanding, good terms basic vocabulary, methodology terms a
// process-oriented answer. Matching is case-insensitive substring containment,
// each term counted at most once however often it repeats.
type criteria struct {
	excellentTerms   []string
	goodTerms        []string
	methodologyTerms []string
}

var scoringCriteria = map[model.Topic]criteria{
	model.TopicSTA: {
		excellentTerms:   []string{"setup time", "hold time", "slack", "timing violation", "clock skew", "timing corner", "propagated clock", "jitter", "ocv"},
		goodTerms:        []string{"timing", "clock", "delay", "path", "constraint", "analysis", "signoff", "violation"},
		methodologyTerms: []string{"systematic", "approach", "method", "technique", "optimization", "analysis"},
	},
	model.TopicCTS: {
		excellentTerms:   []string{"clock tree", "skew", "insertion delay", "balancing", "useful skew", "clock gating", "h-tree", "clock mesh", "power optimization"},
		goodTerms:        []string{"clock", "tree", "buffer", "delay", "synthesis", "distribution", "domain", "topology"},
		methodologyTerms: []string{"optimization", "technique", "approach", "method", "strategy", "implementation"},
	},
	model.TopicSignoff: {
		excellentTerms:   []string{"drc", "lvs", "antenna", "ir drop", "electromigration", "metal density", "signal integrity", "formal verification"},
		goodTerms:        []string{"signoff", "verification", "check", "violation", "analysis", "tape-out", "design rule"},
		methodologyTerms: []string{"systematic", "debug", "approach", "method", "flow", "process"},
	},
}

// structureMarkers flag an answer laid out as a list or ordered steps.
var structureMarkers = []string{"1.", "2.", "first", "second", "step"}

// criteriaFor falls back to the STA table for topics outside the enum so the
// heuristic stays total.
func criteriaFor(topic model.Topic) criteria {
	if c, ok := scoringCriteria[topic]; ok {
		return c
	}
	return scoringCriteria[model.TopicSTA]
}
