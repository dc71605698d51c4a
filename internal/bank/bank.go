// Package bank holds the static question sets issued to engineers. The bank
// is read-only after process start; assessments snapshot their questions at
// creation time so the two never alias.
package bank

import (
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/model"
	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/util"
)

// QuestionsPerTopic is fixed across all topics. Max total per assessment is
// 10 points per question, 180 overall.
const QuestionsPerTopic = 18

var questions = map[model.Topic][]string{
	model.TopicSTA: {
		"What is Static Timing Analysis (STA)? Why is it important in chip design?",
		"Explain setup time and hold time. What happens when these requirements are violated?",
		"What is slack? How do you calculate setup slack and hold slack?",
		"Your design has setup violations of -30ps. List 3 methods to fix these violations.",
		"What is clock skew? How does it affect setup and hold timing?",
		"Explain timing corners. Which corners do you use for setup and hold analysis?",
		"What are timing exceptions? When would you use false paths?",
		"Describe the difference between ideal clock and propagated clock analysis.",
		"What is clock jitter? How do you account for it in timing calculations?",
		"Your hold violations are at 25ps. What are the common ways to fix hold violations?",
		"What is OCV (On-Chip Variation)? Why do you add OCV margins in STA?",
		"Explain multicycle paths. Give an example where you would use them.",
		"How do you analyze timing for multiple clock domains?",
		"What is clock domain crossing (CDC)? What timing checks are needed?",
		"Describe timing analysis for memory interfaces (SRAM). What makes it different?",
		"What reports do you check for timing signoff? List the key timing reports.",
		"How do you handle timing analysis for generated clocks?",
		"What is timing correlation? How do you ensure STA matches real silicon performance?",
	},
	model.TopicCTS: {
		"What is Clock Tree Synthesis (CTS)? Why do we build clock trees?",
		"What is clock skew? What is an acceptable skew target for most designs?",
		"Explain clock insertion delay. How is it different from clock skew?",
		"Your clock tree has 150ps skew but target is 50ps. How would you reduce it?",
		"What elements are used to build clock trees? Describe buffers and inverters.",
		"What is clock tree balancing? How do you achieve balanced insertion delay?",
		"What is useful skew? Give an example where you would use it intentionally.",
		"How do clock gating cells affect your clock tree? Where do you place them?",
		"Compare H-tree vs balanced tree topologies. When would you use each?",
		"Your design has 3 clock domains. How do you handle multiple clocks in CTS?",
		"What techniques can you use to reduce clock tree power consumption?",
		"How do you build clock trees when you have multiple voltage domains?",
		"What is clock mesh? When would you choose mesh over tree topology?",
		"Describe CTS challenges for high-frequency designs (>1GHz).",
		"How do you handle CTS for designs with power gating?",
		"What is the typical flow sequence? When does CTS happen relative to placement and routing?",
		"How do you optimize clock trees for process variation and yield?",
		"What reports do you check after CTS? How do you verify clock tree quality?",
	},
	model.TopicSignoff: {
		"What is signoff in chip design? What must pass before tape-out?",
		"List 5 major signoff checks. Why is each one important?",
		"What is DRC (Design Rule Check)? Give 3 examples of common DRC violations.",
		"What is LVS (Layout vs Schematic)? What does an LVS mismatch mean?",
		"Your design has 20 LVS errors. What systematic approach would you use to debug them?",
		"What is antenna checking? Why can antenna violations damage your chip?",
		"Explain metal density rules. What happens if density is too low?",
		"What is IR drop analysis? What are typical IR drop limits?",
		"Your design has IR drop violations of 120mV. How would you fix them?",
		"What is electromigration (EM)? How do you prevent EM violations?",
		"Describe timing signoff. What timing reports are required?",
		"What is signal integrity (SI) analysis? What SI effects do you check?",
		"How do you perform power analysis for signoff? What power metrics matter?",
		"What additional checks are needed for multi-voltage designs?",
		"What is formal verification? How is it different from simulation?",
		"Explain thermal analysis. How do you ensure your chip won't overheat?",
		"What is yield analysis? How do you optimize for manufacturing yield?",
		"Describe the typical signoff flow. Who signs off on what?",
	},
}

// QuestionsFor returns a caller-owned copy of the question list for topic.
func QuestionsFor(topic model.Topic) ([]string, error) {
	qs, ok := questions[topic]
	if !ok {
		return nil, util.ErrUnknownTopic
	}
	return append([]string(nil), qs...), nil
}

// Topics returns the closed topic enum in stable order.
func Topics() []model.Topic {
	return []model.Topic{model.TopicSTA, model.TopicCTS, model.TopicSignoff}
}

// IsValidTopic reports whether topic is part of the enum.
func IsValidTopic(topic model.Topic) bool {
	_, ok := questions[topic]
	return ok
}
