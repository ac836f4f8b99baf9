package automata

import (
	"fmt"
	"strings"
)

// StepKind classifies a Step.
type StepKind int

const (
	ClosureComputed StepKind = iota
	StateCreated
	StateReused
	TransitionAdded
	PartitionSplit
	PartitionStable
)

var stepKindNames = [...]string{
	ClosureComputed: "ClosureComputed",
	StateCreated:    "StateCreated",
	StateReused:     "StateReused",
	TransitionAdded: "TransitionAdded",
	PartitionSplit:  "PartitionSplit",
	PartitionStable: "PartitionStable",
}

func (k StepKind) String() string {
	if k < 0 || int(k) >= len(stepKindNames) {
		return fmt.Sprintf("StepKind(%d)", int(k))
	}
	return stepKindNames[k]
}

func (k StepKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *StepKind) UnmarshalText(text []byte) error {
	for i, name := range stepKindNames {
		if name == string(text) {
			*k = StepKind(i)
			return nil
		}
	}
	return fmt.Errorf("automata: unknown step kind %q", text)
}

// Payload carries the ids and symbols a Step is about. Only the fields relevant to the
// step's kind are set.
type Payload struct {
	// From is the source state of a transition, or the input set of a closure.
	From []StateID `json:"from,omitempty" yaml:"from,omitempty" toml:"from,omitempty"`
	// State is the DFA state created, reused or targeted.
	State  StateID `json:"state,omitempty" yaml:"state,omitempty" toml:"state,omitempty"`
	Symbol Symbol  `json:"symbol,omitempty" yaml:"symbol,omitempty" toml:"symbol,omitempty"`
	// Members lists the NFA states of a closure or of a created state.
	Members []StateID `json:"members,omitempty" yaml:"members,omitempty" toml:"members,omitempty"`
	// Blocks lists the partition after a refinement round.
	Blocks    [][]StateID `json:"blocks,omitempty" yaml:"blocks,omitempty" toml:"blocks,omitempty"`
	Iteration int         `json:"iteration,omitempty" yaml:"iteration,omitempty" toml:"iteration,omitempty"`
}

// Step records one decision taken by ToDFA or Minimize, for display.
type Step struct {
	Kind        StepKind `json:"kind" yaml:"kind" toml:"kind"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	Payload     Payload  `json:"payload" yaml:"payload" toml:"payload"`
}

// Result is the output of a conversion: a new automaton and the steps that produced it.
type Result struct {
	Automaton Automaton `json:"automaton" yaml:"automaton" toml:"automaton"`
	Steps     []Step    `json:"steps,omitempty" yaml:"steps,omitempty" toml:"steps,omitempty"`
}

// tracer accumulates steps. A nil tracer drops them.
type tracer struct {
	steps []Step
}

func newTracer(enabled bool) *tracer {
	if !enabled {
		return nil
	}
	return &tracer{}
}

func (t *tracer) add(kind StepKind, payload Payload, format string, args ...any) {
	if t == nil {
		return
	}
	t.steps = append(t.steps, Step{
		Kind:        kind,
		Description: fmt.Sprintf(format, args...),
		Payload:     payload,
	})
}

func (t *tracer) result() []Step {
	if t == nil {
		return nil
	}
	return t.steps
}

func formatSet(ids []StateID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func formatBlocks(blocks [][]StateID) string {
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = formatSet(b)
	}
	return strings.Join(parts, " ")
}
