package automata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestStepKindText(t *testing.T) {
	for k := ClosureComputed; k <= PartitionStable; k++ {
		text, err := k.MarshalText()
		require.NoError(t, err)

		var back StepKind
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, k, back)
	}

	assert.Equal(t, "StepKind(42)", StepKind(42).String())

	var k StepKind
	assert.Error(t, k.UnmarshalText([]byte("Teleported")))
}

func TestResultEncoding(t *testing.T) {
	res, err := Minimize(fiveStateDFA())
	require.NoError(t, err)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kind":"PartitionSplit"`)
	assert.Contains(t, string(data), `"id":"{q0,q1}","start":true`)

	var fromJSON Result
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	assert.Equal(t, *res, fromJSON)

	out, err := yaml.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(out), "kind: PartitionStable")

	var fromYAML Result
	require.NoError(t, yaml.Unmarshal(out, &fromYAML))
	assert.Equal(t, res.Automaton, fromYAML.Automaton)
}

func TestTracerDisabled(t *testing.T) {
	var tr *tracer
	tr.add(StateCreated, Payload{}, "ignored %d", 1)
	assert.Nil(t, tr.result())

	tr = newTracer(true)
	tr.add(StateCreated, Payload{State: "x"}, "new state %s", "x")
	assert.Equal(t, []Step{{Kind: StateCreated, Description: "new state x", Payload: Payload{State: "x"}}}, tr.result())
}

func TestFormatBlocks(t *testing.T) {
	assert.Equal(t, "{}", formatSet(nil))
	assert.Equal(t, "{a,b} {c}", formatBlocks([][]StateID{{"a", "b"}, {"c"}}))
}
