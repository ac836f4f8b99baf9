package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geange/automata"
)

func endsWithAB() automata.Automaton {
	return automata.Automaton{
		States: []automata.State{
			{ID: "q0", Start: true},
			{ID: "q1"},
			{ID: "q2", Accept: true},
		},
		Alphabet: []automata.Symbol{"a", "b"},
		Transitions: []automata.Transition{
			{From: "q0", Symbol: "a", To: "q0"},
			{From: "q0", Symbol: "a", To: "q1"},
			{From: "q0", Symbol: "b", To: "q0"},
			{From: "q1", Symbol: "b", To: "q2"},
		},
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "a.yaml", want: FormatYAML},
		{path: "dir/a.YML", want: FormatYAML},
		{path: "a.toml", want: FormatTOML},
		{path: "a.json", want: FormatJSON},
		{path: "a.txt", wantErr: true},
		{path: "a", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatOf(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadFormats(t *testing.T) {
	for _, name := range []string{"ends_with_ab.yaml", "ends_with_ab.toml", "ends_with_ab.json"} {
		t.Run(name, func(t *testing.T) {
			a, err := Load(filepath.Join("testdata", name), DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, endsWithAB(), a)
		})
	}
}

func TestLoadEpsilonAliases(t *testing.T) {
	a, err := Load(filepath.Join("testdata", "epsilon.yml"), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []automata.Symbol{"0", "1"}, a.Alphabet)
	assert.Equal(t, []automata.State{{ID: "p", Start: true}, {ID: "q"}, {ID: "r", Accept: true}}, a.States)
	assert.Equal(t, []automata.Transition{
		{From: "p", Symbol: automata.Epsilon, To: "q"},
		{From: "q", Symbol: automata.Epsilon, To: "r"},
		{From: "q", Symbol: "1", To: "p"},
		{From: "r", Symbol: automata.Epsilon, To: "p"},
	}, a.Transitions)

	// Without aliases only ε itself means epsilon.
	_, err = Load(filepath.Join("testdata", "epsilon.yml"), Options{})
	var unknown *automata.UnknownSymbolError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, automata.Symbol("eps"), unknown.Symbol)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "syntax", data: "states: [", wantErr: "parse yaml"},
		{name: "unknown key", data: "states: [q0]\nstart: q0\nalphabets: [a]\n", wantErr: "alphabets"},
		{name: "start shorthand names unknown state", data: "states: [q0]\nstart: q9\n", wantErr: `unknown state "q9"`},
		{name: "no start state", data: "states: [q0]\n", wantErr: "no start state"},
		{name: "epsilon alias in alphabet", data: "states: [q0]\nstart: q0\nalphabet: [a, eps]\n", wantErr: "not allowed in alphabet"},
		{name: "bad transition", data: "states: [q0]\nstart: q0\ntransitions: [{from: q0, symbol: a, to: q0}]\n", wantErr: `unknown symbol "a"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), FormatYAML, DefaultOptions())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	_, err := Decode([]byte("{}"), Format("xml"), DefaultOptions())
	assert.ErrorContains(t, err, `unsupported format "xml"`)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), DefaultOptions())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEncodeRoundTrip(t *testing.T) {
	nfa := endsWithAB()
	nfa.Transitions = append(nfa.Transitions, automata.Transition{From: "q2", Symbol: automata.Epsilon, To: "q0"})

	for _, format := range []Format{FormatYAML, FormatTOML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Encode(nfa, format)
			require.NoError(t, err)

			back, err := Decode(data, format, Options{})
			require.NoError(t, err)
			assert.Equal(t, nfa, back)
		})
	}
}

func TestEncodeResultFeedsDecode(t *testing.T) {
	res, err := automata.ToDFA(endsWithAB())
	require.NoError(t, err)

	for _, format := range []Format{FormatYAML, FormatTOML, FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			data, err := EncodeResult(res, format)
			require.NoError(t, err)
			assert.Contains(t, string(data), "TransitionAdded")

			back, err := Decode(data, format, DefaultOptions())
			require.NoError(t, err)
			assert.Equal(t, res.Automaton, back)
		})
	}
}

func TestEncodeYAMLShape(t *testing.T) {
	data, err := Encode(endsWithAB(), FormatYAML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "- id: q0\n    start: true\n")
	assert.Contains(t, string(data), "alphabet:\n  - a\n  - b\n")
}
