// Package loader reads and writes automaton descriptions in YAML, TOML and JSON.
//
// All three formats share one document shape:
//
//	alphabet: [a, b]
//	start: q0
//	accept: [q2]
//	states: [q0, q1, q2]
//	transitions:
//	  - {from: q0, symbol: a, to: q0}
//	  - {from: q0, symbol: a, to: q1}
//	  - {from: q0, symbol: eps, to: q2}
//
// States may be plain ids or tables with id, start and accept keys. The top-level start and
// accept keys are shorthands that flag the named states. A document holding a conversion
// result (an "automaton" key next to "steps") is read as its automaton, so the output of one
// command can feed the next.
package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/geange/automata"
	"github.com/geange/automata/internal/config"
)

// Format is a file format understood by the loader.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported file extension %q (want .yaml, .yml, .toml or .json)", filepath.Ext(path))
}

// Options tunes decoding.
type Options struct {
	// EpsilonAliases are symbols read as automata.Epsilon. automata.Epsilon itself is
	// always recognized.
	EpsilonAliases []string
}

// DefaultOptions uses the default epsilon aliases.
func DefaultOptions() Options {
	return Options{EpsilonAliases: slices.Clone(config.DefaultEpsilonAliases)}
}

type stateDoc struct {
	ID     string `mapstructure:"id"`
	Start  bool   `mapstructure:"start"`
	Accept bool   `mapstructure:"accept"`
}

type transitionDoc struct {
	From   string `mapstructure:"from"`
	Symbol string `mapstructure:"symbol"`
	To     string `mapstructure:"to"`
}

type document struct {
	Alphabet    []string        `mapstructure:"alphabet"`
	Start       string          `mapstructure:"start"`
	Accept      []string        `mapstructure:"accept"`
	States      []stateDoc      `mapstructure:"states"`
	Transitions []transitionDoc `mapstructure:"transitions"`
}

// Load reads the automaton stored at path. The format follows the file extension.
func Load(path string, opts Options) (automata.Automaton, error) {
	format, err := FormatOf(path)
	if err != nil {
		return automata.Automaton{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return automata.Automaton{}, fmt.Errorf("read automaton: %w", err)
	}
	a, err := Decode(data, format, opts)
	if err != nil {
		return automata.Automaton{}, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// Decode parses data in the given format. The result is checked with Validate, so it is a
// usable NFA; callers that need a DFA still call ValidateDFA.
func Decode(data []byte, format Format, opts Options) (automata.Automaton, error) {
	raw, err := decodeRaw(data, format)
	if err != nil {
		return automata.Automaton{}, err
	}
	if inner, ok := raw["automaton"].(map[string]any); ok {
		raw = inner
	}

	var doc document
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       stateIDHook,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &doc,
	})
	if err != nil {
		return automata.Automaton{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return automata.Automaton{}, fmt.Errorf("decode automaton: %w", err)
	}

	a, err := doc.automaton(opts)
	if err != nil {
		return automata.Automaton{}, err
	}
	if err := a.Validate(); err != nil {
		return automata.Automaton{}, err
	}
	return a, nil
}

func decodeRaw(data []byte, format Format) (map[string]any, error) {
	raw := map[string]any{}
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatTOML:
		err = toml.Unmarshal(data, &raw)
	case FormatJSON:
		err = json.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", format, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

// stateIDHook lets a state be written as its bare id.
func stateIDHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(stateDoc{}) || from.Kind() != reflect.String {
		return data, nil
	}
	return map[string]any{"id": data}, nil
}

func (d *document) automaton(opts Options) (automata.Automaton, error) {
	epsilon := func(sym string) bool {
		return sym == string(automata.Epsilon) || slices.Contains(opts.EpsilonAliases, sym)
	}

	a := automata.Automaton{
		States:      make([]automata.State, len(d.States)),
		Alphabet:    make([]automata.Symbol, 0, len(d.Alphabet)),
		Transitions: make([]automata.Transition, len(d.Transitions)),
	}

	index := make(map[string]int, len(d.States))
	for i, s := range d.States {
		a.States[i] = automata.State{ID: automata.StateID(s.ID), Start: s.Start, Accept: s.Accept}
		if _, ok := index[s.ID]; !ok {
			index[s.ID] = i
		}
	}

	flag := func(id string, set func(*automata.State)) error {
		i, ok := index[id]
		if !ok {
			return &automata.UnknownStateError{State: automata.StateID(id)}
		}
		set(&a.States[i])
		return nil
	}
	if d.Start != "" {
		if err := flag(d.Start, func(s *automata.State) { s.Start = true }); err != nil {
			return automata.Automaton{}, err
		}
	}
	for _, id := range d.Accept {
		if err := flag(id, func(s *automata.State) { s.Accept = true }); err != nil {
			return automata.Automaton{}, err
		}
	}

	for _, sym := range d.Alphabet {
		if epsilon(sym) {
			return automata.Automaton{}, &automata.UnknownSymbolError{Symbol: automata.Epsilon}
		}
		a.Alphabet = append(a.Alphabet, automata.Symbol(sym))
	}

	for i, t := range d.Transitions {
		sym := automata.Symbol(t.Symbol)
		if epsilon(t.Symbol) {
			sym = automata.Epsilon
		}
		a.Transitions[i] = automata.Transition{
			From:   automata.StateID(t.From),
			Symbol: sym,
			To:     automata.StateID(t.To),
		}
	}
	return a, nil
}

// Encode writes a in the given format, in the document shape Decode reads.
func Encode(a automata.Automaton, format Format) ([]byte, error) {
	return encode(a, format)
}

// EncodeResult writes a conversion result: the automaton under an "automaton" key and the
// steps, if any, under "steps".
func EncodeResult(res *automata.Result, format Format) ([]byte, error) {
	return encode(res, format)
}

func encode(v any, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(v); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}
