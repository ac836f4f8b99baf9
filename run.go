package automata

// Symbols splits s into one-rune symbols, the usual alphabet of textbook exercises.
func Symbols(s string) []Symbol {
	word := make([]Symbol, 0, len(s))
	for _, r := range s {
		word = append(word, Symbol(r))
	}
	return word
}

// Accepts reports whether a accepts word, by walking every path of a at once and taking
// epsilon closures along the way. It works for NFAs and DFAs alike. A symbol outside the
// alphabet of a fails with UnknownSymbolError.
func Accepts(a Automaton, word []Symbol) (bool, error) {
	c, err := compile(a, true)
	if err != nil {
		return false, err
	}

	current := NewStateSet(c.t.numStates())
	current.Add(c.t.start)
	c.t.closure(current)

	for _, sym := range word {
		label, ok := c.symbols[sym]
		if !ok {
			return false, &UnknownSymbolError{Symbol: sym}
		}
		current = c.t.move(current.GetArray(), label)
		if current.Empty() {
			return false, nil
		}
		c.t.closure(current)
	}
	return current.bits.IntersectionCardinality(c.t.isAccept) > 0, nil
}

// Runner matches words against a compiled DFA.
type Runner struct {
	t       *table
	symbols map[Symbol]int
}

// NewRunner compiles dfa for repeated matching. dfa must pass ValidateDFA.
func NewRunner(dfa Automaton) (*Runner, error) {
	c, err := compile(dfa, false)
	if err != nil {
		return nil, err
	}
	return &Runner{t: c.t, symbols: c.symbols}, nil
}

// Run returns true if word is accepted. A symbol outside the alphabet rejects the word.
func (r *Runner) Run(word []Symbol) bool {
	p := r.t.start
	for _, sym := range word {
		label, ok := r.symbols[sym]
		if !ok {
			return false
		}
		p = r.t.step(p, label)
		if p == -1 {
			return false
		}
	}
	return r.t.accepts(p)
}
