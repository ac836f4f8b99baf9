package automata

import (
	"math/rand/v2"
	"strconv"
)

// endsWithAB is the NFA of (a|b)*ab.
func endsWithAB() Automaton {
	return Automaton{
		States: []State{
			{ID: "q0", Start: true},
			{ID: "q1"},
			{ID: "q2", Accept: true},
		},
		Alphabet: []Symbol{"a", "b"},
		Transitions: []Transition{
			{From: "q0", Symbol: "a", To: "q0"},
			{From: "q0", Symbol: "a", To: "q1"},
			{From: "q0", Symbol: "b", To: "q0"},
			{From: "q1", Symbol: "b", To: "q2"},
		},
	}
}

// fiveStateDFA is the DFA over {0,1} whose minimal form has three states.
func fiveStateDFA() Automaton {
	return Automaton{
		States: []State{
			{ID: "q0", Start: true},
			{ID: "q1"},
			{ID: "q2", Accept: true},
			{ID: "q3", Accept: true},
			{ID: "q4"},
		},
		Alphabet: []Symbol{"0", "1"},
		Transitions: []Transition{
			{From: "q0", Symbol: "0", To: "q1"},
			{From: "q0", Symbol: "1", To: "q2"},
			{From: "q1", Symbol: "0", To: "q0"},
			{From: "q1", Symbol: "1", To: "q3"},
			{From: "q2", Symbol: "0", To: "q4"},
			{From: "q2", Symbol: "1", To: "q0"},
			{From: "q3", Symbol: "0", To: "q4"},
			{From: "q3", Symbol: "1", To: "q0"},
			{From: "q4", Symbol: "0", To: "q4"},
			{From: "q4", Symbol: "1", To: "q4"},
		},
	}
}

// kthFromLast is the NFA of (a|b)*a(a|b)^k, whose DFA needs 2^(k+1) states.
func kthFromLast(k int) Automaton {
	a := Automaton{Alphabet: []Symbol{"a", "b"}}
	for i := 0; i <= k+1; i++ {
		a.States = append(a.States, State{ID: StateID("s" + strconv.Itoa(i)), Start: i == 0, Accept: i == k+1})
	}
	a.Transitions = append(a.Transitions,
		Transition{From: "s0", Symbol: "a", To: "s0"},
		Transition{From: "s0", Symbol: "b", To: "s0"},
		Transition{From: "s0", Symbol: "a", To: "s1"},
	)
	for i := 1; i <= k; i++ {
		from, to := StateID("s"+strconv.Itoa(i)), StateID("s"+strconv.Itoa(i+1))
		a.Transitions = append(a.Transitions,
			Transition{From: from, Symbol: "a", To: to},
			Transition{From: from, Symbol: "b", To: to},
		)
	}
	return a
}

// words lists every word over alphabet of length at most maxLen, shortest first.
func words(alphabet []Symbol, maxLen int) [][]Symbol {
	out := [][]Symbol{{}}
	frontier := [][]Symbol{{}}
	for n := 0; n < maxLen; n++ {
		var next [][]Symbol
		for _, w := range frontier {
			for _, sym := range alphabet {
				word := append(append([]Symbol{}, w...), sym)
				next = append(next, word)
			}
		}
		out = append(out, next...)
		frontier = next
	}
	return out
}

// walk is a reference NFA simulation working on the description directly: it follows every
// path, taking epsilon moves by repeated expansion until nothing new is added.
func walk(a Automaton, from StateID, word []Symbol) bool {
	current := map[StateID]bool{from: true}
	expand := func() {
		for changed := true; changed; {
			changed = false
			for _, t := range a.Transitions {
				if t.Symbol == Epsilon && current[t.From] && !current[t.To] {
					current[t.To] = true
					changed = true
				}
			}
		}
	}

	expand()
	for _, sym := range word {
		next := map[StateID]bool{}
		for _, t := range a.Transitions {
			if t.Symbol == sym && current[t.From] {
				next[t.To] = true
			}
		}
		current = next
		expand()
	}

	for _, s := range a.States {
		if s.Accept && current[s.ID] {
			return true
		}
	}
	return false
}

func startOf(a Automaton) StateID {
	start, err := a.StartState()
	if err != nil {
		panic(err)
	}
	return start
}

func randomStates(r *rand.Rand, n int) []State {
	states := make([]State, n)
	for i := range states {
		states[i] = State{
			ID:     StateID("n" + strconv.Itoa(i)),
			Start:  i == 0,
			Accept: r.IntN(3) == 0,
		}
	}
	return states
}

// randomNFA returns an NFA with n states over alphabet, with epsilon moves if epsilon is set.
func randomNFA(r *rand.Rand, n int, alphabet []Symbol, epsilon bool) Automaton {
	a := Automaton{States: randomStates(r, n), Alphabet: alphabet}
	labels := append([]Symbol{}, alphabet...)
	if epsilon {
		labels = append(labels, Epsilon)
	}
	for range n * 2 {
		a.Transitions = append(a.Transitions, Transition{
			From:   a.States[r.IntN(n)].ID,
			Symbol: labels[r.IntN(len(labels))],
			To:     a.States[r.IntN(n)].ID,
		})
	}
	return a
}

// randomDFA returns a partial DFA with n states over alphabet.
func randomDFA(r *rand.Rand, n int, alphabet []Symbol) Automaton {
	a := Automaton{States: randomStates(r, n), Alphabet: alphabet}
	for _, s := range a.States {
		for _, sym := range alphabet {
			if r.IntN(5) == 0 {
				continue
			}
			a.Transitions = append(a.Transitions, Transition{
				From:   s.ID,
				Symbol: sym,
				To:     a.States[r.IntN(n)].ID,
			})
		}
	}
	return a
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(2024, 10))
}
