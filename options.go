package automata

// DefaultMaxStates is the default ceiling on the number of DFA states subset construction may
// create before failing with StateSpaceTooLargeError.
const DefaultMaxStates = 10000

type options struct {
	maxStates int
	trace     bool
}

// Option configures ToDFA, Minimize and Equivalent.
type Option func(*options)

func newOptions(opts ...Option) *options {
	o := &options{
		maxStates: DefaultMaxStates,
		trace:     true,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithMaxStates sets the subset construction ceiling. Values below 1 restore the default.
func WithMaxStates(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = DefaultMaxStates
		}
		o.maxStates = n
	}
}

// WithoutTrace skips recording steps. Result.Steps is then nil.
func WithoutTrace() Option {
	return func(o *options) {
		o.trace = false
	}
}
