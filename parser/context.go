package parser

import "sync/atomic"

// ParserContext threads the cooperative abort flag and decode options
// through a single Parse call. Every decoder checks it at entry and
// between sections; there is no timeout primitive here, that is the
// caller's concern through the ByteReader (see spec §5).
type ParserContext struct {
	aborted atomic.Bool
	options Options
}

// NewParserContext builds a context with the given options.
func NewParserContext(options Options) *ParserContext {
	return &ParserContext{options: options}
}

// SignalAbort sets the cooperative abort flag. Safe to call from any
// goroutine, before or during a Parse call.
func (c *ParserContext) SignalAbort() {
	c.aborted.Store(true)
}

// Aborted reports whether SignalAbort has been called.
func (c *ParserContext) Aborted() bool {
	return c.aborted.Load()
}

// CheckAbort returns an Aborted ParseError if the flag has been set,
// nil otherwise. Every decoder entry point calls this first.
func (c *ParserContext) CheckAbort(op string) error {
	if c.Aborted() {
		return newError(op, Aborted)
	}
	return nil
}

// Options controls decode-time behavior that does not change the wire
// format being decoded.
type Options struct {
	// StrictCounts turns InconsistentCounts from a recorded warning
	// into a fatal error. Off by default, matching spec §7's policy
	// that count mismatches are recoverable.
	StrictCounts bool
}

// GetDefaultOptions returns the zero-value Options, i.e. lenient count
// checking.
func GetDefaultOptions() Options {
	return Options{}
}
