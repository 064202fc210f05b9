// Package goscca parses Windows Prefetch (SCCA) files. It is a thin
// public wrapper around goscca/parser, the way Velocidex-go-ntfs wraps
// its own parser subpackage: the heavy decoding lives underneath,
// this file is the library surface spec.md §6 describes.
package goscca

import (
	"github.com/dfir-go/goscca/parser"
)

// ByteReader is the abstract random-access byte source Parse reads
// from. *os.File, a PagedReader, or anything else satisfying
// io.ReaderAt plus Size/Close will do.
type ByteReader = parser.ByteReader

// Option configures a Parser's behavior.
type Option func(*parser.Options)

// WithStrictCounts makes InconsistentCounts fatal instead of a
// recorded warning.
func WithStrictCounts() Option {
	return func(o *parser.Options) {
		o.StrictCounts = true
	}
}

// Parser runs one decode and can be asked to abort it cooperatively
// from another goroutine via SignalAbort.
type Parser struct {
	ctx *parser.ParserContext
}

// NewParser builds a Parser with the given options applied.
func NewParser(opts ...Option) *Parser {
	options := parser.GetDefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &Parser{ctx: parser.NewParserContext(options)}
}

// Parse decodes r into a FileModel. On any fatal error no FileModel is
// returned; every partially constructed entity is discarded along
// with it.
func (p *Parser) Parse(r ByteReader) (*FileModel, error) {
	m, err := parser.Parse(r, p.ctx)
	if err != nil {
		return nil, err
	}
	return newFileModel(m), nil
}

// SignalAbort requests cooperative cancellation of p's in-flight
// Parse call. It is safe to call from another goroutine; the next
// decoder entry point p's Parse reaches will observe it and return an
// Aborted error.
func (p *Parser) SignalAbort() {
	p.ctx.SignalAbort()
}

// SignalAbort requests cooperative cancellation of p's in-flight
// Parse call (spec §6's library surface: signal_abort(parser)).
func SignalAbort(p *Parser) {
	p.SignalAbort()
}

// Parse is the top-level convenience entry point: build a Parser with
// opts applied and run it once against r.
func Parse(r ByteReader, opts ...Option) (*FileModel, error) {
	return NewParser(opts...).Parse(r)
}
