// Package assemble implements the two passes that turn macro-expanded
// source text into a populated symbol table, a code image, a data
// image, and a list of external-symbol references.
package assemble

import (
	"github.com/rncernic/asm24/internal/diag"
	"github.com/rncernic/asm24/internal/symtab"
	"github.com/rncernic/asm24/internal/word"
)

// DefaultBaseAddress is the fixed load address for code.
const DefaultBaseAddress = 100

// DefaultMaxLineLength is the physical line-length cap used when a
// State's MaxLineLength is left unset.
const DefaultMaxLineLength = 80

// ExternRef records one use-site reference to an external symbol: its
// name and the absolute address of the code word that references it.
type ExternRef struct {
	Name    string
	Address int
}

// State is the per-file, shared compilation state threaded through
// both passes.
type State struct {
	Symbols     *symtab.Table
	Diag        *diag.Sink
	BaseAddress int

	// MaxLineLength bounds each physical source line; zero means
	// DefaultMaxLineLength.
	MaxLineLength int

	CodeImage []word.Word
	DataImage []word.Word

	IC int // instruction word counter, grows during first pass
	DC int // data word counter, grows during first pass

	ExternRefs []ExternRef
}

// New returns a fresh compilation state bound to the given symbol
// table and diagnostics sink, with the default base address and
// line-length cap.
func New(symbols *symtab.Table, sink *diag.Sink) *State {
	return &State{
		Symbols:       symbols,
		Diag:          sink,
		BaseAddress:   DefaultBaseAddress,
		MaxLineLength: DefaultMaxLineLength,
	}
}

// maxLineLength returns the configured line-length cap, or
// DefaultMaxLineLength if unset.
func (s *State) maxLineLength() int {
	if s.MaxLineLength > 0 {
		return s.MaxLineLength
	}
	return DefaultMaxLineLength
}

// CodeAddress converts a code-image offset into an absolute address.
func (s *State) CodeAddress(offset int) int {
	return s.BaseAddress + offset
}

// DataAddress converts a data-image offset into an absolute address;
// data immediately follows code, so it is offset by the final
// instruction counter.
func (s *State) DataAddress(offset int) int {
	return s.BaseAddress + s.IC + offset
}
