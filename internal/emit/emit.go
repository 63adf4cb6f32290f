// Package emit writes the assembler's output artifacts: the
// macro-expanded listing, the object file, the entry-symbol listing,
// and the external-reference listing.
package emit

import (
	"fmt"
	"io"

	"github.com/rncernic/asm24/internal/assemble"
	"github.com/rncernic/asm24/internal/symtab"
)

// WriteExpanded writes the macro-expanded source listing verbatim.
func WriteExpanded(w io.Writer, expandedText string) error {
	_, err := io.WriteString(w, expandedText)
	return err
}

// WriteObject writes the `.ob` object listing: a header line with the
// instruction and data word counts, then one `<addr> <hex>` line per
// code word, then one per data word, addresses continuing after the
// code block.
func WriteObject(w io.Writer, s *assemble.State) error {
	if _, err := fmt.Fprintf(w, "%d %d\n", s.IC, s.DC); err != nil {
		return err
	}

	for i, word := range s.CodeImage {
		addr := s.CodeAddress(i)
		if _, err := fmt.Fprintf(w, "%04d %s\n", addr, word.Hex()); err != nil {
			return err
		}
	}

	for i, word := range s.DataImage {
		addr := s.DataAddress(i)
		if _, err := fmt.Fprintf(w, "%04d %s\n", addr, word.Hex()); err != nil {
			return err
		}
	}

	return nil
}

// WriteEntries writes the `.ent` entry-symbol listing: one
// `<name> <addr>` line per symbol with its entry-flag set, in table
// insertion order.
func WriteEntries(w io.Writer, symbols *symtab.Table) error {
	for i := 0; i < symbols.Size(); i++ {
		if !symbols.IsEntry(i) {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s %04d\n", symbols.Name(i), symbols.Value(i)); err != nil {
			return err
		}
	}
	return nil
}

// WriteExternals writes the `.ext` external-reference listing: one
// `<name> <addr>` line per recorded reference, in reference order.
func WriteExternals(w io.Writer, refs []assemble.ExternRef) error {
	for _, ref := range refs {
		if _, err := fmt.Fprintf(w, "%s %04d\n", ref.Name, ref.Address); err != nil {
			return err
		}
	}
	return nil
}
