// Package macro implements the macro table and the macro preprocessor:
// parameterless, non-nested macro definitions expanded inline in
// source order.
package macro

import (
	"strings"

	"github.com/rncernic/asm24/internal/diag"
	"github.com/rncernic/asm24/internal/lex"
)

// DefaultMaxMacros is the table's capacity when MaxMacros is left
// unset.
const DefaultMaxMacros = 100

// DefaultMaxMacroLines is the per-macro body line cap used when a
// Preprocessor's MaxMacroLines is left unset.
const DefaultMaxMacroLines = 100

const (
	keywordBegin = "mcro"
	keywordEnd   = "endmcro"
)

// Macro is a named sequence of body lines, each stored with its
// whitespace normalized (trimmed, interior runs collapsed to one space).
type Macro struct {
	Name string
	Body []string
}

// Table maps macro names to their bodies. Names are unique.
type Table struct {
	// MaxMacros bounds the table's size; zero means DefaultMaxMacros.
	MaxMacros int

	byName map[string]*Macro
}

// NewTable returns an empty macro table with the default capacity.
func NewTable() *Table {
	return &Table{MaxMacros: DefaultMaxMacros, byName: make(map[string]*Macro)}
}

func (t *Table) maxMacros() int {
	if t.MaxMacros > 0 {
		return t.MaxMacros
	}
	return DefaultMaxMacros
}

// Define registers a new macro. Fails with diag.Macro if the table is
// full, the name is invalid, or the name is already defined.
func (t *Table) Define(name string) (*Macro, error) {
	if max := t.maxMacros(); len(t.byName) >= max {
		return nil, diag.New(diag.Macro, "macro table full (max %d)", max)
	}
	if !lex.IsValidLabel(name) {
		return nil, diag.New(diag.Macro, "invalid macro name %q", name)
	}
	if _, exists := t.byName[name]; exists {
		return nil, diag.New(diag.Macro, "duplicate macro %q", name)
	}

	m := &Macro{Name: name}
	t.byName[name] = m
	return m, nil
}

// Lookup returns the macro with the given name, if any.
func (t *Table) Lookup(name string) (*Macro, bool) {
	m, ok := t.byName[name]
	return m, ok
}

// Preprocessor runs the macro expansion state machine
// over a source text, materializing a macro table and emitting the
// expanded text.
type Preprocessor struct {
	Macros *Table

	// MaxMacroLines bounds each macro body; zero means
	// DefaultMaxMacroLines.
	MaxMacroLines int

	defining bool
	current  *Macro
	out      strings.Builder
}

// NewPreprocessor returns a preprocessor with a fresh macro table and
// the default macro-body cap.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{
		Macros:        NewTable(),
		MaxMacroLines: DefaultMaxMacroLines,
	}
}

// Run consumes source line by line, returning the expanded text.
// Aborts on the first failure ("the macro preprocessor
// aborts the file on its first failure").
func (p *Preprocessor) Run(source string) (string, error) {
	lines := strings.Split(source, "\n")

	for _, line := range lines {
		if err := p.processLine(line); err != nil {
			return "", err
		}
	}

	if p.defining {
		return "", diag.New(diag.Syntax, "unterminated macro definition %q", p.current.Name)
	}

	return p.out.String(), nil
}

func (p *Preprocessor) maxMacroLines() int {
	if p.MaxMacroLines > 0 {
		return p.MaxMacroLines
	}
	return DefaultMaxMacroLines
}

func (p *Preprocessor) processLine(line string) error {
	normalized := lex.NormalizeString(line, true)

	leading, _, _ := strings.Cut(normalized, " ")

	switch {
	case leading == keywordBegin:
		return p.beginDefinition(normalized)
	case leading == keywordEnd:
		return p.endDefinition()
	case p.defining:
		p.current.Body = append(p.current.Body, normalized)
		if max := p.maxMacroLines(); len(p.current.Body) > max {
			return diag.New(diag.Macro, "macro %q exceeds %d body lines", p.current.Name, max)
		}
		return nil
	default:
		return p.emitOrCopy(normalized, line)
	}
}

func (p *Preprocessor) beginDefinition(normalized string) error {
	if p.defining {
		return diag.New(diag.Syntax, "nested macro definition")
	}

	fields := strings.Fields(normalized)
	if len(fields) < 2 {
		return diag.New(diag.Macro, "missing macro name after %q", keywordBegin)
	}
	name := fields[1]

	m, err := p.Macros.Define(name)
	if err != nil {
		return err
	}

	p.defining = true
	p.current = m
	return nil
}

func (p *Preprocessor) endDefinition() error {
	if !p.defining {
		return diag.New(diag.Syntax, "%q without matching %q", keywordEnd, keywordBegin)
	}
	p.defining = false
	p.current = nil
	return nil
}

func (p *Preprocessor) emitOrCopy(normalized, original string) error {
	if m, ok := p.Macros.Lookup(normalized); ok {
		for _, bodyLine := range m.Body {
			p.out.WriteString(bodyLine)
			p.out.WriteByte('\n')
		}
		return nil
	}

	p.out.WriteString(original)
	p.out.WriteByte('\n')
	return nil
}
