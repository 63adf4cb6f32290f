// Package symtab implements the assembler's symbol table: a per-file,
// explicitly owned mapping from name to (address, kind, entry-flag).
package symtab

import (
	"github.com/rncernic/asm24/internal/diag"
	"github.com/rncernic/asm24/internal/lex"
)

// Kind classifies a symbol's origin.
type Kind int

const (
	Code Kind = iota
	Data
	Extern
	Entry
)

// DefaultMaxSymbols is the table's capacity when MaxSymbols is left
// unset.
const DefaultMaxSymbols = 1000

// Symbol is a named address binding.
type Symbol struct {
	Name    string
	Value   int
	Kind    Kind
	IsEntry bool
}

// Table is an ordered collection of symbols, unique by name, owning its
// own name storage. Iteration follows insertion order.
type Table struct {
	// MaxSymbols bounds the table's size; zero means DefaultMaxSymbols.
	MaxSymbols int

	byName map[string]*Symbol
	order  []*Symbol
}

// New returns an empty table with the default capacity.
func New() *Table {
	return &Table{MaxSymbols: DefaultMaxSymbols, byName: make(map[string]*Symbol)}
}

// Init empties the table, keeping its configured capacity.
func (t *Table) Init() {
	t.byName = make(map[string]*Symbol)
	t.order = nil
}

// maxSymbols returns the table's configured capacity, or
// DefaultMaxSymbols if unset.
func (t *Table) maxSymbols() int {
	if t.MaxSymbols > 0 {
		return t.MaxSymbols
	}
	return DefaultMaxSymbols
}

// Add stores a new symbol. Fails with diag.Symbol if the table is full,
// the name already exists, or the name is not a legal label (leading
// letter, alphanumeric/underscore body, length 1..lex.MaxLabelLen).
func (t *Table) Add(name string, value int, kind Kind) error {
	if max := t.maxSymbols(); len(t.order) >= max {
		return diag.New(diag.Symbol, "symbol table full (max %d)", max)
	}
	if !lex.IsValidLabel(name) {
		return diag.New(diag.Symbol, "invalid symbol name %q (max %d chars)", name, lex.MaxLabelLen)
	}
	if _, exists := t.byName[name]; exists {
		return diag.New(diag.Symbol, "duplicate symbol %q", name)
	}

	sym := &Symbol{Name: name, Value: value, Kind: kind, IsEntry: kind == Entry}
	t.byName[name] = sym
	t.order = append(t.order, sym)
	return nil
}

// Get returns the symbol's value and whether it was found.
func (t *Table) Get(name string) (value int, ok bool) {
	sym, exists := t.byName[name]
	if !exists {
		return 0, false
	}
	return sym.Value, true
}

// Find returns the symbol itself, or nil if not present.
func (t *Table) Find(name string) *Symbol {
	return t.byName[name]
}

// Update sets a symbol's value. Fails with diag.Symbol if not found.
func (t *Table) Update(name string, newValue int) error {
	sym, exists := t.byName[name]
	if !exists {
		return diag.New(diag.Symbol, "symbol %q not found", name)
	}
	sym.Value = newValue
	return nil
}

// MarkEntry sets a symbol's entry-flag. Fails with diag.Symbol if not
// found or if the symbol is extern.
func (t *Table) MarkEntry(name string) error {
	sym, exists := t.byName[name]
	if !exists {
		return diag.New(diag.Symbol, "cannot mark unknown symbol %q as entry", name)
	}
	if sym.Kind == Extern {
		return diag.New(diag.Symbol, "cannot mark extern symbol %q as entry", name)
	}
	sym.IsEntry = true
	return nil
}

// AdjustDataAddresses adds ic to the value of every data-kind symbol,
// converting data-relative offsets into absolute addresses.
func (t *Table) AdjustDataAddresses(ic int) {
	for _, sym := range t.order {
		if sym.Kind == Data {
			sym.Value += ic
		}
	}
}

// Validate fails with diag.Symbol if any extern symbol has its
// entry-flag set.
func (t *Table) Validate() error {
	for _, sym := range t.order {
		if sym.Kind == Extern && sym.IsEntry {
			return diag.New(diag.Symbol, "symbol %q is both extern and entry", sym.Name)
		}
	}
	return nil
}

// Size returns the number of symbols in the table.
func (t *Table) Size() int {
	return len(t.order)
}

// At returns the i'th symbol in insertion order.
func (t *Table) At(i int) *Symbol {
	return t.order[i]
}

// Name returns the name of the i'th symbol in insertion order.
func (t *Table) Name(i int) string {
	return t.order[i].Name
}

// Value returns the value of the i'th symbol in insertion order.
func (t *Table) Value(i int) int {
	return t.order[i].Value
}

// IsEntry returns the entry-flag of the i'th symbol in insertion order.
func (t *Table) IsEntry(i int) bool {
	return t.order[i].IsEntry
}

// Free releases all name storage and resets the table to empty.
func (t *Table) Free() {
	t.Init()
}
