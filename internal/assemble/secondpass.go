package assemble

import (
	"strings"

	"github.com/rncernic/asm24/internal/diag"
	"github.com/rncernic/asm24/internal/isa"
	"github.com/rncernic/asm24/internal/lex"
	"github.com/rncernic/asm24/internal/symtab"
	"github.com/rncernic/asm24/internal/word"
)

// SecondPass re-reads the macro-expanded text with the now-populated
// symbol table, finalizes the code image, and records external-symbol
// references at each use-site.
func (s *State) SecondPass(expanded string) {
	s.CodeImage = make([]word.Word, s.IC)

	lines := strings.Split(expanded, "\n")
	ic := 0

	for i, raw := range lines {
		s.Diag.SetCurrentLine(i + 1)
		ic = s.secondPassLine(raw, ic)
	}
}

// secondPassLine processes one line and returns the updated instruction
// counter.
func (s *State) secondPassLine(raw string, ic int) int {
	line := lex.NormalizeString(lex.RemoveComment(raw), false)
	if line == "" {
		return ic
	}

	pos := 0
	lex.ExtractLabel(line, &pos) // advance past any label; second pass does not re-add symbols
	directive, hasDirective := lex.ExtractDirective(line, &pos)

	switch {
	case hasDirective && directive == ".entry":
		args := strings.TrimSpace(lex.ExtractArguments(line, &pos))
		if err := s.Symbols.MarkEntry(args); err != nil {
			s.report(err)
		}
		return ic
	case hasDirective:
		return ic
	default:
		return s.secondPassInstruction(line, pos, ic)
	}
}

func (s *State) secondPassInstruction(line string, pos int, ic int) int {
	mnemonic, operands := parseInstructionLine(line, pos)
	if mnemonic == "" {
		return ic
	}

	info, err := isa.Lookup(mnemonic)
	if err != nil {
		// already reported in the first pass; keep addressing consistent
		return ic + 1
	}
	if len(operands) != len(info.Operands) {
		// already reported in the first pass
		return ic + isa.WordCount(info)
	}

	words, err := s.encodeOperands(info, operands, s.CodeAddress(ic))
	if err != nil {
		s.report(err)
		return ic + isa.WordCount(info)
	}

	for i, w := range words {
		s.CodeImage[ic+i] = w
	}
	return ic + len(words)
}

// encodeOperands builds the sequence of MachineWords for one
// instruction: the opcode word, an optional shared register word, and
// one word per non-register operand. addr is the instruction's
// absolute code address.
func (s *State) encodeOperands(info isa.Info, operands []string, addr int) ([]word.Word, error) {
	regWord := 0
	haveReg := false
	registerSlot := 0

	type extra struct {
		w        word.Word
		external string // symbol name if this word is an extern reference, else ""
	}
	var extras []extra

	for i, kind := range info.Operands {
		opText := operands[i]

		switch kind {
		case isa.Register:
			n, err := parseRegister(opText)
			if err != nil {
				return nil, err
			}
			haveReg = true
			regWord |= n << uint(4*(1-registerSlot))
			registerSlot++

		case isa.Immediate:
			n, err := parseImmediate(opText)
			if err != nil {
				return nil, err
			}
			extras = append(extras, extra{w: word.New(int32(n), word.Absolute)})

		case isa.Direct:
			w, externName, err := s.resolveSymbolOperand(opText)
			if err != nil {
				return nil, err
			}
			extras = append(extras, extra{w: w, external: externName})

		case isa.Relative:
			name, err := relativeSymbol(opText)
			if err != nil {
				return nil, err
			}
			w, externName, err := s.resolveSymbolOperand(name)
			if err != nil {
				return nil, err
			}
			extras = append(extras, extra{w: w, external: externName})
		}
	}

	words := []word.Word{word.New(int32(info.Opcode), word.Absolute)}
	if haveReg {
		words = append(words, word.New(int32(regWord), word.Absolute))
	}
	for _, e := range extras {
		if e.external != "" {
			s.ExternRefs = append(s.ExternRefs, ExternRef{Name: e.external, Address: addr + len(words)})
		}
		words = append(words, e.w)
	}
	return words, nil
}

// resolveSymbolOperand looks up name in the symbol table and returns
// the encoded word for it, plus the symbol's name if it is an extern
// reference (empty string otherwise).
func (s *State) resolveSymbolOperand(name string) (word.Word, string, error) {
	sym := s.Symbols.Find(name)
	if sym == nil {
		return word.Word{}, "", diag.New(diag.Symbol, "undefined symbol %q", name)
	}

	if sym.Kind == symtab.Extern {
		return word.New(0, word.External), name, nil
	}

	return word.New(int32(sym.Value), word.Relocatable), "", nil
}
