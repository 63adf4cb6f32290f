package assemble

import (
	"strings"

	"github.com/rncernic/asm24/internal/diag"
	"github.com/rncernic/asm24/internal/isa"
	"github.com/rncernic/asm24/internal/lex"
	"github.com/rncernic/asm24/internal/symtab"
	"github.com/rncernic/asm24/internal/word"
)

// FirstPass consumes the macro-expanded text, populates the symbol
// table and the data image, and sizes the code image. It reports
// recoverable errors to the diagnostics sink and continues to the next
// line rather than aborting.
func (s *State) FirstPass(expanded string) {
	lines := strings.Split(expanded, "\n")

	for i, raw := range lines {
		s.Diag.SetCurrentLine(i + 1)
		if err := lex.CheckLineLength(raw, s.maxLineLength()); err != nil {
			s.report(err)
			continue
		}
		s.firstPassLine(raw)
	}

	s.Symbols.AdjustDataAddresses(s.CodeAddress(s.IC))

	if err := s.Symbols.Validate(); err != nil {
		s.report(err)
	}
}

func (s *State) firstPassLine(raw string) {
	line := lex.NormalizeString(lex.RemoveComment(raw), false)
	if line == "" {
		return
	}

	pos := 0
	label, hasLabel := lex.ExtractLabel(line, &pos)
	directive, hasDirective := lex.ExtractDirective(line, &pos)

	switch {
	case hasDirective && directive == ".data":
		s.firstPassData(line, pos, label, hasLabel)
	case hasDirective && directive == ".string":
		s.firstPassString(line, pos, label, hasLabel)
	case hasDirective && directive == ".extern":
		s.firstPassExtern(line, pos)
	case hasDirective && directive == ".entry":
		// no action in the first pass
	case hasDirective:
		s.Diag.Report(diag.Syntax, "unknown directive %q", directive)
	default:
		s.firstPassInstruction(line, pos, label, hasLabel)
	}
}

func (s *State) firstPassData(line string, pos int, label string, hasLabel bool) {
	args := lex.ExtractArguments(line, &pos)
	values, err := lex.ParseDataValues(args)
	if err != nil {
		s.report(err)
		return
	}

	if hasLabel {
		if err := s.Symbols.Add(label, s.DC, symtab.Data); err != nil {
			s.report(err)
		}
	}

	for _, v := range values {
		s.DataImage = append(s.DataImage, word.New(int32(v), word.Absolute))
		s.DC++
	}
}

func (s *State) firstPassString(line string, pos int, label string, hasLabel bool) {
	args := lex.ExtractArguments(line, &pos)
	values, err := lex.ParseStringValue(args)
	if err != nil {
		s.report(err)
		return
	}

	if hasLabel {
		if err := s.Symbols.Add(label, s.DC, symtab.Data); err != nil {
			s.report(err)
		}
	}

	for _, v := range values {
		s.DataImage = append(s.DataImage, word.New(int32(v), word.Absolute))
		s.DC++
	}
}

func (s *State) firstPassExtern(line string, pos int) {
	args := strings.TrimSpace(lex.ExtractArguments(line, &pos))
	if args == "" || !lex.IsValidLabel(args) {
		s.Diag.Report(diag.Syntax, "invalid .extern argument %q", args)
		return
	}
	if err := s.Symbols.Add(args, 0, symtab.Extern); err != nil {
		s.report(err)
	}
}

func (s *State) firstPassInstruction(line string, pos int, label string, hasLabel bool) {
	if hasLabel {
		if err := s.Symbols.Add(label, s.CodeAddress(s.IC), symtab.Code); err != nil {
			s.report(err)
		}
	}

	mnemonic, operands := parseInstructionLine(line, pos)
	info, err := isa.Lookup(mnemonic)
	if err != nil {
		s.report(err)
		s.IC++ // keep addressing from drifting too far after an unknown mnemonic
		return
	}
	if len(operands) != len(info.Operands) {
		s.Diag.Report(diag.Instruction, "%q expects %d operand(s), got %d", mnemonic, len(info.Operands), len(operands))
	}

	s.IC += isa.WordCount(info)
}

// parseInstructionLine splits an unlabeled, undirected line into its
// mnemonic and comma-separated operand tokens.
func parseInstructionLine(line string, pos int) (mnemonic string, operands []string) {
	rest := lex.ExtractArguments(line, &pos)
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", nil
	}
	mnemonic = strings.ToLower(fields[0])

	rest = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), fields[0]))
	return mnemonic, splitOperands(rest)
}

func (s *State) report(err error) {
	if de, ok := err.(*diag.Err); ok {
		s.Diag.Report(de.Kind, "%s", de.Message)
		return
	}
	s.Diag.Report(diag.General, "%s", err.Error())
}
