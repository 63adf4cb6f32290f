package assemble

import (
	"strconv"
	"strings"

	"github.com/rncernic/asm24/internal/diag"
	"github.com/rncernic/asm24/internal/lex"
)

// splitOperands splits an instruction's argument text on commas,
// trimming whitespace from each field. An empty argument text yields
// no operands.
func splitOperands(args string) []string {
	args = strings.TrimSpace(args)
	if args == "" {
		return nil
	}
	parts := strings.Split(args, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// parseRegister parses a `@rN` register operand, N in 0..7.
func parseRegister(raw string) (int, error) {
	if !strings.HasPrefix(raw, "@r") {
		return 0, diag.New(diag.Instruction, "invalid register operand %q", raw)
	}
	n, err := strconv.Atoi(raw[2:])
	if err != nil || n < 0 || n > 7 {
		return 0, diag.New(diag.Instruction, "invalid register operand %q", raw)
	}
	return n, nil
}

// parseImmediate parses a `#N` immediate operand, N in
// [lex.MinContent, lex.MaxContent].
func parseImmediate(raw string) (int, error) {
	if !strings.HasPrefix(raw, "#") {
		return 0, diag.New(diag.Instruction, "invalid immediate operand %q", raw)
	}
	n, err := strconv.Atoi(raw[1:])
	if err != nil {
		return 0, diag.New(diag.Syntax, "invalid immediate operand %q", raw)
	}
	if n < lex.MinContent || n > lex.MaxContent {
		return 0, diag.New(diag.Range, "immediate operand %d out of range", n)
	}
	return n, nil
}

// relativeSymbol strips the `&` prefix from a relative operand.
func relativeSymbol(raw string) (string, error) {
	if !strings.HasPrefix(raw, "&") {
		return "", diag.New(diag.Instruction, "invalid relative operand %q", raw)
	}
	return raw[1:], nil
}
