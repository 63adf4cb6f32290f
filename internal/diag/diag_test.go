package diag_test

import (
	"strings"
	"testing"

	"github.com/rncernic/asm24/internal/diag"
	"github.com/stretchr/testify/assert"
)

func TestReport_IncrementsErrorCountAndFormatsLocation(t *testing.T) {
	var out strings.Builder
	sink := diag.NewSink()
	sink.Out = &out
	sink.SetCurrentFile("prog.as")
	sink.SetCurrentLine(3)

	sink.Report(diag.Symbol, "undefined symbol %q", "LOOP")

	assert.Equal(t, 1, sink.ErrorCount())
	assert.Equal(t, `[Error - Symbol] in file "prog.as" at line 3: undefined symbol "LOOP"`+"\n", out.String())
}

func TestReport_WithoutFileOrLineOmitsLocation(t *testing.T) {
	var out strings.Builder
	sink := diag.NewSink()
	sink.Out = &out

	sink.Report(diag.General, "something went wrong")

	assert.Equal(t, "[Error - General]: something went wrong\n", out.String())
}

func TestReset_ClearsCountAndLocation(t *testing.T) {
	var out strings.Builder
	sink := diag.NewSink()
	sink.Out = &out
	sink.SetCurrentFile("a.as")
	sink.SetCurrentLine(5)
	sink.Report(diag.Range, "out of range")
	assert.Equal(t, 1, sink.ErrorCount())

	sink.Reset()
	assert.Equal(t, 0, sink.ErrorCount())

	sink.Report(diag.Range, "again")
	assert.Equal(t, "[Error - Range]: again\n", out.String(), "file/line must be cleared by Reset")
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind diag.Kind
		want string
	}{
		{diag.File, "File"},
		{diag.Memory, "Memory"},
		{diag.Syntax, "Syntax"},
		{diag.Range, "Range"},
		{diag.Symbol, "Symbol"},
		{diag.Directive, "Directive"},
		{diag.Macro, "Macro"},
		{diag.Instruction, "Instruction"},
		{diag.General, "General"},
		{diag.Kind(99), "General"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestNew_BuildsErrWithFormattedMessage(t *testing.T) {
	err := diag.New(diag.Macro, "macro %q already defined", "GREET")
	assert.Equal(t, `[Macro] macro "GREET" already defined`, err.Error())
	assert.Equal(t, diag.Macro, err.Kind)
}
