package emit_test

import (
	"strings"
	"testing"

	"github.com/rncernic/asm24/internal/assemble"
	"github.com/rncernic/asm24/internal/diag"
	"github.com/rncernic/asm24/internal/emit"
	"github.com/rncernic/asm24/internal/symtab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteObject_HeaderAndLineFormat(t *testing.T) {
	sink := diag.NewSink()
	sink.Out = &strings.Builder{}
	state := assemble.New(symtab.New(), sink)
	state.FirstPass("LEN: .data 7, -3, 42")
	state.SecondPass("LEN: .data 7, -3, 42")

	var out strings.Builder
	require.NoError(t, emit.WriteObject(&out, state))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 1+len(state.DataImage)) // no code words in this source
	assert.Equal(t, "0 3", lines[0])

	for i, line := range lines[1:] {
		fields := strings.Fields(line)
		require.Len(t, fields, 2)
		assert.Len(t, fields[1], 6, "hex field must be 6 chars")
		_ = i
	}
}

func TestWriteEntries_OnlyEntryFlaggedSymbols(t *testing.T) {
	tbl := symtab.New()
	require.NoError(t, tbl.Add("MAIN", 100, symtab.Code))
	require.NoError(t, tbl.Add("HELPER", 105, symtab.Code))
	require.NoError(t, tbl.MarkEntry("MAIN"))

	var out strings.Builder
	require.NoError(t, emit.WriteEntries(&out, tbl))

	assert.Equal(t, "MAIN 0100\n", out.String())
}

func TestWriteExternals_OneLinePerReference(t *testing.T) {
	refs := []assemble.ExternRef{
		{Name: "EXT1", Address: 102},
		{Name: "EXT1", Address: 105},
	}

	var out strings.Builder
	require.NoError(t, emit.WriteExternals(&out, refs))

	assert.Equal(t, "EXT1 0102\nEXT1 0105\n", out.String())
}

func TestWriteExpanded_Passthrough(t *testing.T) {
	var out strings.Builder
	require.NoError(t, emit.WriteExpanded(&out, "mov @r1, @r2\n"))
	assert.Equal(t, "mov @r1, @r2\n", out.String())
}
