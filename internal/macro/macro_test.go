package macro_test

import (
	"strings"
	"testing"

	"github.com/rncernic/asm24/internal/macro"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestS5_MacroExpansion covers a macro defined once and expanded twice.
func TestS5_MacroExpansion(t *testing.T) {
	source := strings.Join([]string{
		"mcro GREET",
		"mov r1, r2",
		"add r3, r4",
		"endmcro",
		"GREET",
		"GREET",
	}, "\n")

	pre := macro.NewPreprocessor()
	expanded, err := pre.Run(source)
	require.NoError(t, err)

	assert.NotContains(t, expanded, "mcro GREET")
	assert.NotContains(t, expanded, "endmcro")

	movCount := strings.Count(expanded, "mov r1, r2")
	addCount := strings.Count(expanded, "add r3, r4")
	assert.Equal(t, 2, movCount)
	assert.Equal(t, 2, addCount)
}

func TestNestedMacro_Fails(t *testing.T) {
	source := strings.Join([]string{
		"mcro OUTER",
		"mcro INNER",
		"endmcro",
		"endmcro",
	}, "\n")

	pre := macro.NewPreprocessor()
	_, err := pre.Run(source)
	assert.Error(t, err)
}

func TestUnterminatedMacro_Fails(t *testing.T) {
	source := "mcro GREET\nmov r1, r2"

	pre := macro.NewPreprocessor()
	_, err := pre.Run(source)
	assert.Error(t, err)
}

func TestEndWithoutBegin_Fails(t *testing.T) {
	pre := macro.NewPreprocessor()
	_, err := pre.Run("endmcro")
	assert.Error(t, err)
}

func TestDuplicateMacroName_Fails(t *testing.T) {
	source := strings.Join([]string{
		"mcro GREET",
		"mov r1, r2",
		"endmcro",
		"mcro GREET",
		"add r3, r4",
		"endmcro",
	}, "\n")

	pre := macro.NewPreprocessor()
	_, err := pre.Run(source)
	assert.Error(t, err)
}

func TestUnrelatedLines_CopiedVerbatim(t *testing.T) {
	source := "START: mov @r1, @r2"
	pre := macro.NewPreprocessor()
	expanded, err := pre.Run(source)
	require.NoError(t, err)
	assert.Contains(t, expanded, "START: mov @r1, @r2")
}

func TestTableDefine_RejectsOverflow(t *testing.T) {
	tbl := macro.NewTable()
	for i := 0; i < macro.DefaultMaxMacros; i++ {
		name := "M" + string(rune('A'+i%26)) + string(rune('a'+i/26))
		_, err := tbl.Define(name)
		require.NoError(t, err)
	}
	_, err := tbl.Define("OVERFLOW")
	assert.Error(t, err)
}

func TestTableDefine_RespectsConfiguredMaxMacros(t *testing.T) {
	tbl := macro.NewTable()
	tbl.MaxMacros = 1

	_, err := tbl.Define("FIRST")
	require.NoError(t, err)

	_, err = tbl.Define("SECOND")
	assert.Error(t, err, "a table configured for 1 macro must reject the second")
}

func TestPreprocessor_RespectsConfiguredMaxMacroLines(t *testing.T) {
	pre := macro.NewPreprocessor()
	pre.MaxMacroLines = 1

	source := strings.Join([]string{
		"mcro GREET",
		"mov @r1, @r2",
		"add @r3, @r4",
		"endmcro",
	}, "\n")

	_, err := pre.Run(source)
	assert.Error(t, err, "a body exceeding the configured line cap must fail")
}
