package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/graybeam/testpolicy/internal/model"
)

func tableOf(names ...string) SymbolTable {
	symbols := make([]m.Symbol, 0, len(names))
	for _, name := range names {
		symbols = append(symbols, m.Symbol{RawName: name, Kind: m.SymbolFunction, SourceFile: "impl.py"})
	}

	return NewSymbolTable(symbols)
}

func TestFindReference_ConsecutiveSegmentsMatchSymbol(t *testing.T) {
	sym, ok := FindReference("test_calculate_total_returns_sum", tableOf("calculate_total"))
	require.True(t, ok)
	assert.Equal(t, "calculate_total", sym.RawName)
}

func TestFindReference_NoFalsePositiveOnSuperstringSegment(t *testing.T) {
	// symbol "user" must not match the single segment "username"
	_, ok := FindReference("test_username_is_valid", tableOf("user"))
	assert.False(t, ok)
}

func TestFindReference_ShortSymbolNeverMatches(t *testing.T) {
	// "user" normalizes to 4 chars and stays; "run" and "go" are dropped
	_, ok := FindReference("test_run_completes", tableOf("run"))
	assert.False(t, ok)

	_, ok = FindReference("test_go_fast", tableOf("go"))
	assert.False(t, ok)
}

func TestFindReference_PartialMultiWordSymbolDoesNotMatch(t *testing.T) {
	// fetch+user = "fetchuser" is a proper prefix of "fetchuserdata"
	_, ok := FindReference("test_fetch_user_returns_none", tableOf("fetch_user_data"))
	assert.False(t, ok)
}

func TestFindReference_ExactSingleSegment(t *testing.T) {
	sym, ok := FindReference("test_user_is_valid", tableOf("user"))
	require.True(t, ok)
	assert.Equal(t, "user", sym.RawName)
}

func TestFindReference_RegistrationLiteral(t *testing.T) {
	sym, ok := FindReference(`"calculate total returns the sum"`, tableOf("calculateTotal"))
	require.True(t, ok)
	assert.Equal(t, "calculateTotal", sym.RawName)
}

func TestFindReference_FirstMatchInScanOrderWins(t *testing.T) {
	// "save_user" completes at i=1 before "user_profile" can complete at i=2
	sym, ok := FindReference("test_save_user_profile", tableOf("save_user", "user_profile"))
	require.True(t, ok)
	assert.Equal(t, "save_user", sym.RawName)
}

func TestFindReference_EmptyNameIsClean(t *testing.T) {
	_, ok := FindReference("", tableOf("calculate_total"))
	assert.False(t, ok)

	_, ok = FindReference(`"  "`, tableOf("calculate_total"))
	assert.False(t, ok)
}

func TestCheckTestNames_OneViolationPerTestName(t *testing.T) {
	table := tableOf("calculate_total", "fetch_user_data")

	tests := []m.TestCase{
		{RawName: "test_calculate_total_returns_sum", SourceFile: "test_calc.py", Line: 4, Column: 0},
		{RawName: "test_totals_are_positive", SourceFile: "test_calc.py", Line: 9, Column: 0},
		{RawName: `"fetch user data populates cache"`, SourceFile: "api.test.ts", Line: 12, Column: 2},
	}

	violations := CheckTestNames(tests, table)
	require.Len(t, violations, 2)

	assert.Equal(t, m.Path("test_calc.py"), violations[0].File)
	assert.Equal(t, 4, violations[0].Line)
	assert.Equal(t, m.CategoryReference, violations[0].Category)
	assert.Contains(t, violations[0].Message, "calculate_total")

	assert.Equal(t, m.Path("api.test.ts"), violations[1].File)
	assert.Contains(t, violations[1].Message, "fetch_user_data")
}

func TestCheckTestNames_EmptyTableProducesNothing(t *testing.T) {
	violations := CheckTestNames([]m.TestCase{
		{RawName: "test_anything_at_all", SourceFile: "t.py"},
	}, NewSymbolTable(nil))

	assert.Empty(t, violations)
}
