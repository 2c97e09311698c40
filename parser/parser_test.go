/*
File    : dungeontalk/parser/parser_test.go
Package : parser
*/
package parser

import (
	"testing"

	"github.com/dungeontalk/dungeontalk/ast"
	"github.com/dungeontalk/dungeontalk/lexeme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseAll(t *testing.T, source string) []ast.Instr {
	t.Helper()
	p := New(source)
	prog, err := p.ParseProgram()
	require.NoError(t, err)
	return prog
}

func TestParseProgramBuildsAssignmentExpression(t *testing.T) {
	prog := parseAll(t, "a = 1 + 2\n")
	require.Len(t, prog, 1)

	shape, ok := prog[0].([]ast.Expr)
	require.True(t, ok, "assignment builds as a flat [left, op, right] shape")
	require.Len(t, shape, 3)
	assert.IsType(t, &lexeme.Identifier{}, shape[0])
	assert.IsType(t, &lexeme.Assign{}, shape[1])
}

func TestParseIfElseRecordsLengthsAndLinksElse(t *testing.T) {
	prog := parseAll(t, "if 1 == 1\na=1\nelse\na=2\nend\n")

	ifStmt, ok := prog[0].(*ast.IfStmt)
	require.True(t, ok)
	require.NotNil(t, ifStmt.Else)

	// Layout: IfStmt, "a=1", ElseStmt, "a=2", EndStmt.
	require.Len(t, prog, 5)
	assert.Equal(t, 1, ifStmt.Length, "if body is just the one 'a=1' statement")
	assert.Equal(t, 1, ifStmt.Else.Length, "else body is just the one 'a=2' statement")
	assert.IsType(t, &ast.ElseStmt{}, prog[2])
	assert.IsType(t, &ast.EndStmt{}, prog[4])
}

func TestParseIfWithoutElseHasNilElse(t *testing.T) {
	prog := parseAll(t, "if 1 == 1\na=1\nend\n")

	ifStmt, ok := prog[0].(*ast.IfStmt)
	require.True(t, ok)
	assert.Nil(t, ifStmt.Else)
	assert.Equal(t, 1, ifStmt.Length)
}

func TestParseElseWithoutOpenIfIsABlockMismatch(t *testing.T) {
	p := New("else\na=1\nend\n")
	_, err := p.ParseProgram()
	assert.Error(t, err)
}

func TestParseEndWithoutOpenBlockIsABlockMismatch(t *testing.T) {
	p := New("end\n")
	_, err := p.ParseProgram()
	assert.Error(t, err)
}

func TestParseForRecordsAddressAndThreeClauses(t *testing.T) {
	prog := parseAll(t, "for i=0; i<3; i++\nprnt i\nend\n")

	forStmt, ok := prog[0].(*ast.ForStmt)
	require.True(t, ok)
	assert.Equal(t, 0, forStmt.Address)
	assert.NotNil(t, forStmt.Init)
	assert.NotNil(t, forStmt.Condition)
	assert.NotNil(t, forStmt.Increment)
	assert.Equal(t, 1, forStmt.Length, "body is just the one prnt statement")

	require.Len(t, prog, 3)
	assert.IsType(t, &ast.PrntStmt{}, prog[1])
	assert.IsType(t, &ast.EndStmt{}, prog[2])
}

func TestParseProcedureWithEmptySignatureHasNilParams(t *testing.T) {
	prog := parseAll(t, "procedure p()\nprnt 1\nend\n")

	proc, ok := prog[0].(*ast.ProcedureStmt)
	require.True(t, ok)
	assert.Equal(t, "p", proc.Ident)
	assert.Nil(t, proc.Params)
	assert.Equal(t, 1, proc.Length)
}

func TestParseProcedureWithParamsRecordsNames(t *testing.T) {
	prog := parseAll(t, "procedure p(x, y)\nprnt x\nend\n")

	proc, ok := prog[0].(*ast.ProcedureStmt)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, proc.Params)
}

func TestParseDefCapturesItsOwnBodySeparatelyFromTheFlatProgram(t *testing.T) {
	prog := parseAll(t, "def func(x)\nx + 5\nend\nr = exec func(1)\n")

	def, ok := prog[0].(*ast.DefStmt)
	require.True(t, ok)
	assert.Equal(t, "func", def.Ident)
	assert.Equal(t, []string{"x"}, def.Params)
	require.Len(t, def.Body, 1, "def body is captured inline, not left to be read off the flat list at call time")
}

func TestExecAsAssignmentRightHandSideParsesAsOneCombinedInstruction(t *testing.T) {
	prog := parseAll(t, "def func(x)\nx + 5\nend\nr = exec func(1)\n")

	require.Len(t, prog, 3, "DefStmt, the synthetic End for its body, then the combined r = exec ... instruction")
	shape, ok := prog[2].([]ast.Expr)
	require.True(t, ok)
	require.Len(t, shape, 3)
	assert.IsType(t, &lexeme.Identifier{}, shape[0])
	assert.IsType(t, &lexeme.Assign{}, shape[1])
	assert.IsType(t, &ast.ExecStmt{}, shape[2])
}

func TestPlainExecStatementIsNotMistakenForAnAssignment(t *testing.T) {
	prog := parseAll(t, "procedure p()\nprnt 1\nend\nexec p\n")

	require.Len(t, prog, 4)
	assert.IsType(t, &ast.ExecStmt{}, prog[3])
}

func TestParseExecWithArguments(t *testing.T) {
	prog := parseAll(t, "def func(x)\nx\nend\nr = exec func(1, 2)\n")

	shape := prog[2].([]ast.Expr)
	call := shape[2].(*ast.ExecStmt)
	assert.Equal(t, "func", call.Ident)
	assert.NotNil(t, call.Args)
}

func TestParsePrntBuildsValueExpression(t *testing.T) {
	prog := parseAll(t, "prnt 1 + 2\n")

	stmt, ok := prog[0].(*ast.PrntStmt)
	require.True(t, ok)
	assert.NotNil(t, stmt.Value)
}

func TestParseWaitCapturesConditionAndOptionalUntilClause(t *testing.T) {
	prog := parseAll(t, "WAIT x == 1 UNTIL 5\n")

	stmt, ok := prog[0].(*ast.WaitStmt)
	require.True(t, ok)
	assert.NotNil(t, stmt.Condition)
	assert.NotNil(t, stmt.Until)
}

func TestParseWaitWithoutUntilLeavesItNil(t *testing.T) {
	prog := parseAll(t, "WAIT x == 1\n")

	stmt, ok := prog[0].(*ast.WaitStmt)
	require.True(t, ok)
	assert.Nil(t, stmt.Until)
}

func TestParseIncludeCapturesSource(t *testing.T) {
	prog := parseAll(t, `include "tavern"
`)

	stmt, ok := prog[0].(*ast.IncludeStmt)
	require.True(t, ok)
	assert.NotNil(t, stmt.Source)
}

func TestParseProgramSkipsLineComments(t *testing.T) {
	prog := parseAll(t, "// a comment\na = 1\n")
	require.Len(t, prog, 1)
}

func TestParseProgramTreatsSemicolonsAsStatementSeparators(t *testing.T) {
	prog := parseAll(t, "a = 1; b = 2;\n")
	require.Len(t, prog, 2)
}

func TestUnexpectedEOFInsideAnOpenIfBlock(t *testing.T) {
	p := New("if 1 == 1\na=1\n")
	_, err := p.ParseProgram()
	assert.Error(t, err)
}

func TestUnexpectedEOFInsideAnOpenForBlock(t *testing.T) {
	p := New("for i=0; i<3; i++\nprnt i\n")
	_, err := p.ParseProgram()
	assert.Error(t, err)
}
