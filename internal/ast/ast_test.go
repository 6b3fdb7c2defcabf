package ast

import (
	"testing"

	"github.com/tangzhangming/seanet/internal/token"
)

// tok 构造一个覆盖源文本指定片段的 token
func tok(t token.TokenType, src string, start, length, line, column int) token.Token {
	return token.Token{
		Type:   t,
		Start:  start,
		Length: length,
		Src:    src,
		Line:   line,
		Column: column,
	}
}

// 二元表达式的位置跨越整个子树
func TestBinaryExprSpan(t *testing.T) {
	src := "a + bc"
	left := &VariableExpr{Name: tok(token.IDENT, src, 0, 1, 1, 1)}
	right := &VariableExpr{Name: tok(token.IDENT, src, 4, 2, 1, 5)}
	expr := &BinaryExpr{
		Left:     left,
		Operator: tok(token.PLUS, src, 2, 1, 1, 3),
		Right:    right,
	}

	if got := expr.Pos(); got != left.Pos() {
		t.Errorf("Pos() = %v, want %v", got, left.Pos())
	}
	if got := expr.End(); got != right.End() {
		t.Errorf("End() = %v, want %v", got, right.End())
	}
	if got := expr.String(); got != "(a + bc)" {
		t.Errorf("String() = %q, want %q", got, "(a + bc)")
	}
}

func TestTypeNodeString(t *testing.T) {
	src := "ref int[][] fun"
	intTok := tok(token.INT_TYPE, src, 4, 3, 1, 5)
	funTok := tok(token.FUN, src, 12, 3, 1, 13)

	named := &NamedType{Name: intTok}
	if named.String() != "int" {
		t.Errorf("named = %q", named.String())
	}

	refNamed := &NamedType{Name: intTok, Ref: true}
	if refNamed.String() != "ref int" {
		t.Errorf("ref named = %q", refNamed.String())
	}

	lb := tok(token.LBRACKET, src, 7, 1, 1, 8)
	rb := tok(token.RBRACKET, src, 8, 1, 1, 9)
	arr := &ArrayType{Element: named, LBracket: lb, RBracket: rb}
	if arr.String() != "int[]" {
		t.Errorf("array = %q", arr.String())
	}

	nested := &ArrayType{
		Element:  arr,
		LBracket: tok(token.LBRACKET, src, 9, 1, 1, 10),
		RBracket: tok(token.RBRACKET, src, 10, 1, 1, 11),
	}
	if nested.String() != "int[][]" {
		t.Errorf("nested array = %q", nested.String())
	}

	// 裸 fun：零参数、void 返回
	bare := &FuncType{FunToken: funTok}
	if bare.String() != "fun" {
		t.Errorf("bare fun = %q", bare.String())
	}

	full := &FuncType{
		FunToken: funTok,
		Params:   []TypeNode{named, arr},
		Return:   named,
	}
	if full.String() != "fun<int, int[], int>" {
		t.Errorf("full fun = %q", full.String())
	}
}

// 数组类型向内嵌套：外层 ArrayType 的元素是内层类型
func TestArrayTypeNesting(t *testing.T) {
	src := "int[][]"
	named := &NamedType{Name: tok(token.INT_TYPE, src, 0, 3, 1, 1)}
	inner := &ArrayType{
		Element:  named,
		LBracket: tok(token.LBRACKET, src, 3, 1, 1, 4),
		RBracket: tok(token.RBRACKET, src, 4, 1, 1, 5),
	}
	outer := &ArrayType{
		Element:  inner,
		LBracket: tok(token.LBRACKET, src, 5, 1, 1, 6),
		RBracket: tok(token.RBRACKET, src, 6, 1, 1, 7),
	}

	// 位置从最内层类型名开始，到最后的 ] 结束
	if outer.Pos() != named.Pos() {
		t.Errorf("Pos() = %v, want %v", outer.Pos(), named.Pos())
	}
	if outer.End().Column != 8 {
		t.Errorf("End().Column = %d, want 8", outer.End().Column)
	}
}

func TestBlockStmtSpan(t *testing.T) {
	src := "{ x; }"
	lb := tok(token.LBRACE, src, 0, 1, 1, 1)
	rb := tok(token.RBRACE, src, 5, 1, 1, 6)
	block := &BlockStmt{LBrace: lb, RBrace: rb}

	if block.Pos().Column != 1 {
		t.Errorf("Pos().Column = %d, want 1", block.Pos().Column)
	}
	if block.End().Column != 7 {
		t.Errorf("End().Column = %d, want 7", block.End().Column)
	}
}
