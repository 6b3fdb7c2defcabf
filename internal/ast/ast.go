package ast

import (
	"strings"

	"github.com/tangzhangming/seanet/internal/token"
)

// ============================================================================
// 节点接口
// ============================================================================
//
// AST 节点分为三个封闭的变体族：TypeNode（类型表达式）、
// Expression（表达式）、Statement（语句）。每个族通过不可导出的
// 标记方法封闭，消费方对节点做穷尽的类型开关；新增节点种类
// 只能在本包内扩展变体集。
//
// 所有权：每个节点独占其子节点，构造后不再修改，树中无环。
// 整棵树在一次 Parse 调用中构建，整体交给下一阶段。
//
// ============================================================================

// Node 是所有 AST 节点的基接口
type Node interface {
	Pos() token.Position // 返回节点在源代码中的起始位置
	End() token.Position // 返回节点结束位置
	String() string      // 返回节点的字符串表示（用于调试和测试）
}

// Expression 表示一个表达式节点
type Expression interface {
	Node
	exprNode()
}

// Statement 表示一个语句节点
type Statement interface {
	Node
	stmtNode()
}

// TypeNode 表示一个语法层面的类型表达式
//
// 类型树自底向上构建，解析器返回后即不可变。
// 函数指针类型的返回类型在构造前已完全解析。
type TypeNode interface {
	Node
	typeNode()
}

// ============================================================================
// 类型节点
// ============================================================================

// NamedType 具名类型 (int, string, MyStruct, var)
//
// var 声明的类型表示为携带 var token 的 NamedType。
type NamedType struct {
	Name token.Token // 类型名 token
	Ref  bool        // ref T
}

func (t *NamedType) Pos() token.Position { return t.Name.Pos() }
func (t *NamedType) End() token.Position { return t.Name.End() }
func (t *NamedType) String() string {
	if t.Ref {
		return "ref " + t.Name.Lexeme()
	}
	return t.Name.Lexeme()
}
func (t *NamedType) typeNode() {}

// ArrayType 数组类型 (T[])
//
// 多维数组用嵌套表示：int[][] 是 ArrayType(ArrayType(NamedType(int)))。
type ArrayType struct {
	Element  TypeNode    // 元素类型
	LBracket token.Token // [ token
	RBracket token.Token // ] token
	Ref      bool        // ref T[]
}

func (t *ArrayType) Pos() token.Position { return t.Element.Pos() }
func (t *ArrayType) End() token.Position { return t.RBracket.End() }
func (t *ArrayType) String() string {
	if t.Ref {
		return "ref " + t.Element.String() + "[]"
	}
	return t.Element.String() + "[]"
}
func (t *ArrayType) typeNode() {}

// FuncType 函数指针类型
//
// fun           零参数、void 返回（Return 为 nil 表示 void）
// fun<T1,...,R> 最后一项是返回类型，其余是参数类型
type FuncType struct {
	FunToken token.Token // fun token
	Params   []TypeNode  // 参数类型列表
	Return   TypeNode    // 返回类型，nil 表示 void
}

func (t *FuncType) Pos() token.Position { return t.FunToken.Pos() }
func (t *FuncType) End() token.Position {
	if t.Return != nil {
		return t.Return.End()
	}
	return t.FunToken.End()
}
func (t *FuncType) String() string {
	if len(t.Params) == 0 && t.Return == nil {
		return "fun"
	}
	var parts []string
	for _, p := range t.Params {
		parts = append(parts, p.String())
	}
	if t.Return != nil {
		parts = append(parts, t.Return.String())
	} else {
		parts = append(parts, "void")
	}
	return "fun<" + strings.Join(parts, ", ") + ">"
}
func (t *FuncType) typeNode() {}

// ============================================================================
// 表达式节点
// ============================================================================

// LiteralExpr 字面量 (数字、字符串、true/false)
//
// 解析后的值在 Token.Value 里。
type LiteralExpr struct {
	Token token.Token
}

func (e *LiteralExpr) Pos() token.Position { return e.Token.Pos() }
func (e *LiteralExpr) End() token.Position { return e.Token.End() }
func (e *LiteralExpr) String() string      { return e.Token.Lexeme() }
func (e *LiteralExpr) exprNode()           {}

// GroupExpr 括号分组表达式
type GroupExpr struct {
	LParen token.Token
	Expr   Expression
	RParen token.Token
}

func (e *GroupExpr) Pos() token.Position { return e.LParen.Pos() }
func (e *GroupExpr) End() token.Position { return e.RParen.End() }
func (e *GroupExpr) String() string      { return "(" + e.Expr.String() + ")" }
func (e *GroupExpr) exprNode()           {}

// UnaryExpr 前缀一元表达式 (!x, -x, ++x, --x)
type UnaryExpr struct {
	Operator token.Token
	Operand  Expression
}

func (e *UnaryExpr) Pos() token.Position { return e.Operator.Pos() }
func (e *UnaryExpr) End() token.Position { return e.Operand.End() }
func (e *UnaryExpr) String() string {
	return "(" + e.Operator.Lexeme() + e.Operand.String() + ")"
}
func (e *UnaryExpr) exprNode() {}

// BinaryExpr 二元算术/位/比较表达式
type BinaryExpr struct {
	Left     Expression
	Operator token.Token
	Right    Expression
}

func (e *BinaryExpr) Pos() token.Position { return e.Left.Pos() }
func (e *BinaryExpr) End() token.Position { return e.Right.End() }
func (e *BinaryExpr) String() string {
	return "(" + e.Left.String() + " " + e.Operator.Lexeme() + " " + e.Right.String() + ")"
}
func (e *BinaryExpr) exprNode() {}

// LogicalExpr 短路逻辑表达式 (&& ||)
//
// 与 BinaryExpr 分开：短路求值是后端关心的语义，
// 节点区分让后端不必检查运算符。
type LogicalExpr struct {
	Left     Expression
	Operator token.Token
	Right    Expression
}

func (e *LogicalExpr) Pos() token.Position { return e.Left.Pos() }
func (e *LogicalExpr) End() token.Position { return e.Right.End() }
func (e *LogicalExpr) String() string {
	return "(" + e.Left.String() + " " + e.Operator.Lexeme() + " " + e.Right.String() + ")"
}
func (e *LogicalExpr) exprNode() {}

// AssignExpr 变量赋值 (x = v, x += v, ...)
//
// 赋值右结合：a = b = c 解析为 (a = (b = c))。
type AssignExpr struct {
	Name     token.Token // 目标变量名
	Operator token.Token // = += -= *= /=
	Value    Expression
}

func (e *AssignExpr) Pos() token.Position { return e.Name.Pos() }
func (e *AssignExpr) End() token.Position { return e.Value.End() }
func (e *AssignExpr) String() string {
	return "(" + e.Name.Lexeme() + " " + e.Operator.Lexeme() + " " + e.Value.String() + ")"
}
func (e *AssignExpr) exprNode() {}

// PropertyAssignExpr 属性赋值 (obj.field = v)
type PropertyAssignExpr struct {
	Object   Expression  // 目标对象
	Name     token.Token // 属性名
	Operator token.Token // = += -= *= /=
	Value    Expression
}

func (e *PropertyAssignExpr) Pos() token.Position { return e.Object.Pos() }
func (e *PropertyAssignExpr) End() token.Position { return e.Value.End() }
func (e *PropertyAssignExpr) String() string {
	return "(" + e.Object.String() + "." + e.Name.Lexeme() + " " + e.Operator.Lexeme() + " " + e.Value.String() + ")"
}
func (e *PropertyAssignExpr) exprNode() {}

// CallExpr 函数调用
type CallExpr struct {
	Callee    Expression
	LParen    token.Token
	Arguments []Expression
	RParen    token.Token
}

func (e *CallExpr) Pos() token.Position { return e.Callee.Pos() }
func (e *CallExpr) End() token.Position { return e.RParen.End() }
func (e *CallExpr) String() string {
	var args []string
	for _, a := range e.Arguments {
		args = append(args, a.String())
	}
	return e.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}
func (e *CallExpr) exprNode() {}

// PropertyAccessExpr 属性访问 (obj.field)
type PropertyAccessExpr struct {
	Object Expression
	Dot    token.Token
	Name   token.Token
}

func (e *PropertyAccessExpr) Pos() token.Position { return e.Object.Pos() }
func (e *PropertyAccessExpr) End() token.Position { return e.Name.End() }
func (e *PropertyAccessExpr) String() string {
	return e.Object.String() + "." + e.Name.Lexeme()
}
func (e *PropertyAccessExpr) exprNode() {}

// VariableExpr 变量引用
//
// Ref 标记按引用传递的调用实参 (f(ref x))。
type VariableExpr struct {
	Name token.Token
	Ref  bool
}

func (e *VariableExpr) Pos() token.Position { return e.Name.Pos() }
func (e *VariableExpr) End() token.Position { return e.Name.End() }
func (e *VariableExpr) String() string {
	if e.Ref {
		return "ref " + e.Name.Lexeme()
	}
	return e.Name.Lexeme()
}
func (e *VariableExpr) exprNode() {}

// PostfixExpr 后缀自增/自减 (x++, x--)
type PostfixExpr struct {
	Operand  token.Token // 目标变量名
	Operator token.Token // ++ 或 --
}

func (e *PostfixExpr) Pos() token.Position { return e.Operand.Pos() }
func (e *PostfixExpr) End() token.Position { return e.Operator.End() }
func (e *PostfixExpr) String() string {
	return "(" + e.Operand.Lexeme() + e.Operator.Lexeme() + ")"
}
func (e *PostfixExpr) exprNode() {}

// IndexExpr 数组下标 (a[i])
type IndexExpr struct {
	Object   Expression
	LBracket token.Token
	Index    Expression
	RBracket token.Token
}

func (e *IndexExpr) Pos() token.Position { return e.Object.Pos() }
func (e *IndexExpr) End() token.Position { return e.RBracket.End() }
func (e *IndexExpr) String() string {
	return e.Object.String() + "[" + e.Index.String() + "]"
}
func (e *IndexExpr) exprNode() {}

// NewArrayExpr 定长数组构造 (new int[5][3])
//
// Type 是嵌套后的数组类型，Sizes 按维度顺序保存各维大小表达式。
type NewArrayExpr struct {
	NewToken token.Token
	Type     TypeNode
	Sizes    []Expression
}

func (e *NewArrayExpr) Pos() token.Position { return e.NewToken.Pos() }
func (e *NewArrayExpr) End() token.Position { return e.Type.End() }
func (e *NewArrayExpr) String() string {
	var sb strings.Builder
	sb.WriteString("new ")
	sb.WriteString(elementTypeName(e.Type))
	for _, s := range e.Sizes {
		sb.WriteString("[" + s.String() + "]")
	}
	return sb.String()
}
func (e *NewArrayExpr) exprNode() {}

// elementTypeName 剥掉数组包装，返回最内层元素类型名
func elementTypeName(t TypeNode) string {
	for {
		arr, ok := t.(*ArrayType)
		if !ok {
			return t.String()
		}
		t = arr.Element
	}
}

// NewStructExpr 结构体构造 (new T())
//
// 构造无参数：字段由后端零值初始化。
type NewStructExpr struct {
	NewToken token.Token
	Type     TypeNode
}

func (e *NewStructExpr) Pos() token.Position { return e.NewToken.Pos() }
func (e *NewStructExpr) End() token.Position { return e.Type.End() }
func (e *NewStructExpr) String() string      { return "new " + e.Type.String() + "()" }
func (e *NewStructExpr) exprNode()           {}

// FuncTypeExpr 函数指针类型字面量 (fun<int, void> 出现在表达式位置)
type FuncTypeExpr struct {
	Type *FuncType
}

func (e *FuncTypeExpr) Pos() token.Position { return e.Type.Pos() }
func (e *FuncTypeExpr) End() token.Position { return e.Type.End() }
func (e *FuncTypeExpr) String() string      { return e.Type.String() }
func (e *FuncTypeExpr) exprNode()           {}

// ============================================================================
// 语句节点
// ============================================================================

// Program 整个编译单元的根节点
//
// 顶层只允许结构体声明和函数声明。
// 解析失败时返回空 Program（Declarations 为 nil）。
type Program struct {
	Declarations []Statement
}

func (s *Program) Pos() token.Position {
	if len(s.Declarations) > 0 {
		return s.Declarations[0].Pos()
	}
	return token.Position{}
}
func (s *Program) End() token.Position {
	if len(s.Declarations) > 0 {
		return s.Declarations[len(s.Declarations)-1].End()
	}
	return token.Position{}
}
func (s *Program) String() string {
	var parts []string
	for _, d := range s.Declarations {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, "\n")
}
func (s *Program) stmtNode() {}

// BlockStmt 语句块 { ... }
type BlockStmt struct {
	LBrace     token.Token
	Statements []Statement
	RBrace     token.Token
}

func (s *BlockStmt) Pos() token.Position { return s.LBrace.Pos() }
func (s *BlockStmt) End() token.Position { return s.RBrace.End() }
func (s *BlockStmt) String() string {
	var parts []string
	for _, st := range s.Statements {
		parts = append(parts, st.String())
	}
	return "{ " + strings.Join(parts, " ") + " }"
}
func (s *BlockStmt) stmtNode() {}

// ExprStmt 表达式语句
type ExprStmt struct {
	Expr      Expression
	Semicolon token.Token
}

func (s *ExprStmt) Pos() token.Position { return s.Expr.Pos() }
func (s *ExprStmt) End() token.Position { return s.Semicolon.End() }
func (s *ExprStmt) String() string      { return s.Expr.String() + ";" }
func (s *ExprStmt) stmtNode()           {}

// VarDeclStmt 无初始化的变量声明 (Type name;)
//
// 也用作函数参数和结构体字段的表示。
type VarDeclStmt struct {
	Type TypeNode
	Name token.Token
}

func (s *VarDeclStmt) Pos() token.Position { return s.Type.Pos() }
func (s *VarDeclStmt) End() token.Position { return s.Name.End() }
func (s *VarDeclStmt) String() string      { return s.Type.String() + " " + s.Name.Lexeme() + ";" }
func (s *VarDeclStmt) stmtNode()           {}

// VarDeclAssignStmt 带初始化的变量声明 (Type name = expr; / var name = expr;)
//
// var 声明时 Type 是携带 var token 的 NamedType。
type VarDeclAssignStmt struct {
	Type  TypeNode
	Name  token.Token
	Value Expression
}

func (s *VarDeclAssignStmt) Pos() token.Position { return s.Type.Pos() }
func (s *VarDeclAssignStmt) End() token.Position { return s.Value.End() }
func (s *VarDeclAssignStmt) String() string {
	return s.Type.String() + " " + s.Name.Lexeme() + " = " + s.Value.String() + ";"
}
func (s *VarDeclAssignStmt) stmtNode() {}

// IfStmt if 语句
//
// else if 链保存为 ElseIfs 列表，按出现顺序依次求值；
// 最终的 else 块可选。
type IfStmt struct {
	IfToken   token.Token
	Condition Expression
	Then      *BlockStmt
	ElseIfs   []*IfStmt  // 每项的 ElseIfs/Else 均为空
	Else      *BlockStmt // 可为 nil
}

func (s *IfStmt) Pos() token.Position { return s.IfToken.Pos() }
func (s *IfStmt) End() token.Position {
	if s.Else != nil {
		return s.Else.End()
	}
	if len(s.ElseIfs) > 0 {
		return s.ElseIfs[len(s.ElseIfs)-1].End()
	}
	return s.Then.End()
}
func (s *IfStmt) String() string {
	out := "if (" + s.Condition.String() + ") " + s.Then.String()
	for _, ei := range s.ElseIfs {
		out += " else " + ei.String()
	}
	if s.Else != nil {
		out += " else " + s.Else.String()
	}
	return out
}
func (s *IfStmt) stmtNode() {}

// WhileStmt while 循环
type WhileStmt struct {
	WhileToken token.Token
	Condition  Expression
	Body       *BlockStmt
}

func (s *WhileStmt) Pos() token.Position { return s.WhileToken.Pos() }
func (s *WhileStmt) End() token.Position { return s.Body.End() }
func (s *WhileStmt) String() string {
	return "while (" + s.Condition.String() + ") " + s.Body.String()
}
func (s *WhileStmt) stmtNode() {}

// FuncDeclStmt 函数声明
type FuncDeclStmt struct {
	ReturnType TypeNode       // void 或其他类型
	Name       token.Token    // 函数名
	Params     []*VarDeclStmt // 参数声明，按顺序
	Body       *BlockStmt
}

func (s *FuncDeclStmt) Pos() token.Position { return s.ReturnType.Pos() }
func (s *FuncDeclStmt) End() token.Position { return s.Body.End() }
func (s *FuncDeclStmt) String() string {
	var params []string
	for _, p := range s.Params {
		params = append(params, p.Type.String()+" "+p.Name.Lexeme())
	}
	return s.ReturnType.String() + " " + s.Name.Lexeme() + "(" + strings.Join(params, ", ") + ") " + s.Body.String()
}
func (s *FuncDeclStmt) stmtNode() {}

// StructDeclStmt 结构体声明
//
// 字段是不带初始化的变量声明。
type StructDeclStmt struct {
	Keyword token.Token // struct token
	Name    token.Token // 结构体名
	Fields  []*VarDeclStmt
}

func (s *StructDeclStmt) Pos() token.Position { return s.Keyword.Pos() }
func (s *StructDeclStmt) End() token.Position {
	if len(s.Fields) > 0 {
		return s.Fields[len(s.Fields)-1].End()
	}
	return s.Name.End()
}
func (s *StructDeclStmt) String() string {
	var fields []string
	for _, f := range s.Fields {
		fields = append(fields, f.String())
	}
	return "struct " + s.Name.Lexeme() + " { " + strings.Join(fields, " ") + " }"
}
func (s *StructDeclStmt) stmtNode() {}

// ReturnStmt 带值的 return 语句
type ReturnStmt struct {
	Keyword token.Token
	Value   Expression
}

func (s *ReturnStmt) Pos() token.Position { return s.Keyword.Pos() }
func (s *ReturnStmt) End() token.Position { return s.Value.End() }
func (s *ReturnStmt) String() string      { return "return " + s.Value.String() + ";" }
func (s *ReturnStmt) stmtNode()           {}

// ReturnEmptyStmt 不带值的 return 语句
type ReturnEmptyStmt struct {
	Keyword token.Token
}

func (s *ReturnEmptyStmt) Pos() token.Position { return s.Keyword.Pos() }
func (s *ReturnEmptyStmt) End() token.Position { return s.Keyword.End() }
func (s *ReturnEmptyStmt) String() string      { return "return;" }
func (s *ReturnEmptyStmt) stmtNode()           {}
