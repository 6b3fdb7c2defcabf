package parser

import (
	"fmt"

	"github.com/tangzhangming/seanet/internal/ast"
	"github.com/tangzhangming/seanet/internal/diag"
	"github.com/tangzhangming/seanet/internal/token"
)

// ============================================================================
// Parser - 语法分析器
// ============================================================================
//
// 递归下降解析器，表达式部分用从低到高互相调用的优先级函数级联。
//
// 错误策略是一次性中止：第一个语法错误报告到诊断收集器后，
// 通过内部哨兵 panic 一路退绕回 Parse 顶层（在那里 recover），
// 调用方得到一个空的 Program。不做语句边界重同步，一次 Parse
// 至多报告一个语法错误。哨兵绝不会越过 Parse 泄漏到公开接口外。
//
// ============================================================================

// Parser 语法分析器
type Parser struct {
	tokens    []token.Token // 扫描器产出的 Token 序列（以 EOF 结尾）
	current   int           // 当前 Token 下标
	diags     *diag.Bag     // 诊断收集器（借用，不拥有）
	exprDepth int           // 表达式解析深度，防止栈溢出
}

// maxExprDepth 最大表达式嵌套深度，防止栈溢出
const maxExprDepth = 200

// bailout 语法错误的内部控制信号，仅在一次 Parse 调用内传播
type bailout struct{}

// New 创建一个新的语法分析器
//
// tokens 必须是扫描器的完整产出（以 EOF 结尾）。
func New(tokens []token.Token, diags *diag.Bag) *Parser {
	return &Parser{
		tokens: tokens,
		diags:  diags,
	}
}

// Parse 解析整个编译单元
//
// 顶层是结构体声明和函数声明的序列；消费完所有声明后
// 必须恰好到达 EOF，否则也是语法错误。
//
// 出现语法错误时返回空 Program，诊断收集器里恰好多出一条
// 解析错误（扫描阶段的错误相互独立，可能已经在里面）。
func (p *Parser) Parse() (prog *ast.Program) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			prog = &ast.Program{}
		}
	}()

	var decls []ast.Statement
	for !p.isAtEnd() {
		decls = append(decls, p.parseDeclaration())
	}

	return &ast.Program{Declarations: decls}
}

// ============================================================================
// 辅助方法
// ============================================================================

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) lookAhead(n int) token.Token {
	if p.current+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // 返回EOF
	}
	return p.tokens[p.current+n]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(t token.TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) match(types ...token.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(t token.TokenType, message string) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.error(message)
	return token.Token{} // 到不了这里，error 不返回
}

// error 报告语法错误并中止本次解析
//
// 位置取当前 token。报告后立即 panic 哨兵，由 Parse 回收，
// 因此一次解析至多报告一条语法错误。
func (p *Parser) error(message string) {
	p.errorAt(p.peek(), message)
}

func (p *Parser) errorAt(tok token.Token, message string) {
	p.diags.Report(tok.Line, tok.Column, message)
	panic(bailout{})
}

// ============================================================================
// 顶层声明
// ============================================================================

// parseDeclaration 解析一个顶层声明
//
// 顶层只允许结构体声明或函数声明，其他一律报错。
func (p *Parser) parseDeclaration() ast.Statement {
	if p.checkStructKeyword() {
		return p.parseStructDecl()
	}
	if p.check(token.VOID) || p.isTypeStart() {
		return p.parseFuncDecl()
	}
	p.error(fmt.Sprintf("expected struct or function declaration, got '%s'", p.peek().Type))
	return nil
}

// checkStructKeyword 检查当前 token 是否是 struct
//
// 关键字表里没有 "struct" 条目，它作为标识符扫描进来，
// 这里按词素判断，与基线一致。
func (p *Parser) checkStructKeyword() bool {
	return p.check(token.IDENT) && p.peek().Lexeme() == "struct"
}

// parseStructDecl 解析结构体声明
//
// struct Name { 字段声明... }
// 字段是不带初始化的变量声明。
func (p *Parser) parseStructDecl() ast.Statement {
	keyword := p.advance() // struct
	name := p.consume(token.IDENT, "expected struct name")
	p.consume(token.LBRACE, "expected '{' after struct name")

	var fields []*ast.VarDeclStmt
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		fieldType := p.parseType()
		fieldName := p.consume(token.IDENT, "expected field name")
		p.consume(token.SEMICOLON, "expected ';' after field declaration")
		fields = append(fields, &ast.VarDeclStmt{Type: fieldType, Name: fieldName})
	}

	p.consume(token.RBRACE, "expected '}' after struct fields")

	return &ast.StructDeclStmt{
		Keyword: keyword,
		Name:    name,
		Fields:  fields,
	}
}

// parseFuncDecl 解析函数声明
//
// (void | Type) name ( 参数列表 ) 块
func (p *Parser) parseFuncDecl() ast.Statement {
	var returnType ast.TypeNode
	if p.check(token.VOID) {
		returnType = &ast.NamedType{Name: p.advance()}
	} else {
		returnType = p.parseType()
	}

	name := p.consume(token.IDENT, "expected function name")
	p.consume(token.LPAREN, "expected '(' after function name")

	var params []*ast.VarDeclStmt
	if !p.check(token.RPAREN) {
		for {
			paramType := p.parseType()
			paramName := p.consume(token.IDENT, "expected parameter name")
			params = append(params, &ast.VarDeclStmt{Type: paramType, Name: paramName})
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RPAREN, "expected ')' after parameters")

	body := p.parseBlock()

	return &ast.FuncDeclStmt{
		ReturnType: returnType,
		Name:       name,
		Params:     params,
		Body:       body,
	}
}

// ============================================================================
// 类型解析
// ============================================================================

// parseType 解析一个类型表达式
//
// [ref] (原生类型 | 标识符 | fun[<...>]) ([])*
//
// ref 不能与函数指针类型组合。
func (p *Parser) parseType() ast.TypeNode {
	isRef := false
	if p.check(token.REF) {
		p.advance()
		isRef = true
	}

	if p.check(token.FUN) {
		if isRef {
			p.error("ref cannot apply to a function-pointer type")
		}
		return p.parseFuncType()
	}

	var nameTok token.Token
	switch {
	case token.IsTypeKeyword(p.peek().Type), p.check(token.VOID), p.check(token.IDENT):
		nameTok = p.advance()
	default:
		p.error("expected type")
	}

	var t ast.TypeNode = &ast.NamedType{Name: nameTok}

	// 数组后缀 []（可多个，嵌套成多维数组类型）
	for p.check(token.LBRACKET) && p.lookAhead(1).Type == token.RBRACKET {
		lbracket := p.advance()
		rbracket := p.advance()
		t = &ast.ArrayType{Element: t, LBracket: lbracket, RBracket: rbracket}
	}

	// ref 标在最外层节点上
	if isRef {
		switch n := t.(type) {
		case *ast.NamedType:
			n.Ref = true
		case *ast.ArrayType:
			n.Ref = true
		}
	}

	return t
}

// parseFuncType 解析函数指针类型
//
// fun              零参数、void 返回
// fun<T1,...,R>    最后一项是返回类型，前面是参数类型
//
// 返回类型在节点构造前已经解析完毕，节点返回后不可变。
func (p *Parser) parseFuncType() *ast.FuncType {
	funTok := p.advance() // fun

	if !p.check(token.LT) {
		return &ast.FuncType{FunToken: funTok}
	}

	p.advance() // <

	var entries []ast.TypeNode
	entries = append(entries, p.parseType())
	for p.match(token.COMMA) {
		entries = append(entries, p.parseType())
	}

	p.consume(token.GT, "expected '>' after function type parameters")

	// 最后一项是返回类型
	ret := entries[len(entries)-1]
	params := entries[:len(entries)-1]

	return &ast.FuncType{
		FunToken: funTok,
		Params:   params,
		Return:   ret,
	}
}

// ============================================================================
// 语句解析
// ============================================================================

func (p *Parser) parseStatement() ast.Statement {
	switch p.peek().Type {
	case token.LBRACE:
		return p.parseBlock()
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.VAR:
		return p.parseVarDecl()
	default:
		if p.isTypeStart() {
			return p.parseTypedDecl()
		}
		return p.parseExprStmt()
	}
}

// isTypeStart 判断当前位置是否是声明的类型名开头
//
// 类型与标识符的歧义消解：
//   - 原生类型关键字一定开始声明；
//   - ref / fun 一定开始声明（类型前缀/函数指针类型）；
//   - 标识符紧跟另一个标识符（MyStruct x）是类型名；
//   - 标识符紧跟空方括号对（MyStruct[] x）是数组类型名。
//
// 其余的标识符开头按表达式处理。
func (p *Parser) isTypeStart() bool {
	t := p.peek().Type
	if token.IsTypeKeyword(t) || t == token.REF || t == token.FUN {
		return true
	}
	if t == token.IDENT {
		if p.lookAhead(1).Type == token.IDENT {
			return true
		}
		if p.lookAhead(1).Type == token.LBRACKET && p.lookAhead(2).Type == token.RBRACKET {
			return true
		}
	}
	return false
}

// parseVarDecl 解析 var 声明
//
// var name = expr;  初始化是强制的。
// 类型表示为携带 var token 的 NamedType，推导留给后续阶段。
func (p *Parser) parseVarDecl() ast.Statement {
	varTok := p.advance() // var
	name := p.consume(token.IDENT, "expected variable name after 'var'")
	p.consume(token.ASSIGN, "expected '=' after variable name")
	value := p.parseExpression()
	p.consume(token.SEMICOLON, "expected ';' after variable declaration")

	return &ast.VarDeclAssignStmt{
		Type:  &ast.NamedType{Name: varTok},
		Name:  name,
		Value: value,
	}
}

// parseTypedDecl 解析带类型的变量声明
//
// Type name;  或  Type name = expr;
func (p *Parser) parseTypedDecl() ast.Statement {
	declType := p.parseType()
	name := p.consume(token.IDENT, "expected variable name")

	if p.match(token.ASSIGN) {
		value := p.parseExpression()
		p.consume(token.SEMICOLON, "expected ';' after variable declaration")
		return &ast.VarDeclAssignStmt{
			Type:  declType,
			Name:  name,
			Value: value,
		}
	}

	p.consume(token.SEMICOLON, "expected ';' after variable declaration")
	return &ast.VarDeclStmt{
		Type: declType,
		Name: name,
	}
}

func (p *Parser) parseBlock() *ast.BlockStmt {
	lbrace := p.consume(token.LBRACE, "expected '{'")

	var stmts []ast.Statement
	for !p.check(token.RBRACE) && !p.isAtEnd() {
		stmts = append(stmts, p.parseStatement())
	}

	rbrace := p.consume(token.RBRACE, "expected '}'")

	return &ast.BlockStmt{
		LBrace:     lbrace,
		Statements: stmts,
		RBrace:     rbrace,
	}
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	ifTok := p.advance() // if
	p.consume(token.LPAREN, "expected '(' after 'if'")
	condition := p.parseExpression()
	p.consume(token.RPAREN, "expected ')' after condition")
	then := p.parseBlock()

	stmt := &ast.IfStmt{
		IfToken:   ifTok,
		Condition: condition,
		Then:      then,
	}

	// else if 链收集为嵌套 If 节点列表，按出现顺序求值；
	// 最后一个 else 块收尾。
	for p.match(token.ELSE) {
		if p.check(token.IF) {
			elseIfTok := p.advance()
			p.consume(token.LPAREN, "expected '(' after 'if'")
			elseIfCond := p.parseExpression()
			p.consume(token.RPAREN, "expected ')' after condition")
			elseIfBody := p.parseBlock()
			stmt.ElseIfs = append(stmt.ElseIfs, &ast.IfStmt{
				IfToken:   elseIfTok,
				Condition: elseIfCond,
				Then:      elseIfBody,
			})
			continue
		}
		stmt.Else = p.parseBlock()
		break
	}

	return stmt
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	whileTok := p.advance() // while
	p.consume(token.LPAREN, "expected '(' after 'while'")
	condition := p.parseExpression()
	p.consume(token.RPAREN, "expected ')' after condition")
	body := p.parseBlock()

	return &ast.WhileStmt{
		WhileToken: whileTok,
		Condition:  condition,
		Body:       body,
	}
}

// parseForStmt 解析 for 循环并在解析期脱糖
//
// for (init; cond; incr) body 重写为：
//
//	{ init; while (cond) { body...; incr; } }
//
// cond 省略时合成一个 true 字面量，位置复用本应开始条件的
// 那个 token，保证无限循环在后续阶段里有可定位的条件。
// incr 追加到循环体语句列表末尾，合成的 while 节点追加到
// 包装块里 init 之后。
func (p *Parser) parseForStmt() ast.Statement {
	forTok := p.advance() // for
	p.consume(token.LPAREN, "expected '(' after 'for'")

	// 初始化子句：声明或表达式语句，自带分号；可省略
	var init ast.Statement
	if p.check(token.SEMICOLON) {
		p.advance()
	} else if p.check(token.VAR) {
		init = p.parseVarDecl()
	} else if p.isTypeStart() {
		init = p.parseTypedDecl()
	} else {
		init = p.parseExprStmt()
	}

	// 条件子句：省略时合成 true
	var condition ast.Expression
	if p.check(token.SEMICOLON) {
		condition = &ast.LiteralExpr{Token: p.synthesizeTrue(p.peek())}
		p.advance()
	} else {
		condition = p.parseExpression()
		p.consume(token.SEMICOLON, "expected ';' after loop condition")
	}

	// 步进子句：不带分号；可省略
	var increment ast.Expression
	if !p.check(token.RPAREN) {
		increment = p.parseExpression()
	}
	rparen := p.consume(token.RPAREN, "expected ')' after for clauses")

	body := p.parseBlock()

	// 脱糖：incr 进循环体末尾
	if increment != nil {
		body.Statements = append(body.Statements, &ast.ExprStmt{
			Expr:      increment,
			Semicolon: rparen,
		})
	}

	loop := &ast.WhileStmt{
		WhileToken: forTok,
		Condition:  condition,
		Body:       body,
	}

	// 包装块：init 之后紧跟合成的 while
	var stmts []ast.Statement
	if init != nil {
		stmts = append(stmts, init)
	}
	stmts = append(stmts, loop)

	return &ast.BlockStmt{
		LBrace:     forTok,
		Statements: stmts,
		RBrace:     body.RBrace,
	}
}

// synthesizeTrue 在给定 token 的位置合成一个 true 字面量 token
func (p *Parser) synthesizeTrue(at token.Token) token.Token {
	return token.Token{
		Type:   token.TRUE,
		Start:  at.Start,
		Length: 0,
		Src:    at.Src,
		Line:   at.Line,
		Column: at.Column,
	}
}

func (p *Parser) parseReturnStmt() ast.Statement {
	keyword := p.advance() // return

	if p.match(token.SEMICOLON) {
		return &ast.ReturnEmptyStmt{Keyword: keyword}
	}

	value := p.parseExpression()
	p.consume(token.SEMICOLON, "expected ';' after return value")

	return &ast.ReturnStmt{
		Keyword: keyword,
		Value:   value,
	}
}

func (p *Parser) parseExprStmt() ast.Statement {
	expr := p.parseExpression()
	semicolon := p.consume(token.SEMICOLON, "expected ';' after expression")
	return &ast.ExprStmt{
		Expr:      expr,
		Semicolon: semicolon,
	}
}

// ============================================================================
// 表达式解析（优先级级联，从低到高）
// ============================================================================
//
// assignment (右结合)
//   → logicalOr → logicalAnd → bitOr → bitXor → bitAnd
//   → equality → relational → shift → additive → multiplicative
//   → unary (右递归) → postfix → primary
//
// 除赋值外所有二元层级都左结合。
//
// ============================================================================

func (p *Parser) parseExpression() ast.Expression {
	// 检查递归深度，防止栈溢出
	p.exprDepth++
	if p.exprDepth > maxExprDepth {
		p.error("expression too deeply nested")
	}
	defer func() { p.exprDepth-- }()

	return p.parseAssignment()
}

// parseAssignment 赋值层（右结合）
//
// 左侧必须是变量引用或属性访问，否则报 invalid assignment target。
func (p *Parser) parseAssignment() ast.Expression {
	expr := p.parseLogicalOr()

	switch p.peek().Type {
	case token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN,
		token.STAR_ASSIGN, token.SLASH_ASSIGN:
		op := p.advance()
		value := p.parseAssignment() // 右结合

		switch target := expr.(type) {
		case *ast.VariableExpr:
			return &ast.AssignExpr{Name: target.Name, Operator: op, Value: value}
		case *ast.PropertyAccessExpr:
			return &ast.PropertyAssignExpr{
				Object:   target.Object,
				Name:     target.Name,
				Operator: op,
				Value:    value,
			}
		default:
			p.errorAt(op, "invalid assignment target")
		}
	}

	return expr
}

func (p *Parser) parseLogicalOr() ast.Expression {
	left := p.parseLogicalAnd()
	for p.check(token.OR) {
		op := p.advance()
		right := p.parseLogicalAnd()
		left = &ast.LogicalExpr{Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expression {
	left := p.parseBitOr()
	for p.check(token.AND) {
		op := p.advance()
		right := p.parseBitOr()
		left = &ast.LogicalExpr{Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseBitOr() ast.Expression {
	left := p.parseBitXor()
	for p.check(token.BIT_OR) {
		op := p.advance()
		right := p.parseBitXor()
		left = &ast.BinaryExpr{Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseBitXor() ast.Expression {
	left := p.parseBitAnd()
	for p.check(token.BIT_XOR) {
		op := p.advance()
		right := p.parseBitAnd()
		left = &ast.BinaryExpr{Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseBitAnd() ast.Expression {
	left := p.parseEquality()
	for p.check(token.BIT_AND) {
		op := p.advance()
		right := p.parseEquality()
		left = &ast.BinaryExpr{Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseRelational()
	for p.check(token.EQ) || p.check(token.NE) {
		op := p.advance()
		right := p.parseRelational()
		left = &ast.BinaryExpr{Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseRelational() ast.Expression {
	left := p.parseShift()
	for p.check(token.LT) || p.check(token.LE) || p.check(token.GT) || p.check(token.GE) {
		op := p.advance()
		right := p.parseShift()
		left = &ast.BinaryExpr{Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseShift() ast.Expression {
	left := p.parseAdditive()
	for p.check(token.LEFT_SHIFT) || p.check(token.RIGHT_SHIFT) {
		op := p.advance()
		right := p.parseAdditive()
		left = &ast.BinaryExpr{Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.check(token.PLUS) || p.check(token.MINUS) {
		op := p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Left: left, Operator: op, Right: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseUnary()
	for p.check(token.STAR) || p.check(token.SLASH) || p.check(token.PERCENT) {
		op := p.advance()
		right := p.parseUnary()
		left = &ast.BinaryExpr{Left: left, Operator: op, Right: right}
	}
	return left
}

// parseUnary 前缀一元层（右递归）
func (p *Parser) parseUnary() ast.Expression {
	switch p.peek().Type {
	case token.NOT, token.MINUS, token.INCREMENT, token.DECREMENT:
		op := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Operator: op, Operand: operand}
	}
	return p.parsePostfix()
}

// parsePostfix 后缀链
//
// 调用 (...)、属性访问 .name、下标 [expr] 的任意序列，
// 从左到右依次套在 primary 上。
func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()

	for {
		switch p.peek().Type {
		case token.LPAREN:
			expr = p.finishCall(expr)
		case token.DOT:
			dot := p.advance()
			name := p.consume(token.IDENT, "expected property name after '.'")
			expr = &ast.PropertyAccessExpr{Object: expr, Dot: dot, Name: name}
		case token.LBRACKET:
			lbracket := p.advance()
			index := p.parseExpression()
			rbracket := p.consume(token.RBRACKET, "expected ']' after index")
			expr = &ast.IndexExpr{
				Object:   expr,
				LBracket: lbracket,
				Index:    index,
				RBracket: rbracket,
			}
		default:
			return expr
		}
	}
}

// finishCall 解析调用实参并构造 CallExpr
//
// 实参可以带 ref 修饰（ref 后必须紧跟标识符），标记按引用传递；
// 否则是完整的表达式。
func (p *Parser) finishCall(callee ast.Expression) ast.Expression {
	lparen := p.advance() // (

	var args []ast.Expression
	if !p.check(token.RPAREN) {
		for {
			args = append(args, p.parseCallArgument())
			if !p.match(token.COMMA) {
				break
			}
		}
	}

	rparen := p.consume(token.RPAREN, "expected ')' after arguments")

	return &ast.CallExpr{
		Callee:    callee,
		LParen:    lparen,
		Arguments: args,
		RParen:    rparen,
	}
}

func (p *Parser) parseCallArgument() ast.Expression {
	if p.check(token.REF) {
		p.advance()
		name := p.consume(token.IDENT, "expected variable name after 'ref'")
		return &ast.VariableExpr{Name: name, Ref: true}
	}
	return p.parseExpression()
}

// parsePrimary 基本表达式
func (p *Parser) parsePrimary() ast.Expression {
	switch p.peek().Type {
	case token.INT, token.UINT, token.LONG, token.ULONG,
		token.FLOAT, token.DOUBLE, token.STRING,
		token.TRUE, token.FALSE:
		return &ast.LiteralExpr{Token: p.advance()}

	case token.LPAREN:
		lparen := p.advance()
		expr := p.parseExpression()
		rparen := p.consume(token.RPAREN, "expected ')' after expression")
		return &ast.GroupExpr{LParen: lparen, Expr: expr, RParen: rparen}

	case token.IDENT:
		name := p.advance()
		// 标识符紧跟 ++/-- 构成后缀自增/自减节点
		if p.check(token.INCREMENT) || p.check(token.DECREMENT) {
			op := p.advance()
			return &ast.PostfixExpr{Operand: name, Operator: op}
		}
		return &ast.VariableExpr{Name: name}

	case token.NEW:
		return p.parseNewExpr()

	case token.FUN:
		return &ast.FuncTypeExpr{Type: p.parseFuncType()}

	default:
		p.error(fmt.Sprintf("unexpected token: %s", p.peek().Type))
		return nil
	}
}

// parseNewExpr 解析 new 表达式
//
// new T[n]([m]...)  定长数组构造，每个维度一个大小表达式，
//
//	类型嵌套成多维数组 Type-Info；
//
// new T()           无参结构体构造。
func (p *Parser) parseNewExpr() ast.Expression {
	newTok := p.advance() // new

	var nameTok token.Token
	switch {
	case token.IsTypeKeyword(p.peek().Type), p.check(token.IDENT):
		nameTok = p.advance()
	default:
		p.error("expected type name after 'new'")
	}

	base := &ast.NamedType{Name: nameTok}

	// 数组构造：元素类型后紧跟 [
	if p.check(token.LBRACKET) {
		var sizes []ast.Expression
		var t ast.TypeNode = base
		for p.check(token.LBRACKET) {
			lbracket := p.advance()
			size := p.parseExpression()
			rbracket := p.consume(token.RBRACKET, "expected ']' after array size")
			sizes = append(sizes, size)
			t = &ast.ArrayType{Element: t, LBracket: lbracket, RBracket: rbracket}
		}
		return &ast.NewArrayExpr{
			NewToken: newTok,
			Type:     t,
			Sizes:    sizes,
		}
	}

	// 结构体构造：无参调用形式
	p.consume(token.LPAREN, "expected '(' after type name")
	p.consume(token.RPAREN, "expected ')' in struct constructor")

	return &ast.NewStructExpr{
		NewToken: newTok,
		Type:     base,
	}
}
