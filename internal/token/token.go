package token

import "fmt"

// ============================================================================
// Token 类型定义
// ============================================================================
//
// TokenType 使用 iota 自动编号，按类别分组：
// 1. 特殊标记（EOF, COMMENT）
// 2. 分隔符（括号、逗号、分号等）
// 3. 运算符（算术、比较、逻辑、位运算及其复合形式）
// 4. 字面量（字符串、各宽度整数、浮点数、布尔）
// 5. 关键字（控制流、声明、原生类型名）
//
// ============================================================================

// TokenType 表示 Token 的类型
type TokenType int

const (
	// ----------------------------------------------------------
	// 特殊标记
	// ----------------------------------------------------------
	EOF     TokenType = iota // 文件结束
	COMMENT                  // 注释（扫描器消费后丢弃，类型保留）

	// ----------------------------------------------------------
	// 分隔符
	// ----------------------------------------------------------
	LBRACE    // {
	RBRACE    // }
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	COMMA     // ,
	DOT       // .
	SEMICOLON // ;

	// ----------------------------------------------------------
	// 算术运算符
	// ----------------------------------------------------------
	PLUS         // +
	MINUS        // -
	STAR         // *
	SLASH        // /
	PERCENT      // %
	ASSIGN       // =
	PLUS_ASSIGN  // +=
	MINUS_ASSIGN // -=
	STAR_ASSIGN  // *=
	SLASH_ASSIGN // /=
	INCREMENT    // ++
	DECREMENT    // --

	// ----------------------------------------------------------
	// 比较运算符
	// ----------------------------------------------------------
	EQ // ==
	NE // !=
	LT // <
	LE // <=
	GT // >
	GE // >=

	// ----------------------------------------------------------
	// 逻辑运算符
	// ----------------------------------------------------------
	AND // &&
	OR  // ||
	NOT // !

	// ----------------------------------------------------------
	// 位运算符
	// ----------------------------------------------------------
	BIT_AND     // &
	BIT_OR      // |
	BIT_XOR     // ^
	LEFT_SHIFT  // <<
	RIGHT_SHIFT // >>

	// ----------------------------------------------------------
	// 字面量
	// ----------------------------------------------------------
	STRING // 字符串字面量
	INT    // 32位有符号整数
	UINT   // 32位无符号整数（u 后缀）
	LONG   // 64位有符号整数（l 后缀）
	ULONG  // 64位无符号整数（ul 后缀）
	FLOAT  // 32位浮点数（f 后缀）
	DOUBLE // 64位浮点数
	BOOL   // 布尔字面量（保留，见关键字表说明）

	// ----------------------------------------------------------
	// 关键字 - 控制流与声明
	// ----------------------------------------------------------
	keyword_beg // 关键字起始标记（不是实际 token）
	TRUE        // true
	FALSE       // false
	IF          // if
	ELSE        // else
	RETURN      // return
	FOR         // for
	WHILE       // while
	BREAK       // break（"continue" 也映射到此类型，见 keywords 表）
	VAR         // var
	REF         // ref
	FUN         // fun
	NEW         // new

	// ----------------------------------------------------------
	// 关键字 - 原生类型
	// ----------------------------------------------------------
	BYTE_TYPE   // byte
	SHORT_TYPE  // short
	USHORT_TYPE // ushort
	INT_TYPE    // int
	UINT_TYPE   // uint
	LONG_TYPE   // long
	ULONG_TYPE  // ulong
	FLOAT_TYPE  // float
	DOUBLE_TYPE // double
	BOOL_TYPE   // bool
	VOID        // void
	STRING_TYPE // string
	keyword_end // 关键字结束标记（不是实际 token）

	// ----------------------------------------------------------
	// 标识符
	// ----------------------------------------------------------
	IDENT // 标识符（变量名、函数名、结构体名等）
)

// ============================================================================
// Token 类型名称映射
// ============================================================================

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	COMMENT: "COMMENT",

	LBRACE:    "{",
	RBRACE:    "}",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",
	COMMA:     ",",
	DOT:       ".",
	SEMICOLON: ";",

	PLUS:         "+",
	MINUS:        "-",
	STAR:         "*",
	SLASH:        "/",
	PERCENT:      "%",
	ASSIGN:       "=",
	PLUS_ASSIGN:  "+=",
	MINUS_ASSIGN: "-=",
	STAR_ASSIGN:  "*=",
	SLASH_ASSIGN: "/=",
	INCREMENT:    "++",
	DECREMENT:    "--",

	EQ: "==",
	NE: "!=",
	LT: "<",
	LE: "<=",
	GT: ">",
	GE: ">=",

	AND: "&&",
	OR:  "||",
	NOT: "!",

	BIT_AND:     "&",
	BIT_OR:      "|",
	BIT_XOR:     "^",
	LEFT_SHIFT:  "<<",
	RIGHT_SHIFT: ">>",

	STRING: "STRING",
	INT:    "INT",
	UINT:   "UINT",
	LONG:   "LONG",
	ULONG:  "ULONG",
	FLOAT:  "FLOAT",
	DOUBLE: "DOUBLE",
	BOOL:   "BOOL",

	TRUE:   "true",
	FALSE:  "false",
	IF:     "if",
	ELSE:   "else",
	RETURN: "return",
	FOR:    "for",
	WHILE:  "while",
	BREAK:  "break",
	VAR:    "var",
	REF:    "ref",
	FUN:    "fun",
	NEW:    "new",

	BYTE_TYPE:   "byte",
	SHORT_TYPE:  "short",
	USHORT_TYPE: "ushort",
	INT_TYPE:    "int",
	UINT_TYPE:   "uint",
	LONG_TYPE:   "long",
	ULONG_TYPE:  "ulong",
	FLOAT_TYPE:  "float",
	DOUBLE_TYPE: "double",
	BOOL_TYPE:   "bool",
	VOID:        "void",
	STRING_TYPE: "string",

	IDENT: "IDENT",
}

// ============================================================================
// 关键字查找表
// ============================================================================
//
// keywords 将关键字字符串精确映射到对应的 TokenType。
// 扫描器用它区分标识符和关键字。
//
// 两处沿袭基线的行为，刻意保留（见 DESIGN.md）：
// 1. "continue" 映射到 BREAK 类型；
// 2. 表中没有 "bool" 条目，bool 作为标识符扫描，
//    声明解析仍通过"标识符后跟标识符"规则成立。
//
// ============================================================================

var keywords = map[string]TokenType{
	"true":     TRUE,
	"false":    FALSE,
	"if":       IF,
	"else":     ELSE,
	"return":   RETURN,
	"for":      FOR,
	"while":    WHILE,
	"break":    BREAK,
	"continue": BREAK,
	"var":      VAR,
	"ref":      REF,
	"fun":      FUN,
	"new":      NEW,

	"byte":   BYTE_TYPE,
	"short":  SHORT_TYPE,
	"ushort": USHORT_TYPE,
	"int":    INT_TYPE,
	"uint":   UINT_TYPE,
	"long":   LONG_TYPE,
	"ulong":  ULONG_TYPE,
	"float":  FLOAT_TYPE,
	"double": DOUBLE_TYPE,
	"void":   VOID,
	"string": STRING_TYPE,
}

// LookupIdent 查找标识符是否为关键字
//
// 精确字符串匹配：如果是关键字返回对应类型，否则返回 IDENT。
// "iffy" 这类以关键字开头的标识符不会被误判。
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword 判断 TokenType 是否为关键字
func IsKeyword(t TokenType) bool {
	return t > keyword_beg && t < keyword_end
}

// IsTypeKeyword 判断 TokenType 是否为原生类型关键字
//
// 注意：BOOL_TYPE 包含在内，虽然扫描器的关键字表没有 "bool" 条目。
// 解析器的类型匹配按此函数判断，与基线保持一致。
func IsTypeKeyword(t TokenType) bool {
	switch t {
	case BYTE_TYPE, SHORT_TYPE, USHORT_TYPE, INT_TYPE, UINT_TYPE,
		LONG_TYPE, ULONG_TYPE, FLOAT_TYPE, DOUBLE_TYPE, BOOL_TYPE, STRING_TYPE:
		return true
	}
	return false
}

// String 返回 TokenType 的字符串表示
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// ============================================================================
// Position - 源代码位置
// ============================================================================

// Position 表示源代码中的位置
type Position struct {
	Line   int // 行号 (从1开始)
	Column int // 列号 (从1开始)
	Offset int // 字节偏移量 (从0开始)
}

// String 返回位置的字符串表示，格式为 "line:column"
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid 检查位置是否有效
func (p Position) IsValid() bool {
	return p.Line > 0
}

// ============================================================================
// Token - 词法单元
// ============================================================================

// Token 表示一个词法单元。
//
// Token 不复制源文本：它只记录在源串中的偏移和长度，
// Src 与整个编译单元共享同一个源缓冲区（Go 字符串切片共享底层数组）。
// 词素通过 Lexeme() 按需切片取得。
//
// 不变式：Start+Length <= len(Src)。
type Token struct {
	Type   TokenType   // Token 类型
	Start  int         // 词素起始字节偏移
	Length int         // 词素字节长度
	Src    string      // 源缓冲区引用（非拷贝）
	Line   int         // 行号 (从1开始)
	Column int         // 列号 (从1开始)
	Value  interface{} // 解析后的字面量值 (数字、字符串)，无则为 nil
}

// Lexeme 返回产生该 Token 的源文本切片
func (t Token) Lexeme() string {
	return t.Src[t.Start : t.Start+t.Length]
}

// Pos 返回 Token 的起始位置
func (t Token) Pos() Position {
	return Position{Line: t.Line, Column: t.Column, Offset: t.Start}
}

// End 返回 Token 之后的位置（同一行内按字节计列号）
func (t Token) End() Position {
	return Position{Line: t.Line, Column: t.Column + t.Length, Offset: t.Start + t.Length}
}

// String 返回 Token 的字符串表示（用于调试和 -tokens 输出）
func (t Token) String() string {
	switch t.Type {
	case IDENT, STRING, INT, UINT, LONG, ULONG, FLOAT, DOUBLE:
		return fmt.Sprintf("%s(%s) at %s", t.Type, t.Lexeme(), t.Pos())
	case EOF:
		return fmt.Sprintf("EOF at %s", t.Pos())
	default:
		return fmt.Sprintf("%s at %s", t.Type, t.Pos())
	}
}
