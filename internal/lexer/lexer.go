package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tangzhangming/seanet/internal/diag"
	"github.com/tangzhangming/seanet/internal/token"
)

// ============================================================================
// Lexer - 词法分析器
// ============================================================================
//
// 词法分析器对源代码做单次从左到右扫描，产出 Token 序列。
//
// 契约：
// 1. 永远正常返回，序列以且仅以一个 EOF token 结尾；
// 2. 任何词法缺陷（非法字符、未闭合字符串/注释、畸形数字）
//    都报告到诊断收集器后继续扫描，一次扫描可收集多个独立错误；
// 3. 出错的词素不产生 token，直接跳过；
// 4. Token 是源缓冲区上的只读视图（偏移+长度），不复制文本。
//
// ============================================================================

// Lexer 词法分析器结构体
type Lexer struct {
	source   string    // 源代码字符串（编译单元持有的唯一缓冲区）
	filename string    // 源文件标识（仅用于诊断）
	diags    *diag.Bag // 诊断收集器（借用，不拥有）

	tokens []token.Token // 已扫描的 Token 列表

	start   int // 当前 Token 的起始位置（字节偏移）
	current int // 当前扫描位置（字节偏移）
	line    int // 当前行号（从1开始）
	column  int // 当前列号（从1开始）

	startLine   int // 当前 Token 起始行号（字符串/块注释可跨行）
	startColumn int // 当前 Token 起始列号
}

// New 创建一个新的词法分析器
//
// 参数:
//   - source: 源代码字符串
//   - filename: 源文件标识（仅用于诊断消息）
//   - diags: 诊断收集器，扫描期间的词法错误都报告到这里
//
// 预分配 tokens 切片容量，经验值为 源码长度/5。
func New(source, filename string, diags *diag.Bag) *Lexer {
	estimatedTokens := len(source) / 5
	if estimatedTokens < 16 {
		estimatedTokens = 16
	}

	return &Lexer{
		source:   source,
		filename: filename,
		diags:    diags,
		tokens:   make([]token.Token, 0, estimatedTokens),
		line:     1,
		column:   1,
	}
}

// ScanTokens 扫描所有 tokens
//
// 这是词法分析的主入口。无论输入内容如何（包括空串），
// 返回的序列总是以一个 EOF token 结尾。
func (l *Lexer) ScanTokens() []token.Token {
	for !l.isAtEnd() {
		// 记录当前 token 的起始位置
		l.start = l.current
		l.startLine = l.line
		l.startColumn = l.column
		l.scanToken()
	}

	// 添加 EOF token 标记文件结束
	l.tokens = append(l.tokens, token.Token{
		Type:   token.EOF,
		Start:  len(l.source),
		Length: 0,
		Src:    l.source,
		Line:   l.line,
		Column: l.column,
	})

	return l.tokens
}

// ============================================================================
// 核心扫描逻辑
// ============================================================================

// scanToken 扫描单个 token
//
// 按首字符分派。双字符运算符用贪婪的单字符前瞻识别，
// 失配时退回单字符形式。
func (l *Lexer) scanToken() {
	ch := l.advance()

	switch ch {

	// ----------------------------------------------------------
	// 空白字符
	// ----------------------------------------------------------
	case ' ', '\t', '\r':
		// 跳过，不产生 token

	case '\n':
		l.newLine()

	// ----------------------------------------------------------
	// 单字符分隔符
	// ----------------------------------------------------------
	case '{':
		l.addToken(token.LBRACE)
	case '}':
		l.addToken(token.RBRACE)
	case '(':
		l.addToken(token.LPAREN)
	case ')':
		l.addToken(token.RPAREN)
	case '[':
		l.addToken(token.LBRACKET)
	case ']':
		l.addToken(token.RBRACKET)
	case ',':
		l.addToken(token.COMMA)
	case '.':
		l.addToken(token.DOT)
	case ';':
		l.addToken(token.SEMICOLON)

	// ----------------------------------------------------------
	// 可复合的运算符
	// ----------------------------------------------------------
	case '+':
		// + 或 ++ 或 +=
		if l.match('+') {
			l.addToken(token.INCREMENT)
		} else if l.match('=') {
			l.addToken(token.PLUS_ASSIGN)
		} else {
			l.addToken(token.PLUS)
		}

	case '-':
		// - 或 -- 或 -=
		if l.match('-') {
			l.addToken(token.DECREMENT)
		} else if l.match('=') {
			l.addToken(token.MINUS_ASSIGN)
		} else {
			l.addToken(token.MINUS)
		}

	case '*':
		// * 或 *=
		if l.match('=') {
			l.addToken(token.STAR_ASSIGN)
		} else {
			l.addToken(token.STAR)
		}

	case '/':
		// / 或 /= 或 // 注释 或 /* 块注释
		if l.match('/') {
			l.lineComment()
		} else if l.match('*') {
			l.blockComment()
		} else if l.match('=') {
			l.addToken(token.SLASH_ASSIGN)
		} else {
			l.addToken(token.SLASH)
		}

	case '%':
		l.addToken(token.PERCENT)

	case '=':
		// = 或 ==
		if l.match('=') {
			l.addToken(token.EQ)
		} else {
			l.addToken(token.ASSIGN)
		}

	case '!':
		// ! 或 !=
		if l.match('=') {
			l.addToken(token.NE)
		} else {
			l.addToken(token.NOT)
		}

	case '<':
		// < 或 <= 或 <<
		if l.match('=') {
			l.addToken(token.LE)
		} else if l.match('<') {
			l.addToken(token.LEFT_SHIFT)
		} else {
			l.addToken(token.LT)
		}

	case '>':
		// > 或 >= 或 >>
		if l.match('=') {
			l.addToken(token.GE)
		} else if l.match('>') {
			l.addToken(token.RIGHT_SHIFT)
		} else {
			l.addToken(token.GT)
		}

	case '&':
		// & 或 &&
		if l.match('&') {
			l.addToken(token.AND)
		} else {
			l.addToken(token.BIT_AND)
		}

	case '|':
		// | 或 ||
		if l.match('|') {
			l.addToken(token.OR)
		} else {
			l.addToken(token.BIT_OR)
		}

	case '^':
		l.addToken(token.BIT_XOR)

	// ----------------------------------------------------------
	// 字符串字面量
	// ----------------------------------------------------------
	case '"':
		l.stringLiteral()

	// ----------------------------------------------------------
	// 默认：数字、标识符或非法字符
	// ----------------------------------------------------------
	default:
		if isDigit(ch) {
			l.number()
		} else if isAlpha(ch) {
			l.identifier()
		} else {
			// 非法字符：报告并跳过，不产生 token
			l.error(fmt.Sprintf("unexpected character '%c'", ch))
		}
	}
}

// ============================================================================
// 注释处理
// ============================================================================

// lineComment 处理单行注释 //
//
// 单行注释到行尾或文件结束。内容被丢弃，不生成 Token。
func (l *Lexer) lineComment() {
	for !l.isAtEnd() && l.peek() != '\n' {
		l.advance()
	}
	// 不消费换行符，让主循环处理（更新行号）
}

// blockComment 处理块注释 /* */
//
// 块注释可以跨行，内部的换行要更新行号。
// 不支持嵌套：遇到的第一个 */ 即结束。
// 扫到文件末尾仍未闭合时报告错误，不生成 Token。
func (l *Lexer) blockComment() {
	for !l.isAtEnd() {
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			return
		}
		if l.peek() == '\n' {
			l.advance()
			l.newLine()
			continue
		}
		l.advance()
	}

	l.error("unterminated block comment")
}

// ============================================================================
// 字符串处理
// ============================================================================

// stringLiteral 处理字符串字面量
//
// 字符串内容原样消费，不做任何转义处理，直到下一个 " 为止，
// 允许跨行（内部换行更新行号）。扫到文件末尾仍未闭合时报告
// "unterminated string"，不生成 Token。
func (l *Lexer) stringLiteral() {
	contentStart := l.current // 引号之后

	for !l.isAtEnd() && l.peek() != '"' {
		if l.peek() == '\n' {
			l.advance()
			l.newLine()
			continue
		}
		l.advance()
	}

	if l.isAtEnd() {
		l.error("unterminated string")
		return
	}

	// 内容不含引号，直接切片，零拷贝
	value := l.source[contentStart:l.current]
	l.advance() // 跳过结束引号

	l.addTokenWithValue(token.STRING, value)
}

// ============================================================================
// 数字处理
// ============================================================================

// number 处理数字字面量
//
// 支持的格式与结果类型：
//   - 123       -> INT    (int32)
//   - 123u      -> UINT   (uint32)
//   - 123l      -> LONG   (int64)
//   - 123ul     -> ULONG  (uint64)
//   - 1.5       -> DOUBLE (float64)
//   - 1.5f      -> FLOAT  (float32)
//   - 1e10      -> DOUBLE (float64)
//   - 0x1F      -> INT    (int32)
//
// 注意基数标记只在先读完一段十进制数字后才检查，
// 因此十六进制字面量必须以十进制数字开头（0x...）。
// 解析失败（越界或畸形数字）报告错误并不产生 token。
func (l *Lexer) number() {
	// 十进制数字段
	for isDigit(l.peek()) {
		l.advance()
	}

	// ==========================================================
	// 十六进制 0x...
	// ==========================================================
	if l.peek() == 'x' || l.peek() == 'X' {
		l.advance() // 跳过 'x' 或 'X'
		for isHexDigit(l.peek()) {
			l.advance()
		}

		literal := l.source[l.start:l.current]

		// 去掉 0x/0X 前缀后按 16 进制解析
		digits := literal
		if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
			digits = digits[2:]
		}
		value, err := strconv.ParseUint(digits, 16, 32)
		if err != nil {
			l.error(fmt.Sprintf("invalid hex number: %s", literal))
			return
		}
		l.addTokenWithValue(token.INT, int32(value))
		return
	}

	// ==========================================================
	// 浮点数：小数部分或科学计数法
	// ==========================================================
	isFloat := false

	if l.peek() == '.' && isDigit(l.peekNext()) {
		isFloat = true
		l.advance() // 跳过 '.'
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		isFloat = true
		l.advance() // 跳过 'e' 或 'E'
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		for isDigit(l.peek()) {
			l.advance()
		}
	}

	if isFloat {
		// 可选的 f/F 后缀选择 32 位结果，解析前剥掉
		if l.peek() == 'f' || l.peek() == 'F' {
			l.advance()
			literal := l.source[l.start:l.current]
			value, err := strconv.ParseFloat(literal[:len(literal)-1], 32)
			if err != nil {
				l.error(fmt.Sprintf("invalid float number: %s", literal))
				return
			}
			l.addTokenWithValue(token.FLOAT, float32(value))
			return
		}

		literal := l.source[l.start:l.current]
		value, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			l.error(fmt.Sprintf("invalid float number: %s", literal))
			return
		}
		l.addTokenWithValue(token.DOUBLE, value)
		return
	}

	// ==========================================================
	// 整数：按后缀决定符号与宽度
	//   u/U      -> uint32    u/U + l/L -> uint64
	//   l/L      -> int64     无后缀     -> int32
	// ==========================================================
	digits := l.source[l.start:l.current]

	if l.peek() == 'u' || l.peek() == 'U' {
		l.advance()
		if l.peek() == 'l' || l.peek() == 'L' {
			l.advance()
			value, err := strconv.ParseUint(digits, 10, 64)
			if err != nil {
				l.error(fmt.Sprintf("invalid integer: %s", l.source[l.start:l.current]))
				return
			}
			l.addTokenWithValue(token.ULONG, value)
			return
		}
		value, err := strconv.ParseUint(digits, 10, 32)
		if err != nil {
			l.error(fmt.Sprintf("invalid integer: %s", l.source[l.start:l.current]))
			return
		}
		l.addTokenWithValue(token.UINT, uint32(value))
		return
	}

	if l.peek() == 'l' || l.peek() == 'L' {
		l.advance()
		value, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			l.error(fmt.Sprintf("invalid integer: %s", l.source[l.start:l.current]))
			return
		}
		l.addTokenWithValue(token.LONG, value)
		return
	}

	value, err := strconv.ParseInt(digits, 10, 32)
	if err != nil {
		l.error(fmt.Sprintf("invalid integer: %s", digits))
		return
	}
	l.addTokenWithValue(token.INT, int32(value))
}

// ============================================================================
// 标识符处理
// ============================================================================

// identifier 处理标识符和关键字
//
// 标识符是贪婪的字母数字串，扫描完成后精确匹配关键字表。
func (l *Lexer) identifier() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}

	text := l.source[l.start:l.current]
	l.addToken(token.LookupIdent(text))
}

// ============================================================================
// 底层字符操作
// ============================================================================

// isAtEnd 检查是否到达源代码末尾
func (l *Lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

// advance 前进一个字节并返回它
func (l *Lexer) advance() byte {
	if l.isAtEnd() {
		return 0
	}
	b := l.source[l.current]
	l.current++
	l.column++
	return b
}

// peek 查看当前字节但不前进
func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

// peekNext 查看下一个字节但不前进
func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

// match 如果当前字节匹配则前进
//
// 用于识别双字符运算符，如 == != <= ++ 等。
func (l *Lexer) match(expected byte) bool {
	if l.isAtEnd() || l.source[l.current] != expected {
		return false
	}
	l.current++
	l.column++
	return true
}

// newLine 处理换行，更新行列计数器
func (l *Lexer) newLine() {
	l.line++
	l.column = 1
}

// ============================================================================
// Token 生成
// ============================================================================

// addToken 添加一个无值的 Token
func (l *Lexer) addToken(tokenType token.TokenType) {
	l.tokens = append(l.tokens, token.Token{
		Type:   tokenType,
		Start:  l.start,
		Length: l.current - l.start,
		Src:    l.source,
		Line:   l.startLine,
		Column: l.startColumn,
	})
}

// addTokenWithValue 添加一个带值的 Token
//
// 用于数字和字符串字面量，Value 字段存储解析后的值。
func (l *Lexer) addTokenWithValue(tokenType token.TokenType, value interface{}) {
	l.tokens = append(l.tokens, token.Token{
		Type:   tokenType,
		Start:  l.start,
		Length: l.current - l.start,
		Src:    l.source,
		Line:   l.startLine,
		Column: l.startColumn,
		Value:  value,
	})
}

// ============================================================================
// 错误处理
// ============================================================================

// error 报告一个词法错误
//
// 错误进入诊断收集器，扫描继续，当前词素不产生 token。
func (l *Lexer) error(message string) {
	l.diags.Report(l.startLine, l.startColumn, message)
}

// ============================================================================
// 字符分类函数
// ============================================================================

// isDigit 判断是否为数字 0-9
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// isHexDigit 判断是否为十六进制数字 0-9, a-f, A-F
func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// isAlpha 判断是否为字母或下划线
func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

// isAlphaNumeric 判断是否为字母、数字或下划线
func isAlphaNumeric(ch byte) bool {
	return isAlpha(ch) || isDigit(ch)
}
