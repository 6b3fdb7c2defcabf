package lsp

import (
	"strings"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/tangzhangming/seanet/internal/diag"
	"github.com/tangzhangming/seanet/internal/lexer"
	"github.com/tangzhangming/seanet/internal/parser"
)

// analyze 对文档内容做一次完整的扫描与解析，返回 LSP 诊断列表
//
// 每次分析都创建新的诊断收集器：收集器按编译单元一次性使用，
// 不支持并发写入，也不跨编译复用。
func analyze(docURI uri.URI, content string) []protocol.Diagnostic {
	filename := filenameOf(docURI)

	bag := diag.NewBag(filename)
	tokens := lexer.New(content, filename, bag).ScanTokens()
	parser.New(tokens, bag).Parse()

	return toDiagnostics(bag)
}

// filenameOf 从文档 URI 取文件路径
//
// 编辑器按规范发 file:// URI；其他 scheme 原样返回，只影响
// 诊断消息里的文件名显示。
func filenameOf(docURI uri.URI) string {
	if strings.HasPrefix(string(docURI), "file://") {
		return docURI.Filename()
	}
	return string(docURI)
}

// toDiagnostics 把收集器里的条目转换为 LSP 诊断
//
// 收集器的行列号从 1 起，LSP 位置从 0 起。
func toDiagnostics(bag *diag.Bag) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, bag.Count())
	for _, e := range bag.Entries() {
		var line, col uint32
		if e.Line > 0 {
			line = uint32(e.Line - 1)
		}
		if e.Column > 0 {
			col = uint32(e.Column - 1)
		}

		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: line, Character: col},
				End:   protocol.Position{Line: line, Character: col + 1},
			},
			Severity: protocol.DiagnosticSeverityError,
			Source:   "seanet",
			Message:  e.Message,
		})
	}
	return diagnostics
}
