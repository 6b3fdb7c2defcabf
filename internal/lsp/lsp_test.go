package lsp

import (
	"strings"
	"testing"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

const testURI = uri.URI("file:///project/main.sn")

func TestAnalyzeCleanSource(t *testing.T) {
	diags := analyze(testURI, "int main() { return 0; }")
	if len(diags) != 0 {
		t.Errorf("diagnostics = %v, want none", diags)
	}
}

func TestAnalyzeSyntaxError(t *testing.T) {
	// 第 2 行缺少分号
	diags := analyze(testURI, "int main() {\n  return 0\n}")
	if len(diags) != 1 {
		t.Fatalf("diagnostic count = %d, want 1", len(diags))
	}

	d := diags[0]
	if d.Severity != protocol.DiagnosticSeverityError {
		t.Errorf("severity = %v, want error", d.Severity)
	}
	if d.Source != "seanet" {
		t.Errorf("source = %q, want seanet", d.Source)
	}
	// LSP 位置从 0 起：第 3 行的 } 处报错 -> Line 2
	if d.Range.Start.Line != 2 {
		t.Errorf("line = %d, want 2", d.Range.Start.Line)
	}
}

// 扫描错误与解析错误都出现在诊断列表里
func TestAnalyzeScanErrors(t *testing.T) {
	diags := analyze(testURI, "int main() { @ return 0; }")
	if len(diags) != 1 {
		t.Fatalf("diagnostic count = %d, want 1", len(diags))
	}
	if !strings.Contains(diags[0].Message, "unexpected character") {
		t.Errorf("message = %q", diags[0].Message)
	}
}

// 重复分析各自独立：前一轮的诊断不会串到下一轮
func TestAnalyzeIsStateless(t *testing.T) {
	if diags := analyze(testURI, "int main() { return 0\n}"); len(diags) != 1 {
		t.Fatalf("first pass diagnostic count = %d, want 1", len(diags))
	}
	if diags := analyze(testURI, "int main() { return 0; }"); len(diags) != 0 {
		t.Errorf("second pass diagnostics = %v, want none", diags)
	}
}

func TestFilenameOf(t *testing.T) {
	if got := filenameOf(testURI); got != "/project/main.sn" {
		t.Errorf("filenameOf = %q, want /project/main.sn", got)
	}
	// 非 file scheme 原样返回
	if got := filenameOf(uri.URI("untitled:Untitled-1")); got != "untitled:Untitled-1" {
		t.Errorf("filenameOf = %q", got)
	}
}

func TestDocumentStore(t *testing.T) {
	store := newDocumentStore()

	store.Open(testURI, "int x;", 1)
	if doc := store.Get(testURI); doc == nil || doc.Text != "int x;" || doc.Version != 1 {
		t.Fatalf("Get after Open = %+v", store.Get(testURI))
	}

	store.Update(testURI, "int y;", 2)
	if doc := store.Get(testURI); doc.Text != "int y;" || doc.Version != 2 {
		t.Errorf("Get after Update = %+v", doc)
	}

	store.Close(testURI)
	if doc := store.Get(testURI); doc != nil {
		t.Errorf("Get after Close = %+v, want nil", doc)
	}
}
