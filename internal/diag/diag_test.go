package diag

import "testing"

func TestBagReportOrder(t *testing.T) {
	bag := NewBag("main.sn")
	if bag.HasErrors() {
		t.Fatal("new bag should be empty")
	}

	bag.Report(3, 7, "unexpected character '@'")
	bag.Report(1, 2, "unterminated string")

	if !bag.HasErrors() {
		t.Fatal("HasErrors() = false after Report")
	}
	if bag.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", bag.Count())
	}

	// 报告顺序即读取顺序，不去重不排序
	entries := bag.Entries()
	if entries[0].Line != 3 || entries[1].Line != 1 {
		t.Errorf("entries out of report order: %v", entries)
	}
}

func TestEntryFormat(t *testing.T) {
	bag := NewBag("src/main.sn")
	bag.Report(12, 5, "expected ';' after expression")

	got := bag.Entries()[0].String()
	want := "Parse error at src/main.sn:12,5 - expected ';' after expression"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

// 相同消息重复报告不去重
func TestNoDeduplication(t *testing.T) {
	bag := NewBag("main.sn")
	bag.Report(1, 1, "unexpected character '@'")
	bag.Report(1, 1, "unexpected character '@'")
	if bag.Count() != 2 {
		t.Errorf("Count() = %d, want 2", bag.Count())
	}
}
