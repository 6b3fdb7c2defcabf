// Package diag 实现诊断收集器。
//
// 扫描器和解析器不直接向调用方暴露错误，所有词法/语法问题
// 都追加到同一个 Bag 里，调用方事后检查。条目保持报告顺序，
// 不去重、不重试。
//
// Bag 不支持并发写入：并行编译多个文件时每个文件用独立的
// Bag，完成后由调用方合并。
package diag

import "fmt"

// Entry 一条诊断记录
type Entry struct {
	File    string // 文件标识（仅用于消息展示）
	Line    int    // 行号 (从1开始)
	Column  int    // 列号 (从1开始)
	Message string // 错误信息
}

// String 返回格式化后的诊断文本
//
// 格式固定为 "Parse error at file:line,column - message"，
// 调用方按原样输出。
func (e Entry) String() string {
	return fmt.Sprintf("Parse error at %s:%d,%d - %s", e.File, e.Line, e.Column, e.Message)
}

// Bag 按顺序累积诊断记录
type Bag struct {
	file    string
	entries []Entry
}

// NewBag 创建一个针对单个文件的诊断收集器
func NewBag(file string) *Bag {
	return &Bag{file: file}
}

// File 返回收集器绑定的文件标识
func (b *Bag) File() string {
	return b.file
}

// Report 追加一条诊断记录
func (b *Bag) Report(line, column int, message string) {
	b.entries = append(b.entries, Entry{
		File:    b.file,
		Line:    line,
		Column:  column,
		Message: message,
	})
}

// HasErrors 检查是否有诊断记录
func (b *Bag) HasErrors() bool {
	return len(b.entries) > 0
}

// Entries 返回所有诊断记录（只读视图，调用方不得修改）
func (b *Bag) Entries() []Entry {
	return b.entries
}

// Count 返回诊断记录数量
func (b *Bag) Count() int {
	return len(b.entries)
}
