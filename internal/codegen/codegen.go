// Package codegen 实现 Seanet 编译产物的生成
//
// 当前是占位后端：消费完整的 AST，产出固定指令序列的二进制产物。
// 产物格式（文件头 + 指令块）是稳定的，指令选择后续替换为真实的
// 代码生成，格式和加载方不用动。
package codegen

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/tangzhangming/seanet/internal/ast"
)

// Generator 产物生成器
type Generator struct {
	kind Kind
}

// New 创建产物生成器
func New(kind Kind) *Generator {
	return &Generator{kind: kind}
}

// Generate 从 AST 生成产物字节
//
// 占位实现按约定不读取 AST 内容，只要求它非空（解析失败的空
// Program 不应该走到这一步）。
func (g *Generator) Generate(prog *ast.Program) ([]byte, error) {
	if prog == nil {
		return nil, fmt.Errorf("codegen: nil program")
	}

	code := g.emitCode()

	buf := new(bytes.Buffer)
	g.writeHeader(buf, uint32(HeaderSize), uint32(len(code)))
	buf.Write(code)

	return buf.Bytes(), nil
}

// WriteFile 生成产物并写入文件
func (g *Generator) WriteFile(path string, prog *ast.Program) error {
	data, err := g.Generate(prog)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("codegen: failed to write artifact: %w", err)
	}
	return nil
}

// writeHeader 写入文件头
func (g *Generator) writeHeader(buf *bytes.Buffer, entryOffset, codeLength uint32) {
	// Magic (4 bytes)
	binary.Write(buf, binary.BigEndian, MagicNumber)
	// Version (2 bytes)
	buf.WriteByte(MajorVersion)
	buf.WriteByte(MinorVersion)
	// Kind (1 byte)
	buf.WriteByte(uint8(g.kind))
	// 保留 (1 byte)
	buf.WriteByte(0)
	// EntryOffset (4 bytes)
	binary.Write(buf, binary.BigEndian, entryOffset)
	// CodeLength (4 bytes)
	binary.Write(buf, binary.BigEndian, codeLength)
}

// emitCode 产出固定指令序列
func (g *Generator) emitCode() []byte {
	return []byte{
		OpNop,
		OpExit, 0, // 退出码 0
		OpHalt,
	}
}
