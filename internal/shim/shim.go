// Package shim 实现 Seanet 编译产物的加载与执行
//
// 加载器校验文件头（魔数、版本、产物种类、长度），定位入口，
// 然后解释执行占位指令集。库产物只能加载，不能执行。
package shim

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/tangzhangming/seanet/internal/codegen"
)

// Artifact 已加载的编译产物
type Artifact struct {
	Kind  codegen.Kind // 产物种类
	Entry uint32       // 入口在 Code 中的偏移
	Code  []byte       // 指令块
}

// Load 从文件加载并校验产物
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shim: failed to read artifact: %w", err)
	}
	return Parse(data)
}

// Parse 从字节序列解析并校验产物
func Parse(data []byte) (*Artifact, error) {
	if len(data) < codegen.HeaderSize {
		return nil, fmt.Errorf("shim: artifact too short: %d bytes", len(data))
	}

	magic := binary.BigEndian.Uint32(data[0:4])
	if magic != codegen.MagicNumber {
		return nil, fmt.Errorf("shim: bad magic number: 0x%08X", magic)
	}

	major := data[4]
	minor := data[5]
	if major != codegen.MajorVersion {
		return nil, fmt.Errorf("shim: unsupported artifact version %d.%d", major, minor)
	}

	kind := codegen.Kind(data[6])
	if kind != codegen.KindExecutable && kind != codegen.KindLibrary {
		return nil, fmt.Errorf("shim: unknown artifact kind: %d", data[6])
	}

	entryOffset := binary.BigEndian.Uint32(data[8:12])
	codeLength := binary.BigEndian.Uint32(data[12:16])

	if int(entryOffset) > len(data) {
		return nil, fmt.Errorf("shim: entry offset %d out of range", entryOffset)
	}
	if int(entryOffset)+int(codeLength) > len(data) {
		return nil, fmt.Errorf("shim: code block out of range: offset=%d length=%d size=%d",
			entryOffset, codeLength, len(data))
	}

	return &Artifact{
		Kind:  kind,
		Entry: 0,
		Code:  data[entryOffset : entryOffset+codeLength],
	}, nil
}

// Run 从入口执行指令块，返回退出码
func (a *Artifact) Run() (int, error) {
	if a.Kind == codegen.KindLibrary {
		return 0, fmt.Errorf("shim: cannot execute a library artifact")
	}

	pc := int(a.Entry)
	for pc < len(a.Code) {
		op := a.Code[pc]
		switch op {
		case codegen.OpNop:
			pc++
		case codegen.OpExit:
			if pc+1 >= len(a.Code) {
				return 0, fmt.Errorf("shim: truncated exit instruction at offset %d", pc)
			}
			return int(a.Code[pc+1]), nil
		case codegen.OpHalt:
			return 0, nil
		default:
			return 0, fmt.Errorf("shim: unknown opcode 0x%02X at offset %d", op, pc)
		}
	}

	return 0, fmt.Errorf("shim: fell off the end of the code block")
}
