package codegen

// ============================================================================
// Seanet 编译产物文件格式定义
// ============================================================================

const (
	// CompiledFileExtension 编译产物文件后缀
	CompiledFileExtension = ".snb"

	// MagicNumber 文件魔数 "SNET" in ASCII
	MagicNumber uint32 = 0x534E4554

	// 版本号
	MajorVersion uint8 = 0
	MinorVersion uint8 = 1
)

// Kind 产物种类
type Kind uint8

const (
	KindExecutable Kind = 1 // 可执行产物
	KindLibrary    Kind = 2 // 库产物（不能直接运行）
)

// String 返回产物种类的字符串表示
func (k Kind) String() string {
	switch k {
	case KindExecutable:
		return "executable"
	case KindLibrary:
		return "library"
	default:
		return "unknown"
	}
}

// 指令集（占位后端，只有停机一族的指令）
const (
	OpNop  uint8 = 0x00 // 空操作
	OpExit uint8 = 0x01 // 带退出码结束执行（操作数 1 字节）
	OpHalt uint8 = 0xFF // 停机
)

// 文件头结构大小
//
//	Magic(4) + Major(1) + Minor(1) + Kind(1) + 保留(1)
//	+ EntryOffset(4) + CodeLength(4)
const HeaderSize = 16
