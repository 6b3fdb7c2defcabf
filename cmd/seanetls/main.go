package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tangzhangming/seanet/internal/lsp"
)

const Version = "0.1.0"

func main() {
	// 解析命令行参数
	showVersion := flag.Bool("version", false, "显示版本信息")
	showHelp := flag.Bool("help", false, "显示帮助信息")
	logFile := flag.String("log", "", "日志文件路径（默认写 stderr，设置环境变量 SEANET_LSP_DEBUG=1 启用调试日志）")

	flag.Parse()

	if *showVersion {
		fmt.Printf("Seanet Language Server v%s\n", Version)
		os.Exit(0)
	}

	if *showHelp {
		printUsage()
		os.Exit(0)
	}

	// 创建并启动 LSP 服务器
	server, err := lsp.NewServer(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "LSP server error: %v\n", err)
		os.Exit(1)
	}

	if err := server.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "LSP server error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Seanet Language Server - 语法诊断服务器")
	fmt.Println()
	fmt.Println("用法:")
	fmt.Println("  seanetls [options]")
	fmt.Println()
	fmt.Println("选项:")
	fmt.Println("  --version    显示版本信息")
	fmt.Println("  --help       显示帮助信息")
	fmt.Println("  --log <file> 日志文件路径")
	fmt.Println()
	fmt.Println("环境变量:")
	fmt.Println("  SEANET_LSP_DEBUG=1  启用调试日志（默认关闭）")
	fmt.Println()
	fmt.Println("特性:")
	fmt.Println("  - 打开、修改、保存文档时重新扫描和解析")
	fmt.Println("  - 扫描错误与解析错误以诊断形式推送")
	fmt.Println()
	fmt.Println("LSP 服务器通过标准输入输出 (stdio) 与编辑器通信。")
}
