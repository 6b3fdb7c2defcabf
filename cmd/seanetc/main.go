package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tangzhangming/seanet/internal/codegen"
	"github.com/tangzhangming/seanet/internal/diag"
	"github.com/tangzhangming/seanet/internal/lexer"
	"github.com/tangzhangming/seanet/internal/parser"
	"github.com/tangzhangming/seanet/internal/project"
)

var (
	showTokens = flag.Bool("tokens", false, "Show scanner tokens")
	showAST    = flag.Bool("ast", false, "Show AST structure")
	parseOnly  = flag.Bool("parse", false, "Parse only, don't generate an artifact")
	outputPath = flag.String("o", "", "Artifact output path")
	buildLib   = flag.Bool("lib", false, "Build a library artifact")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Seanet Compiler v0.1.0")
		fmt.Println()
		fmt.Println("Usage: seanetc [options] <filename.sn>")
		fmt.Println()
		fmt.Println("Options:")
		fmt.Println("  -tokens     Show scanner tokens")
		fmt.Println("  -ast        Show AST structure")
		fmt.Println("  -parse      Parse only, don't generate an artifact")
		fmt.Println("  -o <path>   Artifact output path")
		fmt.Println("  -lib        Build a library artifact")
		os.Exit(0)
	}

	filename := flag.Arg(0)
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	// 扫描与解析共用一个诊断收集器，错误按报告顺序打印
	bag := diag.NewBag(filename)
	tokens := lexer.New(string(source), filename, bag).ScanTokens()

	if *showTokens {
		fmt.Println("=== Tokens ===")
		for _, tok := range tokens {
			fmt.Printf("  %s\n", tok)
		}
		fmt.Println()
	}

	prog := parser.New(tokens, bag).Parse()

	if bag.HasErrors() {
		for _, e := range bag.Entries() {
			fmt.Fprintln(os.Stderr, e)
		}
		os.Exit(1)
	}

	if *showAST {
		fmt.Println("=== AST ===")
		for _, decl := range prog.Declarations {
			fmt.Printf("  %s\n", decl.String())
		}
		fmt.Println()
	}

	if *parseOnly || *showTokens || *showAST {
		fmt.Printf("Successfully parsed %s\n", filename)
		fmt.Printf("  Declarations: %d\n", len(prog.Declarations))
		return
	}

	// 产物路径：-o 优先，其次项目配置，最后源文件名换后缀
	kind := codegen.KindExecutable
	if *buildLib {
		kind = codegen.KindLibrary
	}
	output := resolveOutput(filename, *outputPath, &kind)

	if err := codegen.New(kind).WriteFile(output, prog); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s artifact: %s\n", kind, output)
}

// resolveOutput 决定产物路径，项目配置里的 kind 只在没有 -lib 时生效
func resolveOutput(filename, explicit string, kind *codegen.Kind) string {
	if explicit != "" {
		return explicit
	}

	if configPath := project.FindConfigFile(filename); configPath != "" {
		config, err := project.Load(configPath)
		if err == nil && config.Build.Output != "" {
			if *kind != codegen.KindLibrary && config.Build.Kind == "lib" {
				*kind = codegen.KindLibrary
			}
			return filepath.Join(filepath.Dir(configPath), config.Build.Output)
		}
	}

	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return base + codegen.CompiledFileExtension
}
