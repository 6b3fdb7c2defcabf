package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tangzhangming/seanet/internal/shim"
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Seanet Launcher v0.1.0")
		fmt.Println()
		fmt.Println("Usage: seanet <artifact.snb>")
		os.Exit(0)
	}

	artifact, err := shim.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	code, err := artifact.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}
