// Command corevm is a small inspection driver for the interpreter
// core: flag-based switches between a normal startup banner and a set
// of inspection subcommands operating on a hand-assembled CodeObject
// and the YAML scenario fixtures of internal/scenario.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/barnvm/corevm/code"
	"github.com/barnvm/corevm/internal/scenario"
	"github.com/barnvm/corevm/internal/trace"
	"github.com/barnvm/corevm/opcode"
	"github.com/barnvm/corevm/source"
)

func main() {
	disasm := flag.Bool("disasm", false, "Disassemble a small hand-built CodeObject and exit")
	scenarioDir := flag.String("run-scenarios", "", "Run YAML scenario fixtures under the given directory and exit")
	traceEnabled := flag.Bool("trace", false, "Enable execution tracing")
	traceFilter := flag.String("trace-filter", "", "Trace filter pattern (glob, e.g., 'mod.*')")

	flag.Parse()

	if *traceEnabled {
		var filters []string
		if *traceFilter != "" {
			filters = strings.Split(*traceFilter, ",")
			for i := range filters {
				filters[i] = strings.TrimSpace(filters[i])
			}
		}
		trace.Init(true, filters, os.Stderr)
	} else {
		trace.Init(false, nil, nil)
	}

	if *scenarioDir != "" {
		runScenarios(*scenarioDir)
		return
	}

	if *disasm {
		disassembleDemo()
		return
	}

	log.Printf("corevm: interpreter core demo driver")
	log.Printf("pass -disasm for a block-tree dump, or -run-scenarios <dir> to run fixtures")
}

// disassembleDemo builds the CodeObject for:
//
//	for x in y:
//	    break
//
// and prints its bytecode stream alongside the block tree it produced.
func disassembleDemo() {
	src := source.New("for x in y:\n    break\n", "<demo>", source.ExecMode)
	c := code.New(src, "<module>")

	yName := int32(c.AddName("y", code.LocalScope))
	xName := int32(c.AddName("x", code.LocalScope))

	c.Enter(code.ForLoop)
	c.Emit(int32(opcode.FOR_ITER), xName, 1)
	breakIdx := c.Emit(int32(opcode.JUMP_ABSOLUTE), 0, 2) // patched below
	c.Emit(int32(opcode.LOAD_NAME), yName, 1)
	c.Exit()
	afterLoop := c.Emit(int32(opcode.NOP), 0, 0)
	c.Code[breakIdx].Arg = int32(afterLoop)

	fmt.Printf("=== %s ===\n", c.Name)
	fmt.Printf("--- bytecode (%d instructions) ---\n", len(c.Code))
	for i, b := range c.Code {
		fmt.Printf("%4d: %-20s arg=%-6d line=%-4d block=%d\n", i, opcode.Op(b.Op).String(), b.Arg, b.Line, b.Block)
	}
	fmt.Printf("--- blocks (%d) ---\n", len(c.Blocks))
	for i, b := range c.Blocks {
		fmt.Printf("%4d: %s start=%d end=%d parent=%d\n", i, b.String(), b.Start, b.End, b.Parent)
	}
}

func runScenarios(dir string) {
	cases, err := scenario.LoadDir(dir)
	if err != nil {
		log.Fatalf("corevm: loading scenarios from %s: %v", dir, err)
	}

	passed, failed := 0, 0
	for _, lc := range cases {
		if lc.Case.Skip != "" {
			fmt.Printf("SKIP  %s / %s (%s)\n", lc.File, lc.Case.Name, lc.Case.Skip)
			continue
		}
		ok, explain := scenario.Run(lc.Case)
		if ok {
			passed++
			fmt.Printf("PASS  %s / %s\n", lc.File, lc.Case.Name)
		} else {
			failed++
			fmt.Printf("FAIL  %s / %s: %s\n", lc.File, lc.Case.Name, explain)
		}
	}

	fmt.Printf("\n%d passed, %d failed\n", passed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
