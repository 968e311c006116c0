package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/pasc/interp"
	"github.com/npillmayer/pasc/parser"
	"github.com/npillmayer/pasc/scanner"
	"github.com/npillmayer/pasc/sema"
	"github.com/npillmayer/pasc/viz"
)

// main() runs a Pascal source file through the interpreter pipeline:
// scan, parse, analyze, execute. Without a file argument it starts an
// interactive calculator REPL for Pascal expressions.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	tree := flag.Bool("tree", false, "Print the syntax tree before executing")
	symdump := flag.Bool("symbols", false, "Print the global symbol table after analysis")
	flag.Parse()
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	//
	if flag.NArg() == 0 {
		repl()
		return
	}
	filename := flag.Arg(0)
	content, err := ioutil.ReadFile(filename)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	if err := run(string(content), *tree, *symdump); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// run sends source text through all four pipeline stages and prints the
// final global bindings.
func run(source string, tree bool, symdump bool) error {
	sc, err := scanner.ScanString(source)
	if err != nil {
		return err
	}
	p, err := parser.New(sc)
	if err != nil {
		return err
	}
	prog, err := p.Parse()
	if err != nil {
		return err
	}
	if tree {
		viz.RenderTree(prog)
	}
	info, err := sema.NewAnalyzer().Analyze(prog)
	if err != nil {
		return err
	}
	if symdump {
		fmt.Print(viz.SymbolTableDump(info.Scopes.Globals()))
	}
	ip := interp.New(info)
	if err := ip.Run(); err != nil {
		return err
	}
	printGlobals(ip)
	return nil
}

func printGlobals(ip *interp.Interpreter) {
	bindings := ip.Globals().Bindings()
	names := make([]string, 0, len(bindings))
	for nm := range bindings {
		names = append(names, nm)
	}
	sort.Strings(names)
	pterm.Info.Printf("program done, %d global binding(s)\n", len(names))
	for _, nm := range names {
		pterm.Printf("   %s = %s\n", nm, bindings[nm])
	}
}

// repl starts an interactive calculator for Pascal expressions.
func repl() {
	pterm.Info.Println("Welcome to PasC") // colored welcome message
	tracer().Infof("Quit with <ctrl>D")   // inform user how to stop the CLI
	rl, err := readline.New("pasc> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		evalLine(line)
	}
	println("Good bye!")
}

// evalLine scans, parses and evaluates a single expression.
func evalLine(line string) {
	sc, err := scanner.ScanString(line)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	p, err := parser.New(sc)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	e, err := p.ParseExpression()
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	v, err := interp.EvalExpression(e)
	if err != nil {
		pterm.Error.Println(err.Error())
		return
	}
	if rpn, err := viz.Postfix(e); err == nil {
		tracer().Infof("postfix: %s", rpn)
	}
	pterm.Info.Println(v.String())
}
