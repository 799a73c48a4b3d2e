// Package main implements the Vantage register allocator CLI.
//
// Philosophy: Fast, minimal, elegant - inspired by Go's compiler architecture.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vantage-lang/vantagec/pkg/coloring"
	"github.com/vantage-lang/vantagec/pkg/logger"
)

const version = "0.1.0"

func main() {
	_ = logger.Init(logger.DefaultConfig())
	logger.LogCompilerStart(os.Args)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "color":
		color(os.Args[2:])
	case "version":
		fmt.Printf("vantagec version %s\n", version)
	case "help":
		usage()
	default:
		logger.Error("Unknown command", "command", cmd)
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`Vantage Register Allocator - ACO graph coloring over an interference graph

Usage:
    vantagec color <graph.txt> -k <colors> [-o output.dot]   Run the coloring engine
    vantagec version                                         Show version
    vantagec help                                             Show this help message

Graph file format (see pkg/coloring for the engine itself):
    line 1:      N
    next N lines: per-vertex spill weight (float, defaults to 1 if the line is blank)
    remaining:   "u v" edge pairs, one per line

Options:
    -k <n>         Number of colors (required)
    -o <file>      Write the colored graph as Graphviz DOT to this file
    -ants <n>      Ants per cycle (default from pkg/coloring.DefaultParameters)
    -cycles <n>    Maximum cycles
    -seed <n>      PRNG seed
    -parallel      Run ants concurrently within each cycle
    -v             Verbose (debug-level) logging`)
}

func color(args []string) {
	start := time.Now()

	if len(args) == 0 {
		logger.Error("No input graph provided")
		fmt.Fprintln(os.Stderr, "error: no input graph")
		os.Exit(1)
	}

	graphFile := args[0]
	opts, err := parseColorFlags(args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger.LogFileProcessing(graphFile)
	fmt.Printf("Coloring %s...\n", graphFile)

	f, err := os.Open(graphFile)
	if err != nil {
		logger.Error("Failed to read graph file", "file", graphFile, "error", err)
		fmt.Fprintf(os.Stderr, "error reading file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	g, weight, err := parseGraph(f)
	if err != nil {
		logger.Error("Failed to parse graph file", "file", graphFile, "error", err)
		fmt.Fprintf(os.Stderr, "error parsing graph: %v\n", err)
		os.Exit(1)
	}

	allow := make([][]bool, g.N())
	for i := range allow {
		row := make([]bool, opts.k)
		for c := range row {
			row[c] = true
		}
		allow[i] = row
	}

	logger.LogPhase("aco coloring")
	sol, err := coloring.Color(context.Background(), g, opts.k, allow, weight, opts.params)
	duration := time.Since(start).String()
	if err != nil {
		logger.LogCompilerComplete(false, duration)
		fmt.Fprintf(os.Stderr, "coloring failed: %v\n", err)
		os.Exit(1)
	}
	logger.LogPhaseComplete("aco coloring")

	spilled := 0
	for _, c := range sol.Colors {
		if c == coloring.Unassigned {
			spilled++
		}
	}
	logger.LogCompilerComplete(true, duration)
	fmt.Printf("Coloring complete: %d vertices, %d conflicts, %d spilled\n",
		g.N(), sol.ConflictingEdges, spilled)

	if opts.output != "" {
		dot, err := coloring.WriteDOT(g, sol, "interference")
		if err != nil {
			fmt.Fprintf(os.Stderr, "error rendering DOT: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(opts.output, dot, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "error writing %s: %v\n", opts.output, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", opts.output)
	}
}

type colorOptions struct {
	k      int
	output string
	params coloring.Parameters
}

func parseColorFlags(args []string) (colorOptions, error) {
	opts := colorOptions{k: -1, params: coloring.DefaultParameters()}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-k":
			i++
			if i >= len(args) {
				return opts, fmt.Errorf("-k requires a value")
			}
			n, err := strconv.Atoi(args[i])
			if err != nil {
				return opts, fmt.Errorf("invalid -k value %q: %w", args[i], err)
			}
			opts.k = n
		case "-o":
			i++
			if i >= len(args) {
				return opts, fmt.Errorf("-o requires a value")
			}
			opts.output = args[i]
		case "-ants":
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil {
				return opts, fmt.Errorf("invalid -ants value %q: %w", args[i], err)
			}
			opts.params.NumAnts = n
		case "-cycles":
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil {
				return opts, fmt.Errorf("invalid -cycles value %q: %w", args[i], err)
			}
			opts.params.MaxCycles = n
			opts.params.Gap = coloring.SuggestedGap(n)
		case "-seed":
			i++
			n, err := strconv.ParseUint(args[i], 10, 64)
			if err != nil {
				return opts, fmt.Errorf("invalid -seed value %q: %w", args[i], err)
			}
			opts.params.Seed = n
		case "-parallel":
			opts.params.Parallel = true
		case "-v":
			logger.InitDev()
		default:
			return opts, fmt.Errorf("unknown flag %q", args[i])
		}
	}

	if opts.k < 0 {
		return opts, fmt.Errorf("-k is required")
	}
	return opts, nil
}

// parseGraph reads the line-oriented graph format documented in usage().
func parseGraph(f *os.File) (*coloring.Graph, []float64, error) {
	scanner := bufio.NewScanner(f)

	if !scanner.Scan() {
		return nil, nil, fmt.Errorf("empty graph file")
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, nil, fmt.Errorf("invalid vertex count: %w", err)
	}

	weight := make([]float64, n)
	for i := 0; i < n; i++ {
		weight[i] = 1
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		w, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid weight on vertex %d: %w", i, err)
		}
		weight[i] = w
	}

	g := coloring.NewGraph(n)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, nil, fmt.Errorf("malformed edge line %q", line)
		}
		u, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("invalid edge endpoint %q: %w", fields[0], err)
		}
		v, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, nil, fmt.Errorf("invalid edge endpoint %q: %w", fields[1], err)
		}
		if u < 0 || u >= n || v < 0 || v >= n {
			return nil, nil, fmt.Errorf("edge (%d,%d) out of range [0,%d)", u, v, n)
		}
		g.AddEdge(u, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	return g, weight, nil
}
