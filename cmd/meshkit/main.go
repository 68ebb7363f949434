// Command meshkit runs a mesh script and prints a summary of the meshes it
// builds.
//
// Usage:
//
//	meshkit [flags] script.lisp
//
// A script path of "-" reads standard input.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/chazu/meshkit/internal/config"
	"github.com/chazu/meshkit/internal/logger"
)

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagExact   = flag.Bool("exact", false, "Use exact predicates")
	flagJSON    = flag.Bool("json", false, "Print the report as JSON")
	flagBuffers = flag.Bool("buffers", false, "Include triangle buffers in the JSON report")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: meshkit [flags] script.lisp")
		flag.PrintDefaults()
		os.Exit(2)
	}
	os.Exit(run(flag.Arg(0), os.Stdout))
}

func run(path string, out io.Writer) int {
	cfg, err := config.Load(*flagConfig)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	applyFlags(cfg)

	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	log, err := logger.New(logger.Options{Level: cfg.Logging.Level, Console: os.Stderr, File: fileCfg})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	source, err := readScript(path)
	if err != nil {
		log.Error("reading script", zap.String("path", path), zap.Error(err))
		return 1
	}

	app, err := NewApp(cfg, log)
	if err != nil {
		log.Error("creating app", zap.Error(err))
		return 1
	}
	report := app.Evaluate(source, *flagBuffers)

	if *flagJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			log.Error("writing report", zap.Error(err))
			return 1
		}
	} else {
		printReport(out, report)
	}
	if len(report.Errors) > 0 {
		return 1
	}
	return 0
}

func applyFlags(cfg *config.Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagExact {
		cfg.Predicates.Mode = "exact"
	}
}

func readScript(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func printReport(w io.Writer, r Report) {
	for _, e := range r.Errors {
		if e.Line > 0 {
			fmt.Fprintf(w, "error: line %d: %s\n", e.Line, e.Message)
		} else {
			fmt.Fprintf(w, "error: %s\n", e.Message)
		}
	}
	for _, m := range r.Meshes {
		fmt.Fprintf(w, "%s: %s verts=%d edges=%d faces=%d polys=%d marked=%d labels=%d area=%.6g",
			m.Name, m.Kind, m.Verts, m.Edges, m.Faces, m.Polys, m.Marked, m.Labels, m.Area)
		if m.Kind == "polyhedral" {
			fmt.Fprintf(w, " volume=%.6g", m.Volume)
		}
		fmt.Fprintln(w)
	}
	if r.Value != "" {
		fmt.Fprintf(w, "value: %s\n", r.Value)
	}
}
