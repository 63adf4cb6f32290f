// Command asm24 is the command-line entry point for the two-pass
// 24-bit assembler. It reads one or more `.as` source files and, for
// each, writes a `.am` (macro-expanded), `.ob` (object), `.ent`
// (entry), and `.ext` (external-reference) file alongside it.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rncernic/asm24/internal/assemble"
	"github.com/rncernic/asm24/internal/config"
	"github.com/rncernic/asm24/internal/diag"
	"github.com/rncernic/asm24/internal/emit"
	"github.com/rncernic/asm24/internal/macro"
	"github.com/rncernic/asm24/internal/symtab"
)

const version = "24asm 1.0.0"

func main() {
	help := flag.Bool("h", false, "show usage and exit")
	flag.BoolVar(help, "help", false, "show usage and exit")
	showVersion := flag.Bool("v", false, "show version and exit")
	flag.BoolVar(showVersion, "version", false, "show version and exit")
	configPath := flag.String("config", "", "path to an asm24.toml configuration file")
	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one input file is required.")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	anyFailed := false
	for _, path := range files {
		if err := processFile(path, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Assembly of %q failed: %v\n", path, err)
			anyFailed = true
		}
	}

	if anyFailed {
		os.Exit(1)
	}
}

// processFile runs the full pipeline for one source file and writes
// its four output artifacts alongside it.
func processFile(path string, cfg *config.Config) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	sink := diag.NewSink()
	sink.SetCurrentFile(path)
	defer sink.Reset()

	pre := macro.NewPreprocessor()
	pre.MaxMacroLines = cfg.Limits.MaxMacroLines
	pre.Macros.MaxMacros = cfg.Limits.MaxMacros

	expanded, err := pre.Run(string(source))
	if err != nil {
		sink.Report(errKind(err), "%s", errMessage(err))
		return fmt.Errorf("macro preprocessing failed")
	}

	symbols := symtab.New()
	symbols.MaxSymbols = cfg.Limits.MaxSymbols
	state := assemble.New(symbols, sink)
	state.BaseAddress = cfg.Layout.BaseAddress
	state.MaxLineLength = cfg.Limits.MaxLineLength

	state.FirstPass(expanded)
	state.SecondPass(expanded)

	if sink.ErrorCount() > 0 {
		return fmt.Errorf("%d error(s) reported", sink.ErrorCount())
	}

	base := strings.TrimSuffix(path, filepath.Ext(path))
	if err := writeArtifacts(base, expanded, state); err != nil {
		return err
	}

	fmt.Printf("Assembly of %q succeeded: %d code word(s), %d data word(s).\n", path, state.IC, state.DC)
	return nil
}

func writeArtifacts(base, expanded string, state *assemble.State) error {
	writers := []struct {
		suffix string
		write  func(f *os.File) error
	}{
		{".am", func(f *os.File) error { return emit.WriteExpanded(f, expanded) }},
		{".ob", func(f *os.File) error { return emit.WriteObject(f, state) }},
		{".ent", func(f *os.File) error { return emit.WriteEntries(f, state.Symbols) }},
		{".ext", func(f *os.File) error { return emit.WriteExternals(f, state.ExternRefs) }},
	}

	for _, w := range writers {
		f, err := os.Create(base + w.suffix)
		if err != nil {
			return fmt.Errorf("creating %s: %w", w.suffix, err)
		}
		err = w.write(f)
		closeErr := f.Close()
		if err != nil {
			return fmt.Errorf("writing %s: %w", w.suffix, err)
		}
		if closeErr != nil {
			return fmt.Errorf("closing %s: %w", w.suffix, closeErr)
		}
	}
	return nil
}

func errKind(err error) diag.Kind {
	if de, ok := err.(*diag.Err); ok {
		return de.Kind
	}
	return diag.General
}

func errMessage(err error) string {
	if de, ok := err.(*diag.Err); ok {
		return de.Message
	}
	return err.Error()
}
