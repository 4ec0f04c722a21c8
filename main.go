// docwrap rewraps over-long lines in Python docstrings and block comments.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"unicode/utf8"

	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"github.com/phobologic/docwrap/internal/config"
	"github.com/phobologic/docwrap/internal/diffview"
	"github.com/phobologic/docwrap/internal/discover"
	"github.com/phobologic/docwrap/internal/model"
	"github.com/phobologic/docwrap/internal/wrap"
)

var version = "dev"

var modifiedColor = color.New(color.FgGreen)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("docwrap", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		maxDocLength      int
		forceTripleQuotes bool
		skipComments      bool
		skipDocstrings    bool
		noGitignore       bool
		showDiff          bool
		jobs              int
		showVersion       bool
	)

	fs.IntVar(&maxDocLength, "max-doc-length", 79, "maximum length of docstring and block comment lines")
	fs.BoolVar(&forceTripleQuotes, "force-triple-quotes", false, `convert all docstrings to """ triple-double-quotes`)
	fs.BoolVar(&skipComments, "skip-comments", false, "don't rewrap block comments")
	fs.BoolVar(&skipDocstrings, "skip-docstrings", false, "don't rewrap docstrings")
	fs.BoolVar(&noGitignore, "no-gitignore", false, "search directories for all *.py files, even those ignored by git")
	fs.BoolVar(&showDiff, "diff", false, "print changes instead of rewriting files")
	fs.IntVar(&jobs, "jobs", 0, "number of files to process in parallel (default: number of CPUs)")
	fs.BoolVar(&showVersion, "V", false, "show version and exit")
	fs.BoolVar(&showVersion, "version", false, "show version and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: docwrap [flags] PATH...

Rewrap long lines in Python docstrings and block comments (flake8 W505).
PATH can be any mix of files and directories. Directories are searched
recursively for *.py files, respecting gitignore rules. Defaults may be
supplied by a %s file in the working directory.

Flags:
`, config.FileName)
		fs.PrintDefaults()
	}

	if err := fs.Parse(reorderArgs(args)); err != nil {
		return err
	}

	if showVersion {
		_, _ = fmt.Fprintf(stdout, "docwrap %s\n", version)
		return nil
	}

	// docwrap.toml supplies defaults for flags not given on the command line.
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if cfg, err := config.Load("."); err != nil {
		return err
	} else if cfg != nil {
		applyConfig(cfg, set, &maxDocLength, &forceTripleQuotes, &skipComments, &skipDocstrings, &noGitignore, &jobs)
	}

	if maxDocLength <= 0 {
		return fmt.Errorf("max-doc-length must be positive, got %d", maxDocLength)
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("no paths given")
	}

	opts := model.Options{
		MaxDocLength:      maxDocLength,
		ForceTripleQuotes: forceTripleQuotes,
		SkipComments:      skipComments,
		SkipDocstrings:    skipDocstrings,
	}

	errorCount := 0
	files, badPaths := expandPaths(fs.Args(), !noGitignore, stderr)
	errorCount += badPaths

	results := processFiles(files, opts, showDiff, jobs)

	modifiedCount := 0
	for _, r := range results {
		switch {
		case r.err != nil:
			_, _ = fmt.Fprintf(stderr, "Error processing %s: %v\n", r.path, r.err)
			errorCount++
		case r.modified:
			modifiedCount++
			_, _ = fmt.Fprintln(stdout, modifiedColor.Sprintf("Modified: %s", r.path))
			if r.diff != "" {
				_, _ = io.WriteString(stdout, r.diff)
			}
		}
	}

	_, _ = fmt.Fprintf(stdout, "Processed %d files, modified %d files, %d errors.\n",
		len(results), modifiedCount, errorCount)

	if errorCount > 0 {
		return fmt.Errorf("%d errors", errorCount)
	}
	return nil
}

func applyConfig(cfg *config.File, set map[string]bool, maxDocLength *int, forceTripleQuotes, skipComments, skipDocstrings, noGitignore *bool, jobs *int) {
	if cfg.MaxDocLength != nil && !set["max-doc-length"] {
		*maxDocLength = *cfg.MaxDocLength
	}
	if cfg.ForceTripleQuotes != nil && !set["force-triple-quotes"] {
		*forceTripleQuotes = *cfg.ForceTripleQuotes
	}
	if cfg.SkipComments != nil && !set["skip-comments"] {
		*skipComments = *cfg.SkipComments
	}
	if cfg.SkipDocstrings != nil && !set["skip-docstrings"] {
		*skipDocstrings = *cfg.SkipDocstrings
	}
	if cfg.NoGitignore != nil && !set["no-gitignore"] {
		*noGitignore = *cfg.NoGitignore
	}
	if cfg.Jobs != nil && !set["jobs"] {
		*jobs = *cfg.Jobs
	}
}

// expandPaths resolves the positional arguments to a flat file list.
// Explicitly named files are processed even if not *.py or gitignored;
// directories are searched recursively. Returns the count of unusable paths.
func expandPaths(paths []string, useGitignore bool, stderr io.Writer) ([]string, int) {
	var files []string
	bad := 0
	for _, path := range paths {
		info, err := os.Stat(path)
		switch {
		case err != nil:
			_, _ = fmt.Fprintf(stderr, "Not a file or directory: %s\n", path)
			bad++
		case info.IsDir():
			found, err := discover.Files(path, useGitignore)
			if err != nil {
				_, _ = fmt.Fprintf(stderr, "Error searching %s: %v\n", path, err)
				bad++
				continue
			}
			for _, rel := range found {
				files = append(files, joinPath(path, rel))
			}
		default:
			files = append(files, path)
		}
	}
	return files, bad
}

func joinPath(dir, rel string) string {
	if dir == "." {
		return rel
	}
	return dir + string(os.PathSeparator) + rel
}

type result struct {
	path     string
	modified bool
	diff     string
	err      error
}

// processFiles rewraps each file, at most jobs at a time. Files are
// independent units of work; all output is reported afterward in input
// order so runs are deterministic.
func processFiles(files []string, opts model.Options, showDiff bool, jobs int) []result {
	results := make([]result, len(files))

	var g errgroup.Group
	g.SetLimit(min(jobs, max(len(files), 1)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			results[i] = processFile(path, opts, showDiff)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func processFile(path string, opts model.Options, showDiff bool) result {
	r := result{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		r.err = err
		return r
	}
	if !utf8.Valid(data) {
		r.err = fmt.Errorf("not valid UTF-8 text")
		return r
	}

	content := string(data)
	newContent, modified, err := wrap.ProcessContent(content, opts)
	if err != nil {
		r.err = err
		return r
	}
	if !modified {
		return r
	}
	r.modified = true

	if showDiff {
		var buf bytes.Buffer
		diffview.Render(&buf, path, content, newContent)
		r.diff = buf.String()
		return r
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(newContent), mode); err != nil {
		r.err = err
		r.modified = false
	}
	return r
}

// flagsWithValue lists flags that take a value argument.
var flagsWithValue = map[string]bool{
	"-max-doc-length": true, "--max-doc-length": true,
	"-jobs": true, "--jobs": true,
}

// reorderArgs moves positional arguments after all flags so Go's flag package
// can parse them correctly (it stops at the first non-flag arg).
func reorderArgs(args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(args[i]) > 0 && args[i][0] == '-' {
			flags = append(flags, args[i])
			if flagsWithValue[args[i]] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, args[i])
		}
	}
	return append(flags, positional...)
}
