// Command pgsolve runs parity-game benchmark suites.
//
//	pgsolve [flags] suite.hcl
//
// Every game of every suite is solved by each listed solver; the answers
// are checked, compared and printed as text or JSON.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/katalvlaran/gamegraph/runner"
	"github.com/katalvlaran/gamegraph/store"
	"github.com/katalvlaran/gamegraph/suite"
	"github.com/plan-systems/klog"
)

// ExitError carries the process exit code of a failed run.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

func main() {
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	err := run(os.Stdout, os.Args[1:])
	klog.Flush()
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// vars collects repeated -var key=value flags.
type vars map[string]string

func (v vars) String() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k+"="+v[k])
	}
	sort.Strings(keys)

	return strings.Join(keys, ",")
}

func (v vars) Set(s string) error {
	k, val, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return fmt.Errorf("want key=value, got %q", s)
	}
	v[k] = val

	return nil
}

func run(outW io.Writer, args []string) error {
	fset := flag.NewFlagSet("pgsolve", flag.ContinueOnError)
	fset.SetOutput(outW)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")

	fset.Usage = func() {
		fmt.Fprint(outW, `pgsolve - solve and compare parity games from an HCL benchmark suite.

Usage:
  pgsolve [options] SUITE.hcl

Options:
`)
		fset.PrintDefaults()
	}

	format := fset.String("format", "plain", "Output format: 'plain' or 'json'.")
	timeOnly := fset.Bool("time-only", false, "Print timings without solutions (plain format).")
	solverName := fset.Bool("solver-name", false, "Prefix each result with the solver name (plain format).")
	cacheDir := fset.String("cache-dir", "", "Directory of the solution cache. Empty disables caching.")
	noVerify := fset.Bool("no-verify", false, "Skip solution checks.")
	vs := vars{}
	fset.Var(vs, "var", "Suite variable as key=value; may be repeated.")

	if err := fset.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return &ExitError{Code: 2, Message: err.Error()}
	}
	if fset.NArg() != 1 {
		fset.Usage()
		return &ExitError{Code: 2, Message: "pgsolve: exactly one suite file is required"}
	}
	if *format != "plain" && *format != "json" {
		return &ExitError{Code: 2, Message: fmt.Sprintf("pgsolve: invalid format %q: must be 'plain' or 'json'", *format)}
	}

	suites, err := suite.Load(fset.Arg(0), vs)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}

	opts := runner.Options{NoVerify: *noVerify}
	if *cacheDir != "" {
		st, err := store.Open(store.Options{Dir: *cacheDir})
		if err != nil {
			return err
		}
		defer st.Close()
		opts.Cache = st
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	report, err := runner.Run(ctx, suites, opts)
	if err != nil {
		return err
	}

	if *format == "json" {
		return report.WriteJSON(outW)
	}

	return report.WritePlain(outW, runner.PlainOptions{TimeOnly: *timeOnly, SolverName: *solverName})
}
