// Fpmodel evaluates IEEE-754 operations on fp16, fp32 and fp64 bit patterns
// with the bit-accurate model or the host FPU.
//
// Usage:
//
//	fpmodel add|sub|mul|div|fma|fms [flags] width a b [c]
//	fpmodel sqrt|recip|invsqrt [flags] width a
//	fpmodel cmp width a b
//	fpmodel classify width a
//	fpmodel print width n...
//	fpmodel compare [-round mode] [-random n] [-seed s] width
//	fpmodel run [-native] [-precision n] file
//
// Operands are decimal, 0x, 0b or 0o literals, or one of the special names
// +zero -zero +inf -inf qnan -qnan snan -snan. Results are printed in the
// notation of the first operand.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"fpmodel/float"
	"fpmodel/util"
	"fpmodel/vectors"
)

const usageText = `usage:
	fpmodel add|sub|mul|div|fma|fms [flags] width a b [c]
	fpmodel sqrt|recip|invsqrt [flags] width a
	fpmodel cmp width a b
	fpmodel classify width a
	fpmodel print width n...
	fpmodel compare [flags] width
	fpmodel run [flags] file

run "fpmodel <command> -h" for the flags of a command
`

var errUsage = errors.New("usage")

type options struct {
	round     string
	native    bool
	precision int
	random    int
	seed      int64
	workers   int
	verbose   bool
	logJSON   bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usageText)
		return 2
	}
	cmd, args := args[0], args[1:]

	var opts options
	fs := flag.NewFlagSet("fpmodel "+cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.round, "round", "rne", "rounding mode: rne, rtz, rpi, rni or rna")
	fs.BoolVar(&opts.native, "native", false, "evaluate on the host FPU")
	fs.IntVar(&opts.precision, "precision", vectors.DefaultPrecision, "adder precision bits, negative for the width default")
	fs.IntVar(&opts.random, "random", 1000, "random vectors per mode for compare")
	fs.Int64Var(&opts.seed, "seed", 1, "random seed for compare")
	fs.IntVar(&opts.workers, "workers", 0, "concurrent batches, 0 for GOMAXPROCS")
	fs.BoolVar(&opts.verbose, "v", false, "log debug messages")
	fs.BoolVar(&opts.logJSON, "log-json", false, "log JSON to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	setupLogging(stderr, opts.verbose, opts.logJSON)

	var err error
	switch op := vectors.Op(cmd); {
	case op.Arity() > 0:
		err = evaluate(stdout, op, &opts, fs.Args())
	case cmd == "print":
		err = printValues(stdout, fs.Args())
	case cmd == "compare":
		err = compare(stdout, &opts, fs.Args())
	case cmd == "run":
		err = runFile(stdout, &opts, fs.Args())
	case cmd == "help", cmd == "-h", cmd == "--help":
		fmt.Fprint(stdout, usageText)
		return 0
	default:
		fmt.Fprintf(stderr, "fpmodel: unknown command %q\n%s", cmd, usageText)
		return 2
	}

	switch {
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "fpmodel %s: %v\n%s", cmd, err, usageText)
		return 2
	case err != nil:
		log.Error().Err(err).Str("command", cmd).Msg("failed")
		return 1
	}
	return 0
}

func setupLogging(w io.Writer, verbose, asJSON bool) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if asJSON {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
		return
	}
	color := false
	if f, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, NoColor: !color})
}

func parseWidth(s string) (int, error) {
	width, err := strconv.Atoi(s)
	if err != nil || (width != 16 && width != 32 && width != 64) {
		return 0, fmt.Errorf("%w: width must be 16, 32 or 64, got %q", errUsage, s)
	}
	return width, nil
}

// evaluate runs a single operation. Ops the bit-accurate model lacks fall
// back to the host FPU.
func evaluate(w io.Writer, op vectors.Op, opts *options, args []string) error {
	if len(args) != 1+op.Arity() {
		return fmt.Errorf("%w: %s takes a width and %d operands", errUsage, op, op.Arity())
	}
	if _, err := parseWidth(args[0]); err != nil {
		return err
	}
	line := fmt.Sprintf("%s %s %s %s", op, args[0], opts.round, strings.Join(args[1:], " "))
	v, err := vectors.ParseVector(line)
	if err != nil {
		return err
	}

	var model vectors.Model = vectors.BitAccurate{Precision: opts.precision}
	if opts.native {
		model = vectors.Native{}
	}
	result, err := model.Eval(v)
	if errors.Is(err, vectors.ErrUnsupported) {
		log.Debug().Str("op", string(op)).Msg("using the native fallback")
		result, err = vectors.Native{}.Eval(v)
	}
	if err != nil {
		return err
	}

	switch op {
	case vectors.OpCmp:
		fmt.Fprintln(w, int64(result))
	case vectors.OpClassify:
		fmt.Fprintln(w, float.Classify(v.A, v.Width))
	default:
		fmt.Fprintln(w, util.Render(result, v.Width).In(util.DetectFormat(args[1])))
	}
	return nil
}

func printValues(w io.Writer, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: print takes a width and at least one pattern", errUsage)
	}
	width, err := parseWidth(args[0])
	if err != nil {
		return err
	}
	for _, s := range args[1:] {
		bits, err := util.ParseBits(s, width)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, util.FormatValue(bits, width))
	}
	return nil
}

// compare checks the bit-accurate adder and multiplier against the host
// FPU. An empty -round means every mode.
func compare(w io.Writer, opts *options, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: compare takes a width", errUsage)
	}
	width, err := parseWidth(args[0])
	if err != nil {
		return err
	}
	modes := float.Modes
	if opts.round != "" && opts.round != "all" {
		mode, err := float.ParseRoundingMode(opts.round)
		if err != nil {
			return err
		}
		modes = []float.RoundingMode{mode}
	}

	var vs []vectors.Vector
	for _, mode := range modes {
		for _, op := range []vectors.Op{vectors.OpAdd, vectors.OpSub, vectors.OpMul} {
			vs = append(vs, vectors.GenerateOp(op, width, mode, opts.random, opts.seed)...)
		}
	}
	sb := &vectors.Scoreboard{
		Model:     vectors.BitAccurate{Precision: opts.precision},
		Reference: vectors.Native{},
		Workers:   opts.workers,
	}
	return report(w, sb, vs)
}

func runFile(w io.Writer, opts *options, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: run takes a vector file", errUsage)
	}
	vs, err := vectors.Open(args[0])
	if err != nil {
		return err
	}
	var model vectors.Model = vectors.BitAccurate{Precision: opts.precision}
	if opts.native {
		model = vectors.Native{}
	}
	return report(w, &vectors.Scoreboard{Model: model, Workers: opts.workers}, vs)
}

func report(w io.Writer, sb *vectors.Scoreboard, vs []vectors.Vector) error {
	r, err := sb.Run(context.Background(), vs)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %d vectors, %d failed, %d skipped\n", sb.Model.Name(), r.Total, r.Failed, r.Skipped)
	if !r.Passed() {
		return fmt.Errorf("%d mismatches", r.Failed)
	}
	return nil
}
