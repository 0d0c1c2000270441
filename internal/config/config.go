// Package config handles command line options and logger setup for the
// emulator hosts.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/retroenv/retrogolib/log"
)

// Options contains the settings shared by all hosts.
type Options struct {
	Program string // path of the program image

	Scale int // output pixels per CHIP-8 pixel
	Hz    int // instruction ticks per second
	Seed  uint64
	Debug bool
	Quiet bool
	Trace bool

	// headless only
	Cycles     int
	Keys       string
	Screenshot string
}

// UsageError represents an error that should show usage information.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage text to w.
func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [options] <CHIP-8 program>\n\n", e.flags.Name())
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
}

// ParseFlags parses the command line arguments of the host called name.
// Exactly one positional argument, the program path, is accepted. The
// headless runner flags are only registered if headless is set.
func ParseFlags(name string, args []string, headless bool) (Options, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	opts := Options{}
	flags.IntVar(&opts.Scale, "scale", 10, "output pixels per CHIP-8 pixel")
	flags.IntVar(&opts.Hz, "hz", 600, "instructions executed per second")
	flags.Uint64Var(&opts.Seed, "seed", 0, "random seed, 0 picks one at startup")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.Quiet, "q", false, "only log errors")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	if headless {
		flags.IntVar(&opts.Cycles, "cycles", 1000, "number of ticks to run")
		flags.StringVar(&opts.Keys, "keys", "", "hex keypad indices to queue before running, e.g. 5a0")
		flags.StringVar(&opts.Screenshot, "png", "", "write the final frame to this PNG file")
	}

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	if flags.NArg() != 1 {
		return opts, &UsageError{flags: flags, msg: fmt.Sprintf("expected 1 program argument, got %d", flags.NArg())}
	}
	opts.Program = flags.Arg(0)
	if opts.Trace {
		opts.Debug = true
	}

	if err := opts.validate(); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	return opts, nil
}

func (o Options) validate() error {
	var errs []error
	if o.Scale < 1 {
		errs = append(errs, fmt.Errorf("invalid scale %d", o.Scale))
	}
	if o.Hz < 1 {
		errs = append(errs, fmt.Errorf("invalid hz %d", o.Hz))
	}
	if o.Cycles < 0 {
		errs = append(errs, fmt.Errorf("invalid cycles %d", o.Cycles))
	}
	if _, err := o.KeyIndices(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// TickInterval returns the wall-clock time between two instruction ticks.
func (o Options) TickInterval() time.Duration {
	return time.Second / time.Duration(o.Hz)
}

// KeyIndices decodes the -keys flag into keypad indices.
func (o Options) KeyIndices() ([]uint8, error) {
	var keys []uint8
	for _, c := range strings.ToLower(o.Keys) {
		switch {
		case c >= '0' && c <= '9':
			keys = append(keys, uint8(c-'0'))
		case c >= 'a' && c <= 'f':
			keys = append(keys, uint8(c-'a'+10))
		default:
			return nil, fmt.Errorf("invalid key %q", c)
		}
	}
	return keys, nil
}

// VMOptions returns the VM options selected on the command line.
func (o Options) VMOptions(logger *log.Logger) []internal.Option {
	opts := []internal.Option{
		internal.WithLogger(logger),
		internal.WithTrace(o.Trace),
	}
	if o.Seed != 0 {
		opts = append(opts, internal.WithRand(rand.New(rand.NewPCG(o.Seed, o.Seed))))
	}
	return opts
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
