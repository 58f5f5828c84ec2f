package rewrite

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"fastcat.org/go/entab/entab"
	"fastcat.org/go/entab/sys"
	"fastcat.org/go/entab/textedit"
)

// Strategy is how the output was produced.
type Strategy string

const (
	// StrategyStream writes straight from input to output.
	StrategyStream Strategy = "stream"

	// StrategyRename writes a temp file and renames it over the destination.
	StrategyRename Strategy = "rename"

	// StrategyCopyBack writes a temp file, then truncates the destination and
	// copies it back. Used when the destination has other hard links that a
	// rename would detach.
	StrategyCopyBack Strategy = "copy-back"
)

type Result struct {
	Stats    entab.Stats
	Strategy Strategy
	// Replaced is false for in-place strategies when the content came out
	// unchanged and the destination was not touched.
	Replaced bool
}

// Run entabs the configured input into the configured destination.
//
// When the destination is the same file as the input, even when reached via a
// different path, link or stdin redirect, the whole input is transformed into a
// temporary file before the destination is replaced, so nothing is overwritten
// while it is still to be read.
func Run(cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	log := cfg.logger()

	in, inFile, inName := cfg.stdin(), (*os.File)(nil), "<stdin>"
	if cfg.Input != "" {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return Result{}, fmt.Errorf("open input %q: %w", cfg.Input, err)
		}
		// read only, nothing to report from close
		defer f.Close() //nolint:errcheck
		in, inFile, inName = f, f, cfg.Input
	} else if f, ok := in.(*os.File); ok {
		inFile = f
	}

	dest := cfg.Destination()
	if dest == "" {
		log.Debug("streaming", "input", inName, "output", "<stdout>")
		stats, err := transform(in, cfg.stdout(), cfg.Spaces, inName)
		return Result{Stats: stats, Strategy: StrategyStream, Replaced: true}, err
	}

	if inFile != nil {
		if destID, ok := aliased(log, inFile, dest); ok {
			return rewriteInPlace(log, dest, destID, cfg.Spaces)
		}
	}

	out, err := os.Create(dest)
	if err != nil {
		return Result{}, fmt.Errorf("create output %q: %w", dest, err)
	}
	log.Debug("streaming", "input", inName, "output", dest)
	stats, err := transform(in, out, cfg.Spaces, inName)
	if cerr := out.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close output %q: %w", dest, cerr)
	}
	return Result{Stats: stats, Strategy: StrategyStream, Replaced: true}, err
}

// aliased reports whether dest is the file in is reading from. A destination
// that can't be stat'ed is treated as distinct, creating it will report the
// problem if there is one.
func aliased(log *slog.Logger, in *os.File, dest string) (sys.Identity, bool) {
	inID, err := sys.IdentityOfFile(in)
	if err != nil {
		log.Debug("no identity for input", "input", in.Name(), "err", err)
		return sys.Identity{}, false
	}
	destID, err := sys.IdentityOf(dest)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Debug("no identity for output", "output", dest, "err", err)
		}
		return sys.Identity{}, false
	}
	same := inID.Equal(destID)
	log.Debug("compared identities", "input", inID, "output", destID, "same", same)
	return destID, same
}

func rewriteInPlace(log *slog.Logger, dest string, destID sys.Identity, spaces int) (Result, error) {
	res := Result{Strategy: StrategyRename}
	replace := textedit.EditFile
	if destID.Links() > 1 {
		res.Strategy = StrategyCopyBack
		replace = textedit.CopyBack
	}
	log.Debug("rewriting in place", "output", dest, "strategy", res.Strategy)

	var err error
	res.Replaced, err = replace(dest, func(r io.Reader, w io.Writer) error {
		var terr error
		res.Stats, terr = entab.Transform(r, w, spaces)
		return terr
	})
	if err != nil {
		return res, fmt.Errorf("rewrite %q: %w", dest, err)
	}
	if !res.Replaced {
		log.Debug("no changes, left untouched", "output", dest)
	}
	return res, nil
}

func transform(in io.Reader, out io.Writer, spaces int, inName string) (entab.Stats, error) {
	stats, err := entab.Transform(in, out, spaces)
	if err != nil {
		return stats, fmt.Errorf("%s: %w", inName, err)
	}
	return stats, nil
}
