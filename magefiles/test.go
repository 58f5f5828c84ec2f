package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/magefile/mage/mg"

	"fastcat.org/go/entab/magefiles/shx"
)

func Test(ctx context.Context) error {
	fmt.Println("Test: go test -race")
	args := []string{"test", "-race", "-timeout", "30s"}
	if os.Getenv("VERBOSE") != "" || os.Getenv("CI") != "" {
		args = append(args, "-v")
	}
	args = append(args, "./...")
	return shx.Run(ctx, "go", args...)
}

// golden files are named <fixture>.n<spaces>.txt
var goldenName = regexp.MustCompile(`^(.+)\.n(\d+)\.txt$`)

// Smoke runs the release binary over each fixture in testdata, once through a
// pipe and once in place on a copy, and compares with the golden output.
func Smoke(ctx context.Context) error {
	mg.CtxDeps(ctx, Build{}.Release)
	bin, err := filepath.Abs("./entab")
	if err != nil {
		return err
	}
	goldens, err := filepath.Glob("testdata/*.n*.txt")
	if err != nil {
		return err
	}
	tmp, err := os.MkdirTemp("", "entab-smoke-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp) //nolint:errcheck
	for _, golden := range goldens {
		m := goldenName.FindStringSubmatch(filepath.Base(golden))
		if m == nil {
			continue
		}
		fixture, spaces := filepath.Join("testdata", m[1]+".txt"), m[2]
		fmt.Printf("Smoke: %s -n %s\n", fixture, spaces)
		in, err := os.ReadFile(fixture)
		if err != nil {
			return err
		}
		want, err := os.ReadFile(golden)
		if err != nil {
			return err
		}

		var out bytes.Buffer
		if err := shx.Cmd(ctx, bin, "-n", spaces).
			With(shx.WithStdin(bytes.NewReader(in)), shx.WithStdout(&out)).
			Run(); err != nil {
			return err
		}
		if !bytes.Equal(out.Bytes(), want) {
			return fmt.Errorf("%s: piped output differs from %s", fixture, golden)
		}

		inPlace := filepath.Join(tmp, strings.ReplaceAll(fixture, string(filepath.Separator), "_"))
		if err := os.WriteFile(inPlace, in, 0o644); err != nil {
			return err
		}
		if err := shx.Run(ctx, bin, "-n", spaces, "-w", inPlace); err != nil {
			return err
		}
		if got, err := os.ReadFile(inPlace); err != nil {
			return err
		} else if !bytes.Equal(got, want) {
			return fmt.Errorf("%s: in place output differs from %s", fixture, golden)
		}
	}
	return nil
}
