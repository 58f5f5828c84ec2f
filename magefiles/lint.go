package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"sync"

	"github.com/magefile/mage/mg"

	"fastcat.org/go/entab/magefiles/shx"
)

var lintOther = []any{Lint{}.Govulncheck}

func LintDefault(ctx context.Context) error {
	mg.CtxDeps(ctx, append([]any{Lint{}.Golangci}, lintOther...)...)
	return nil
}

type Lint mg.Namespace

func (Lint) Other(ctx context.Context) /* error */ {
	mg.CtxDeps(ctx, lintOther...)
	// return nil
}

func (Lint) Golangci(ctx context.Context) error {
	fmt.Println("Lint: golangci-lint")
	return shx.Cmd(ctx, findGCI(), "run", "./...").
		With(
			// getting told the linter failed without seeing why is useless
			shx.WithOutput(),
		).
		Run()
}

func (Lint) Govulncheck(ctx context.Context) error {
	fmt.Println("Lint: govulncheck")
	return shx.Run(ctx, "go", "run", "golang.org/x/vuln/cmd/govulncheck@latest", "./...")
}

func Format(ctx context.Context) error {
	fmt.Println("Format: golangci-lint")
	return shx.Run(ctx, findGCI(), "fmt", "./...")
}

func Tidy(ctx context.Context) error {
	for _, dir := range []string{".", "magefiles"} {
		fmt.Printf("Tidy: %s\n", dir)
		if err := shx.Cmd(ctx, "go", "mod", "tidy", "-v").
			With(shx.WithCwd(dir)).
			Run(); err != nil {
			return fmt.Errorf("error tidying %s: %w", dir, err)
		}
	}
	return nil
}

var findGCI = sync.OnceValue(func() string {
	gb := os.Getenv("GOBIN")
	if gb == "" {
		gb = os.Getenv("GOPATH")
		if gb == "" {
			gb = os.Getenv("HOME") + "/go"
		}
		gb += "/bin"
	}
	pathVals := os.Getenv("PATH")
	if !slices.Contains(filepath.SplitList(pathVals), gb) {
		// add GOBIN to PATH so that we can find golangci-lint
		_ = os.Setenv("PATH", pathVals+string(os.PathListSeparator)+gb)
	}
	if p, err := exec.LookPath("golangci-lint-v2"); err == nil {
		return p
	}
	return "golangci-lint"
})
