package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"

	"fastcat.org/go/entab/magefiles/shx"
)

func Compile(ctx context.Context) error {
	fmt.Println("Compile: go build")
	return shx.Run(ctx, "go", "build", "-v", "./...")
}

type Build mg.Namespace

func (Build) Debug(ctx context.Context) /* error */ {
	mg.CtxDeps(ctx, mg.F(Build{}.debug, ".", "./entab.debug"))
	// return nil
}

func (Build) Release(ctx context.Context) /* error */ {
	mg.CtxDeps(ctx, mg.F(Build{}.release, ".", "./entab"))
	// return nil
}

func (Build) debug(ctx context.Context, pkg, name string) error {
	fmt.Printf("Build %s debug binary\n", filepath.Base(name))
	return shx.Cmd(
		ctx,
		"go", "build", "-gcflags=all=-N -l", "-v", "-o", name, pkg,
	).Run()
}

func (Build) release(ctx context.Context, pkg, name string) error {
	fmt.Printf("Build %s release binary\n", filepath.Base(name))
	return shx.Cmd(
		ctx,
		"go", "build", "-ldflags=-s -w", "-v", "-o", name, pkg,
	).With(
		shx.WithEnv(map[string]string{
			"CGO_ENABLED": "0",
		}),
	).Run()
}
