package cmd

import (
	"fmt"
	"io"
	"os"

	"fastcat.org/go/entab/instance"
	"fastcat.org/go/entab/internal"
)

func Main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := Root()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", instance.AppName, err)
		ec := internal.ExitCode(err)
		if ec == internal.ExitUsage {
			fmt.Fprintf(stderr, "Try '%s --help' for more information.\n", instance.AppName)
		}
		return ec
	}
	return 0
}
