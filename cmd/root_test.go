package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fastcat.org/go/entab/internal"
)

type result struct {
	code           int
	stdout, stderr string
}

func runCmd(t testing.TB, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code, stdout.String(), stderr.String()}
}

func TestRun_Usage(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(fn, []byte("    foo\n"), 0o644))
	out := filepath.Join(dir, "out.txt")

	type test struct {
		name    string
		args    []string
		wantErr string
	}
	tests := []test{
		{"no threshold", []string{fn}, "--spaces must be a positive integer"},
		{"zero threshold", []string{"-n", "0", "-w", fn}, "must be a positive integer"},
		{"negative threshold", []string{"--spaces=-3", fn}, "must be a positive integer"},
		{"bad threshold", []string{"-n", "four", fn}, `not "four"`},
		{"overwrite and output", []string{"-n", "4", "-w", "-o", out, fn}, "--output cannot be combined with --overwrite"},
		{"overwrite stdin", []string{"-n", "4", "-w"}, "--overwrite requires an input FILE"},
		{"two files", []string{"-n", "4", fn, fn}, "accepts at most 1 arg"},
		{"unknown flag", []string{"-n", "4", "--tabs", fn}, "unknown flag"},
		{"bad stats format", []string{"-n", "4", "--stats-format", "json", fn}, "must be one of"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCmd(t, "", tt.args...)
			assert.Equal(t, internal.ExitUsage, res.code)
			assert.Contains(t, res.stderr, tt.wantErr)
			assert.Contains(t, res.stderr, "--help")
			assert.Empty(t, res.stdout)

			got, err := os.ReadFile(fn)
			require.NoError(t, err)
			assert.Equal(t, "    foo\n", string(got), "input must not be modified")
			assert.NoFileExists(t, out)
		})
	}
}

func TestRun_Pipe(t *testing.T) {
	res := runCmd(t, strings.Repeat(" ", 16)+"\n", "-n", "8")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "\t\t\n", res.stdout)
	assert.Empty(t, res.stderr)

	res = runCmd(t, "   x\n", "--spaces=4")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "   x\n", res.stdout)
}

func TestRun_Overwrite(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(fn, []byte("    foo\nbar\n"), 0o644))
	res := runCmd(t, "", "-w", "-n", "4", fn)
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Empty(t, res.stdout)
	got, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.Equal(t, "\tfoo\nbar\n", string(got))
}

func TestRun_Output(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(fn, []byte("  \tx\n"), 0o644))
	out := filepath.Join(dir, "b.txt")
	res := runCmd(t, "", "-n", "2", "-o", out, fn)
	assert.Equal(t, 0, res.code, res.stderr)
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "\t\tx\n", string(got))
}

func TestRun_OpenFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")
	res := runCmd(t, "", "-n", "4", missing)
	assert.Equal(t, internal.ExitFailure, res.code)
	assert.Contains(t, res.stderr, missing)
	assert.NotContains(t, res.stderr, "--help")
}

func TestRun_ReadFailure(t *testing.T) {
	dir := t.TempDir()
	keep := filepath.Join(dir, "keep.txt")
	require.NoError(t, os.WriteFile(keep, []byte("    foo\n"), 0o644))

	for _, args := range [][]string{
		{"-n", "4", dir},
		{"-n", "4", "-w", dir},
	} {
		res := runCmd(t, "", args...)
		assert.Equal(t, internal.ExitFailure, res.code, args)
		assert.Contains(t, res.stderr, "reading input", args)
		assert.NotContains(t, res.stderr, "--help", args)
		assert.Empty(t, res.stdout, args)

		st, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, st.IsDir())
		got, err := os.ReadFile(keep)
		require.NoError(t, err)
		assert.Equal(t, "    foo\n", string(got))
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "no temp files left behind")
	}
}

func TestRun_Stats(t *testing.T) {
	res := runCmd(t, "    a\n  b\n", "-n", "2", "--stats", "--stats-format", "yaml")
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "\t\ta\n\tb\n", res.stdout)
	assert.Contains(t, res.stderr, "strategy: stream")
	assert.Contains(t, res.stderr, "lines: 2")
	assert.Contains(t, res.stderr, "tabsEmitted: 3")

	res = runCmd(t, "    a\n", "-n", "2", "--stats")
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, strings.ToUpper(res.stderr), "SPACES COLLAPSED")
	assert.Contains(t, res.stderr, "stream")
}

func TestRun_Verbose(t *testing.T) {
	res := runCmd(t, "    a\n", "-n", "4", "-v")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stderr, "level=DEBUG")
	assert.Contains(t, res.stderr, "streaming")
}

func TestRun_Version(t *testing.T) {
	res := runCmd(t, "", "--version")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "entab version ")
}

func TestRun_Golden(t *testing.T) {
	in, err := os.ReadFile(filepath.Join("..", "testdata", "mixed.txt"))
	require.NoError(t, err)
	want, err := os.ReadFile(filepath.Join("..", "testdata", "mixed.n4.txt"))
	require.NoError(t, err)

	res := runCmd(t, string(in), "-n", "4")
	assert.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, string(want), res.stdout)

	fn := filepath.Join(t.TempDir(), "mixed.txt")
	require.NoError(t, os.WriteFile(fn, in, 0o644))
	res = runCmd(t, "", "-n", "4", "-w", fn)
	assert.Equal(t, 0, res.code, res.stderr)
	got, err := os.ReadFile(fn)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}
