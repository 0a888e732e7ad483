package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sparsesetCLI runs commands against one data directory.
type sparsesetCLI struct {
	t   *testing.T
	dir string
}

func newCLI(t *testing.T) *sparsesetCLI {
	t.Helper()
	return &sparsesetCLI{t: t, dir: t.TempDir()}
}

func (c *sparsesetCLI) runWithInput(input string, args ...string) (string, error) {
	c.t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{"--dir", c.dir}, args...)
	err := run(context.Background(), full, strings.NewReader(input), &stdout, &stderr)
	return stdout.String(), err
}

func (c *sparsesetCLI) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.runWithInput("", args...)
	require.NoError(c.t, err, strings.Join(args, " "))
	return out
}

func TestCLI_AddShowRemove(t *testing.T) {
	cli := newCLI(t)

	cli.mustRun("add", "primes", "2", "3", "5", "7", "11", "257")
	assert.Equal(t, "2     3     5     7     11    257   \n-1\n", cli.mustRun("show", "primes"))
	assert.Equal(t, "{2 3 5 7 11 257}\n", cli.mustRun("show", "--compact", "primes"))

	cli.mustRun("remove", "primes", "3", "257", "4")
	assert.Equal(t, "{2 5 7 11}\n", cli.mustRun("show", "--compact", "primes"))

	assert.Equal(t, "0\n", cli.mustRun("ranks", "primes"))
	assert.Equal(t, "primes: 4 values in 1 buckets\n", cli.mustRun("size", "primes"))
	assert.Equal(t, "5: true\n6: false\n", cli.mustRun("contains", "primes", "5", "6"))
}

func TestCLI_AddFromStdin(t *testing.T) {
	cli := newCLI(t)

	_, err := cli.runWithInput("10 20\n30 40000 -1\n", "add", "s")
	require.NoError(t, err)
	assert.Equal(t, "{10 20 30}\n", cli.mustRun("show", "--compact", "s"))

	_, err = cli.runWithInput("20 -1", "remove", "s")
	require.NoError(t, err)
	assert.Equal(t, "{10 30}\n", cli.mustRun("show", "--compact", "s"))

	_, err = cli.runWithInput("1 2 x -1", "add", "s")
	assert.Error(t, err)
	assert.Equal(t, "{10 30}\n", cli.mustRun("show", "--compact", "s"))
}

func TestCLI_Algebra(t *testing.T) {
	cli := newCLI(t)
	cli.mustRun("add", "a", "1", "2", "3", "1000")
	cli.mustRun("add", "b", "2", "3", "4", "2000")

	tests := []struct {
		cmd  string
		want string
	}{
		{"union", "{1 2 3 4 1000 2000}"},
		{"intersect", "{2 3}"},
		{"diff", "{1 1000}"},
		{"symdiff", "{1 4 1000 2000}"},
	}
	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			out := cli.mustRun(tt.cmd, "--into", "r-"+tt.cmd, "a", "b")
			assert.Contains(t, out, "r-"+tt.cmd+":")
			assert.Equal(t, tt.want+"\n", cli.mustRun("show", "--compact", "r-"+tt.cmd))
		})
	}

	// Without --into the receiver is replaced.
	cli.mustRun("intersect", "a", "b")
	assert.Equal(t, "{2 3}\n", cli.mustRun("show", "--compact", "a"))
	assert.Equal(t, "{2 3 4 2000}\n", cli.mustRun("show", "--compact", "b"))
}

func TestCLI_SelfAliasing(t *testing.T) {
	cli := newCLI(t)
	cli.mustRun("add", "a", "1", "2")

	cli.mustRun("union", "a", "a")
	assert.Equal(t, "{1 2}\n", cli.mustRun("show", "--compact", "a"))

	cli.mustRun("symdiff", "a", "a")
	assert.Equal(t, "{}\n", cli.mustRun("show", "--compact", "a"))
}

func TestCLI_Predicates(t *testing.T) {
	cli := newCLI(t)
	cli.mustRun("add", "small", "1", "2")
	cli.mustRun("add", "big", "1", "2", "3")

	assert.Equal(t, "true\n", cli.mustRun("subset", "small", "big"))
	assert.Equal(t, "false\n", cli.mustRun("subset", "big", "small"))
	assert.Equal(t, "false\n", cli.mustRun("equal", "small", "big"))

	cli.mustRun("add", "small", "3")
	assert.Equal(t, "true\n", cli.mustRun("equal", "small", "big"))
}

func TestCLI_ListClearDelete(t *testing.T) {
	cli := newCLI(t)
	cli.mustRun("add", "b", "1")
	cli.mustRun("add", "a", "1", "2")

	out := cli.mustRun("list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "a "))
	assert.Contains(t, lines[0], " B")

	cli.mustRun("clear", "a")
	assert.Equal(t, "-1\n", cli.mustRun("show", "a"))

	cli.mustRun("delete", "a", "b")
	assert.Empty(t, cli.mustRun("list"))
	_, err := os.Stat(filepath.Join(cli.dir, "a.set"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCLI_Compression(t *testing.T) {
	cli := newCLI(t)
	cli.mustRun("--compression", "zstd", "add", "z", "5", "6")

	data, err := os.ReadFile(filepath.Join(cli.dir, "z.set"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x28, 0xb5, 0x2f, 0xfd}, data[:4])

	// Any reader detects the encoding.
	assert.Equal(t, "{5 6}\n", cli.mustRun("show", "--compact", "z"))
}

func TestCLI_Errors(t *testing.T) {
	cli := newCLI(t)

	_, err := cli.runWithInput("", "show", "missing")
	assert.Error(t, err)

	_, err = cli.runWithInput("", "union", "missing", "other")
	assert.Error(t, err)

	_, err = cli.runWithInput("", "add", "bad/name", "1")
	assert.Error(t, err)

	_, err = cli.runWithInput("", "no-such-command")
	assert.Error(t, err)

	_, err = cli.runWithInput("", "--s3-bucket", "b", "--minio-endpoint", "localhost:9000", "list")
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestCLI_Throttled(t *testing.T) {
	cli := newCLI(t)
	cli.mustRun("--rps", "1000", "--max-inflight", "2", "add", "t", "9")
	assert.Equal(t, "{9}\n", cli.mustRun("--rps", "1000", "show", "--compact", "t"))
}
