package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceCmd(t *testing.T) {
	input := "___TEST_START___\n[EXE] total := add(2, 2)\n" +
		"___FAILURE_SUMMARY_START___\nError: Not equal\n___FAILURE_SUMMARY_END___\n"

	out, err := execute(t, input, "trace")
	require.NoError(t, err)

	assert.Contains(t, out, "___SECTION_SEP___")
	assert.Contains(t, out, "Error: Not equal")
	assert.Contains(t, out, "total")
}

func TestCrashCmd(t *testing.T) {
	input := `File "/proj/calc.go", line 42, in Add` + "\npanic: boom\n"

	out, err := execute(t, input, "crash")
	require.NoError(t, err)

	assert.Contains(t, out, "/proj/calc.go")
	assert.Contains(t, out, "panic: boom")
}

func TestErrorCmd(t *testing.T) {
	out, err := execute(t, "Actual:   5\nExpected: 4\n", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "Actual:")
	assert.Contains(t, out, "Expected:")
}

func TestSourceCmd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calc_test.go")

	source := "package sample\n\nfunc TestAdd() {\n\ttotal := 4\n\t_ = total\n}\n"
	require.NoError(t, os.WriteFile(path, []byte(source), 0o600))

	out, err := execute(t, "", "source", path, "--method", "TestAdd", "--fail-line", "4")
	require.NoError(t, err)

	assert.Contains(t, out, "TestAdd")
	assert.Contains(t, out, "-->")
}

func TestSourceCmd_MethodMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calc_test.go")

	require.NoError(t, os.WriteFile(path, []byte("package sample\n"), 0o600))

	out, err := execute(t, "", "source", path, "--method", "TestNope")
	require.NoError(t, err)

	assert.Contains(t, out, "method source not found")
}
