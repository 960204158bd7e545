package adapter

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// RunnerAdapter builds and runs the standalone harness binary for the
// preflight dry run. Neither operation carries its own timeout: the harness
// timeouts were deliberately stripped for debugging, and the preflight step
// inherits that gap.
type RunnerAdapter interface {
	// Build compiles the main package in dir into a temporary binary and
	// returns its path with a cleanup func. On failure the returned error
	// message carries the compiler output.
	Build(dir string) (bin string, cleanup func(), err error)

	// Run executes the binary with args and returns its combined output.
	// A non-zero exit is reported as the error, output still returned.
	Run(bin string, args ...string) (string, error)
}

// LocalRunnerAdapter shells out to the Go toolchain on the local machine.
type LocalRunnerAdapter struct {
	goBin string
}

// NewLocalRunnerAdapter constructs a LocalRunnerAdapter using the given go
// binary (plain "go" when empty).
func NewLocalRunnerAdapter(goBin string) *LocalRunnerAdapter {
	if goBin == "" {
		goBin = "go"
	}

	return &LocalRunnerAdapter{goBin: goBin}
}

// Build compiles the harness package in dir.
func (r *LocalRunnerAdapter) Build(dir string) (string, func(), error) {
	bin := filepath.Join(os.TempDir(), "stakeout-"+uuid.NewString())

	cmd := exec.Command(r.goBin, "build", "-o", bin, ".")
	cmd.Dir = dir

	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", func() {}, &BuildError{Output: string(out), Err: err}
	}

	return bin, func() { _ = os.Remove(bin) }, nil
}

// Run executes the harness binary, pumping stdout and stderr concurrently
// so a chatty fixture setup cannot deadlock on a full pipe.
func (r *LocalRunnerAdapter) Run(bin string, args ...string) (string, error) {
	cmd := exec.Command(bin, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", err
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", err
	}

	if err := cmd.Start(); err != nil {
		return "", err
	}

	var outBuf, errBuf bytes.Buffer

	var g errgroup.Group

	g.Go(func() error {
		_, copyErr := io.Copy(&outBuf, stdout)

		return copyErr
	})
	g.Go(func() error {
		_, copyErr := io.Copy(&errBuf, stderr)

		return copyErr
	})

	pumpErr := g.Wait()
	waitErr := cmd.Wait()

	combined := outBuf.String() + errBuf.String()

	if waitErr != nil {
		return combined, waitErr
	}

	return combined, pumpErr
}

// BuildError carries the compiler output of a failed build.
type BuildError struct {
	Output string
	Err    error
}

func (e *BuildError) Error() string {
	if e.Output != "" {
		return e.Output
	}

	return e.Err.Error()
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
