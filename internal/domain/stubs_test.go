package domain

import (
	"os"

	m "github.com/mouse-blink/stakeout/internal/model"
)

// stubStore is an in-memory StoreAdapter.
type stubStore struct {
	manual      []m.BreakpointRequest
	skip        []string
	summaryPath m.Path
	err         error
}

func (s *stubStore) ReadManualBreakpoints() ([]m.BreakpointRequest, error) {
	return s.manual, s.err
}

func (s *stubStore) ReadSkipList() ([]string, error) {
	return s.skip, s.err
}

func (s *stubStore) ErrorSummaryPath() m.Path {
	if s.summaryPath == "" {
		return ".stakeout/error_summary"
	}

	return s.summaryPath
}

// memFS is an in-memory SourceFSAdapter. AbsPath is the identity so tests
// can assert against the paths they put in.
type memFS struct {
	files map[m.Path][]byte
}

func newMemFS() *memFS {
	return &memFS{files: map[m.Path][]byte{}}
}

func (f *memFS) ReadFile(path m.Path) ([]byte, error) {
	content, ok := f.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}

	return content, nil
}

func (f *memFS) WriteFile(path m.Path, content []byte, _ os.FileMode) error {
	f.files[path] = content

	return nil
}

func (f *memFS) AbsPath(path m.Path) (m.Path, error) {
	return path, nil
}

func (f *memFS) FileInfo(path m.Path) (os.FileInfo, error) {
	if _, ok := f.files[path]; !ok {
		return nil, os.ErrNotExist
	}

	return nil, nil
}

// stubRunner scripts the build and run steps of a preflight.
type stubRunner struct {
	buildErr error
	runOut   string
	runErr   error
	ranArgs  []string
}

func (r *stubRunner) Build(string) (string, func(), error) {
	if r.buildErr != nil {
		return "", func() {}, r.buildErr
	}

	return "/tmp/fake-bin", func() {}, nil
}

func (r *stubRunner) Run(_ string, args ...string) (string, error) {
	r.ranArgs = args

	return r.runOut, r.runErr
}

// stubPreflight always reports the scripted outcome.
type stubPreflight struct {
	ok     bool
	reason string
}

func (p *stubPreflight) Check(m.Path, string) (bool, string) {
	return p.ok, p.reason
}

// passHighlighter returns code unchanged so content assertions stay simple.
type passHighlighter struct{}

func (passHighlighter) Code(src string) string {
	return src
}
