package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/stakeout/internal/adapter"
)

func newTestPreflight(fs *memFS, runner *stubRunner) Preflight {
	return NewPreflight(fs, adapter.NewLocalGoFileAdapter(), runner)
}

func TestPreflight_Check_OK(t *testing.T) {
	fs := newMemFS()
	fs.files["/proj/sample_test.go"] = []byte(sampleSuiteSource)
	runner := &stubRunner{runOut: "setup ok"}

	ok, reason := newTestPreflight(fs, runner).Check("/proj/sample_test.go", "TestAdd")

	assert.True(t, ok)
	assert.Empty(t, reason)
	assert.Equal(t, []string{"-preflight", "-method", "TestAdd"}, runner.ranArgs)
}

func TestPreflight_Check_MethodNotOnSuite(t *testing.T) {
	fs := newMemFS()
	fs.files["/proj/sample_test.go"] = []byte(sampleSuiteSource)

	ok, reason := newTestPreflight(fs, &stubRunner{}).Check("/proj/sample_test.go", "TestMissing")

	assert.False(t, ok)
	assert.Equal(t, "no test suite declares method TestMissing", reason)
}

func TestPreflight_Check_NoSuiteInFile(t *testing.T) {
	fs := newMemFS()
	fs.files["/proj/plain_test.go"] = []byte("package p\n\nfunc TestX(t *testing.T) {\n\tt.Fail()\n}\n")

	ok, reason := newTestPreflight(fs, &stubRunner{}).Check("/proj/plain_test.go", "TestX")

	assert.False(t, ok)
	assert.Contains(t, reason, "no test suite declares method")
}

func TestPreflight_Check_MethodViaEmbeddedStruct(t *testing.T) {
	source := `package sample

import "github.com/stretchr/testify/suite"

type baseSuite struct {
	suite.Suite
}

func (s *baseSuite) TestShared() {
	s.True(true)
}

type CalcSuite struct {
	baseSuite
}
`

	fs := newMemFS()
	fs.files["/proj/embed_test.go"] = []byte(source)
	runner := &stubRunner{}

	ok, reason := newTestPreflight(fs, runner).Check("/proj/embed_test.go", "TestShared")

	require.True(t, ok, reason)
}

func TestPreflight_Check_FirstSuiteInSourceOrderWins(t *testing.T) {
	// Two suites declare the same method; the scan must settle on the one
	// declared first.
	source := `package sample

import "github.com/stretchr/testify/suite"

type FirstSuite struct {
	suite.Suite
}

func (s *FirstSuite) TestBoth() {
	s.True(true)
}

type SecondSuite struct {
	suite.Suite
}

func (s *SecondSuite) TestBoth() {
	s.True(true)
}
`

	goAdapter := adapter.NewLocalGoFileAdapter()

	name, err := findSuiteFor(goAdapter, "two_test.go", []byte(source), "TestBoth")
	require.NoError(t, err)
	assert.Equal(t, "FirstSuite", name)
}

func TestPreflight_Check_ParseError(t *testing.T) {
	fs := newMemFS()
	fs.files["/proj/broken_test.go"] = []byte("package {\n")

	ok, reason := newTestPreflight(fs, &stubRunner{}).Check("/proj/broken_test.go", "TestX")

	assert.False(t, ok)
	assert.Contains(t, reason, "import error:")
}

func TestPreflight_Check_MissingFile(t *testing.T) {
	ok, reason := newTestPreflight(newMemFS(), &stubRunner{}).Check("/proj/gone_test.go", "TestX")

	assert.False(t, ok)
	assert.Contains(t, reason, "import error:")
}

func TestPreflight_Check_BuildFailure(t *testing.T) {
	fs := newMemFS()
	fs.files["/proj/sample_test.go"] = []byte(sampleSuiteSource)
	runner := &stubRunner{buildErr: errors.New("undefined: add")}

	ok, reason := newTestPreflight(fs, runner).Check("/proj/sample_test.go", "TestAdd")

	assert.False(t, ok)
	assert.Equal(t, "import error: undefined: add", reason)
}

func TestPreflight_Check_SetupFailure(t *testing.T) {
	fs := newMemFS()
	fs.files["/proj/sample_test.go"] = []byte(sampleSuiteSource)
	runner := &stubRunner{runOut: "fixture blew up", runErr: errors.New("exit status 1")}

	ok, reason := newTestPreflight(fs, runner).Check("/proj/sample_test.go", "TestAdd")

	assert.False(t, ok)
	assert.Equal(t, "setup failed: fixture blew up", reason)
}

func TestPreflight_Check_SetupFailureWithoutOutput(t *testing.T) {
	fs := newMemFS()
	fs.files["/proj/sample_test.go"] = []byte(sampleSuiteSource)
	runner := &stubRunner{runErr: errors.New("signal: killed")}

	ok, reason := newTestPreflight(fs, runner).Check("/proj/sample_test.go", "TestAdd")

	assert.False(t, ok)
	assert.Equal(t, "setup failed: signal: killed", reason)
}
