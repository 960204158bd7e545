package adapter

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	m "github.com/mouse-blink/stakeout/internal/model"
)

// Workdir file names shared with the harness generator and the external
// management tooling.
const (
	manualBreakpointsFile = "manual_breakpoints"
	manualSkipFile        = "manual_skip"
	errorSummaryFile      = "error_summary"
)

// StoreAdapter reads the flat-file stores in the session workdir. The files
// are produced and edited by external tooling; this side only consumes
// them, fresh on every call, with no caching and no locking (the tool is
// built for a single interactive user).
type StoreAdapter interface {
	// ReadManualBreakpoints parses the persisted breakpoint store. Each
	// entry is `<file-path>:<line>`; blank lines and malformed entries
	// (missing separator, non-integer line) are silently skipped. A
	// missing store yields no breakpoints and no error.
	ReadManualBreakpoints() ([]m.BreakpointRequest, error)

	// ReadSkipList returns the persisted test-method skip list, one name
	// per line. A missing store yields an empty list.
	ReadSkipList() ([]string, error)

	// ErrorSummaryPath is where the harness persists its failure summary.
	ErrorSummaryPath() m.Path
}

// FileStoreAdapter reads the stores from a workdir on the local filesystem.
type FileStoreAdapter struct {
	workdir string
}

// NewFileStoreAdapter constructs a FileStoreAdapter rooted at workdir.
func NewFileStoreAdapter(workdir string) *FileStoreAdapter {
	return &FileStoreAdapter{workdir: workdir}
}

// ReadManualBreakpoints reads the manual breakpoint store.
func (s *FileStoreAdapter) ReadManualBreakpoints() ([]m.BreakpointRequest, error) {
	lines, err := s.readLines(manualBreakpointsFile)
	if err != nil {
		return nil, err
	}

	var requests []m.BreakpointRequest

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Split on the last colon: the path may contain colons of its own.
		sep := strings.LastIndexByte(line, ':')
		if sep < 0 {
			continue
		}

		lineno, err := strconv.Atoi(line[sep+1:])
		if err != nil {
			continue
		}

		requests = append(requests, m.BreakpointRequest{
			File: m.Path(line[:sep]),
			Line: lineno,
		})
	}

	return requests, nil
}

// ReadSkipList reads the manual skip store.
func (s *FileStoreAdapter) ReadSkipList() ([]string, error) {
	lines, err := s.readLines(manualSkipFile)
	if err != nil {
		return nil, err
	}

	var names []string

	for _, line := range lines {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}

	return names, nil
}

// ErrorSummaryPath returns the path of the persisted error summary.
func (s *FileStoreAdapter) ErrorSummaryPath() m.Path {
	return m.Path(filepath.Join(s.workdir, errorSummaryFile))
}

func (s *FileStoreAdapter) readLines(name string) ([]string, error) {
	f, err := os.Open(filepath.Join(s.workdir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, err
	}

	defer func() { _ = f.Close() }()

	var lines []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	return lines, scanner.Err()
}
