// Package rewrites contains the line-level text rewrites applied to a test
// harness file before debugging. These deliberately work on raw lines, not
// the AST: exact textual fidelity outside the touched lines keeps the
// rewritten file diffable against the original.
package rewrites

import "regexp"

// timeoutGuardPattern matches a line whose trimmed content begins with the
// per-test timeout guard emitted by the harness generator, e.g.
//
//	defer failAfter(5 * time.Second)()
//
// Removal is line-granular: the whole line goes.
var timeoutGuardPattern = regexp.MustCompile(`^\s*defer failAfter\b`)

// RemoveTimeouts drops every timeout guard line. Input without guards is
// returned as an equal copy.
func RemoveTimeouts(lines []string) []string {
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		if timeoutGuardPattern.MatchString(line) {
			continue
		}

		result = append(result, line)
	}

	return result
}

// RemovedBefore counts the timeout guard lines strictly before the 1-based
// target line. Callers holding a line number computed against the original
// file must subtract this count after RemoveTimeouts shifts the file.
func RemovedBefore(lines []string, target int) int {
	if target <= 1 {
		return 0
	}

	limit := target - 1
	if limit > len(lines) {
		limit = len(lines)
	}

	removed := 0

	for _, line := range lines[:limit] {
		if timeoutGuardPattern.MatchString(line) {
			removed++
		}
	}

	return removed
}
