package rewrites

import "strings"

// ReRaiseMarker is the bare re-raise statement in the harness runner block.
// Matched on exact trimmed-line equality, never structurally.
const ReRaiseMarker = "panic(testErr)"

// RunnerIndent is the nesting depth of the runner block in generated
// harness files. The replacement block must reproduce it.
const RunnerIndent = "\t\t\t"

// PatchPostMortem replaces the first line whose trimmed content equals
// ReRaiseMarker with the provided replacement lines, each indented to the
// runner block. Only the first occurrence is replaced; a file without the
// marker comes back unchanged.
func PatchPostMortem(lines []string, replacement []string) []string {
	result := make([]string, 0, len(lines)+len(replacement))
	patched := false

	for _, line := range lines {
		if !patched && strings.TrimSpace(line) == ReRaiseMarker {
			for _, repl := range replacement {
				result = append(result, RunnerIndent+repl+"\n")
			}

			patched = true

			continue
		}

		result = append(result, line)
	}

	return result
}
