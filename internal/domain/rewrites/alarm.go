package rewrites

import "regexp"

// alarmCallPattern matches the watchdog arming call wherever it appears on
// a line. The call site must survive the rewrite: harness control flow
// checks its return, so the argument list becomes a no-op value instead of
// the line being dropped.
var alarmCallPattern = regexp.MustCompile(`armWatchdog\([^)]*\)`)

// NeutralizeAlarms rewrites every armWatchdog call so it arms nothing.
// Input without arming calls is returned as an equal copy.
func NeutralizeAlarms(lines []string) []string {
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		result = append(result, alarmCallPattern.ReplaceAllString(line, "armWatchdog(0)"))
	}

	return result
}
