package rewrites

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeutralizeAlarms(t *testing.T) {
	lines := []string{
		"\tif ok := armWatchdog(30 * time.Second); !ok {\n",
		"\t\tt.Fatal(\"watchdog refused\")\n",
		"\t}\n",
	}

	result := NeutralizeAlarms(lines)

	require.Len(t, result, 3)
	assert.Equal(t, "\tif ok := armWatchdog(0); !ok {\n", result[0])
	assert.Equal(t, lines[1], result[1])
}

func TestNeutralizeAlarms_LineCountPreserved(t *testing.T) {
	lines := []string{
		"armWatchdog(1)\n",
		"plain()\n",
		"armWatchdog(deadline)\n",
	}

	result := NeutralizeAlarms(lines)

	require.Len(t, result, len(lines))
	assert.Equal(t, "armWatchdog(0)\n", result[0])
	assert.Equal(t, "plain()\n", result[1])
	assert.Equal(t, "armWatchdog(0)\n", result[2])
}

func TestNeutralizeAlarms_NoCalls(t *testing.T) {
	lines := []string{"a()\n", "b()\n"}

	assert.Equal(t, lines, NeutralizeAlarms(lines))
}

func TestNeutralizeAlarms_AlreadyDisarmed(t *testing.T) {
	lines := []string{"\tarmWatchdog(0)\n"}

	assert.Equal(t, lines, NeutralizeAlarms(lines))
}
