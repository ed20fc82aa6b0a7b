package flagx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	args := []string{"-c", "conf.json", "-x", "other"}
	got := FilterArgs(args, []string{"-c"})
	require.Equal(t, []string{"-c", "conf.json"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	args := []string{"--config=conf.json", "--json", "batch", "list"}
	got := FilterArgs(args, []string{"--config"})
	require.Equal(t, []string{"--config=conf.json"}, got)
}

func TestFilterArgs_FlagWithoutValue(t *testing.T) {
	// The allowed flag is last; there is no value to grab.
	args := []string{"login", "-c"}
	got := FilterArgs(args, []string{"-c"})
	require.Equal(t, []string{"-c"}, got)
}

func TestFilterArgs_ValueLookingLikeFlagIsNotConsumed(t *testing.T) {
	args := []string{"-c", "-v"}
	got := FilterArgs(args, []string{"-c"})
	require.Equal(t, []string{"-c"}, got)
}

func TestFilterArgs_NothingAllowed(t *testing.T) {
	got := FilterArgs([]string{"batch", "list", "--status", "active"}, nil)
	require.Empty(t, got)
}
