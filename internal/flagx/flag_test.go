package flagx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	got := FilterArgs([]string{"-a", "http://x", "-z", "1"}, []string{"-a"})
	require.Equal(t, []string{"-a", "http://x"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	got := FilterArgs([]string{"-a=http://x", "--other=1"}, []string{"-a"})
	require.Equal(t, []string{"-a=http://x"}, got)
}

func TestFilterArgs_FlagWithoutValue(t *testing.T) {
	got := FilterArgs([]string{"-a", "-b", "v"}, []string{"-a", "-b"})
	require.Equal(t, []string{"-a", "-b", "v"}, got)
}

func TestFilterArgs_NothingAllowed(t *testing.T) {
	got := FilterArgs([]string{"-a", "x"}, nil)
	require.Empty(t, got)
}
