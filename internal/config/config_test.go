package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDatabaseURL(t *testing.T) {
	t.Parallel()

	require.Equal(t, "sqlite://"+DefaultSQLitePath, NormalizeDatabaseURL(""))

	// Legacy scheme still handed out by some hosting providers.
	require.Equal(t,
		"postgresql://user:pw@host:5432/terarium",
		NormalizeDatabaseURL("postgres://user:pw@host:5432/terarium"))

	// Current scheme and explicit sqlite URLs pass through untouched.
	require.Equal(t,
		"postgresql://user:pw@host:5432/terarium",
		NormalizeDatabaseURL("postgresql://user:pw@host:5432/terarium"))
	require.Equal(t, "sqlite:///tmp/x.db", NormalizeDatabaseURL("sqlite:///tmp/x.db"))
}
