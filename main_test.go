package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestClassifyCommand_NoDatabase(t *testing.T) {
	unsetEnv(t, "DATABASE_URL", "DATABASE_TYPE", "TAXONOMY_FILE", "IMPORTANCE_SCALE", "LOG_LEVEL", "LOG_FORMAT")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"title only", []string{"classify", "Climate Action Now Act"}, "Environment\n"},
		{"with description", []string{"classify", "H.R. 12", "Lowers prescription costs"}, "Healthcare\n"},
		{"no keyword", []string{"classify", "Naming a Post Office"}, "Other\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := newRootCmd()
			cmd.SetOut(&out)
			cmd.SetArgs(tt.args)

			require.NoError(t, cmd.Execute())
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestAlignCommand_RequiresDatabase(t *testing.T) {
	unsetEnv(t, "DATABASE_URL", "DATABASE_TYPE")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"align", "--user", "u1", "--rep", "A000370"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database URL required")
}
