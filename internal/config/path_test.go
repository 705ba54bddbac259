package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("REMIS_DATA", "/var/lib/remis")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/remis.db", want: filepath.Join(home, "remis.db")},
		{in: "$REMIS_DATA/remis.db", want: "/var/lib/remis/remis.db"},
		{in: "${REMIS_DATA}/x.db", want: "/var/lib/remis/x.db"},
		{in: "/abs/~user/file", want: "/abs/~user/file"},
		{in: "relative.db", want: "relative.db"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
