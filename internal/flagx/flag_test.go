package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	sessionFlags := []string{"-a", "-r", "-d", "-t", "-test"}

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "config flag only",
			args:    []string{"-c", "conf.json", "-a", "http://api"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=alt.json", "-a", "http://api"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=alt.json"},
		},
		{
			name:    "session flags keep their values and order",
			args:    []string{"-d", "/var/lib/gs", "-c", "conf.json", "-a", "http://api", "-t", "5s"},
			allowed: sessionFlags,
			want:    []string{"-d", "/var/lib/gs", "-a", "http://api", "-t", "5s"},
		},
		{
			name:    "boolean flag followed by another flag",
			args:    []string{"-test", "-r", "http://cb/"},
			allowed: sessionFlags,
			want:    []string{"-test", "-r", "http://cb/"},
		},
		{
			name:    "flag without value at end is kept as-is",
			args:    []string{"-a"},
			allowed: sessionFlags,
			want:    []string{"-a"},
		},
		{
			name:    "next dash token is never taken as a value",
			args:    []string{"-c", "-config=alt.json"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-c", "-config=alt.json"},
		},
		{
			name:    "unknown flags and positionals dropped",
			args:    []string{"-x", "1", "-y=2", "positional"},
			allowed: sessionFlags,
			want:    []string{},
		},
		{
			name:    "empty args",
			args:    nil,
			allowed: sessionFlags,
			want:    []string{},
		},
		{
			name:    "repeated flag preserved in order",
			args:    []string{"-a", "http://one", "-a", "http://two"},
			allowed: sessionFlags,
			want:    []string{"-a", "http://one", "-a", "http://two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c with value", func(t *testing.T) {
		os.Args = []string{"gscli", "-c", "/path/short.json"}
		assert.Equal(t, "/path/short.json", ConfigFileFlag())
	})

	t.Run("long -config with value", func(t *testing.T) {
		os.Args = []string{"gscli", "-config", "/path/long.json"}
		assert.Equal(t, "/path/long.json", ConfigFileFlag())
	})

	t.Run("session flags are ignored", func(t *testing.T) {
		os.Args = []string{"gscli", "-a", "http://api", "-test"}
		assert.Empty(t, ConfigFileFlag())
	})

	t.Run("multiple flags, last wins", func(t *testing.T) {
		os.Args = []string{"gscli", "-c", "/path/1.json", "-config", "/path/2.json"}
		assert.Equal(t, "/path/2.json", ConfigFileFlag())
	})
}

func TestConfigFileFlagFrom_ExplicitArgs(t *testing.T) {
	assert.Equal(t, "x.json", ConfigFileFlagFrom([]string{"-d", "data", "-c", "x.json"}))
	assert.Empty(t, ConfigFileFlagFrom(nil))
}
