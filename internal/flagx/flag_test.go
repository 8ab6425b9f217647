package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-a", "http://localhost:3001/api", "-x", "1"},
			allowed: []string{"-a"},
			want:    []string{"-a", "http://localhost:3001/api"},
		},
		{
			name:    "combined value",
			args:    []string{"-t=5s", "-d=data/admin.db"},
			allowed: []string{"-t"},
			want:    []string{"-t=5s"},
		},
		{
			name:    "flag without value before another flag",
			args:    []string{"-v", "-a", "x"},
			allowed: []string{"-v", "-a"},
			want:    []string{"-v", "-a", "x"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "x"},
			allowed: nil,
			want:    []string{},
		},
		{
			name:    "positional arguments are dropped",
			args:    []string{"list", "-i", "3s", "extra"},
			allowed: []string{"-i"},
			want:    []string{"-i", "3s"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "cfg.jsonc", ConfigPath([]string{"-a", "x", "-c", "cfg.jsonc"}))
	assert.Equal(t, "other.json", ConfigPath([]string{"-config=other.json"}))
	assert.Equal(t, "", ConfigPath([]string{"-a", "x"}))
	assert.Equal(t, "", ConfigPath(nil))
}
