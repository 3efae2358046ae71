package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "agent.json", false},
		{"nested", "flows/review.yaml", false},
		{"dash and dot", "my-flow.v2.toml", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "../secret.json", true},
		{"embedded traversal", "flows/../../x.json", true},
		{"backslash", `flows\x.json`, true},
		{"null byte", "x\x00.json", true},
		{"newline", "x\n.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, Is(err, ErrCodeInvalidPath))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, ValidateFormat("json", "json", "yaml"))
	assert.NoError(t, ValidateFormat("YAML", "json", "yaml"))

	err := ValidateFormat("toml", "json", "yaml")
	require.Error(t, err)
	assert.True(t, Is(err, ErrCodeInvalidFormat))
	assert.Contains(t, err.Error(), "json, yaml")

	assert.True(t, Is(ValidateFormat("", "json"), ErrCodeInvalidFormat))
}
