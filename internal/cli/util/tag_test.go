package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/pyrelease/relgate/internal/errors"
)

func TestRunTag_Plain(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  []string
	}{
		"candidate": {
			input: "3.13.0rc1",
			want: []string{
				"tag: 3.13.0rc1\n",
				"level: candidate\n",
				"serial: 1\n",
				"git_tag: v3.13.0rc1\n",
				"branch: 3.13\n",
				"includes_docs: true\n",
			},
		},
		"alpha": {
			input: "3.14.0a7",
			want: []string{
				"level: alpha\n",
				"branch: main\n",
				"includes_docs: false\n",
			},
		},
		"first beta": {
			input: "3.14.0b1",
			want:  []string{"feature_freeze: true\n", "nickname: 3140b1\n"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, runTag(&buf, tt.input, true))
			for _, line := range tt.want {
				assert.Contains(t, buf.String(), line)
			}
		})
	}
}

func TestRunTag_Pretty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, runTag(&buf, "3.12.5", false))
	assert.Contains(t, buf.String(), "final")
	assert.Contains(t, buf.String(), "v3.12.5")
}

func TestRunTag_Invalid(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := runTag(&buf, "3.13", true)
	require.Error(t, err)

	cliErr := apperrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Equal(t, apperrors.Argument, cliErr.Category)
	assert.True(t, apperrors.Is(err, apperrors.ErrParse))
	assert.Empty(t, buf.String())
}
