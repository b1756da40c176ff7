package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRetryPolicy(t *testing.T) {
	tests := []struct {
		value string
		want  commands.RetryPolicy
	}{
		{"", commands.RetryPolicyReject},
		{"reject", commands.RetryPolicyReject},
		{"REJECT", commands.RetryPolicyReject},
		{"allow", commands.RetryPolicyAllow},
		{" Allow ", commands.RetryPolicyAllow},
	}
	for _, tt := range tests {
		got, err := commands.ParseRetryPolicy(tt.value)
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.want, got, tt.value)
	}

	_, err := commands.ParseRetryPolicy("sometimes")
	assert.Error(t, err)
}
