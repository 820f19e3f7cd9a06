package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRequestStatus(t *testing.T) {
	tests := []struct {
		value   string
		want    RequestStatus
		wantErr bool
	}{
		{value: "pending", want: StatusPending},
		{value: "approved", want: StatusApproved},
		{value: "completed", want: StatusCompleted},
		{value: "cancelled", want: StatusCancelled},
		{value: "rejected", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			status, err := NewRequestStatus(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestRequestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusApproved.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}
