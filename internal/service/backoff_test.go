package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoffDelay_DoublesUpToCap(t *testing.T) {
	b := Backoff{Base: 2 * time.Second, Cap: 60 * time.Second}

	tests := []struct {
		retryCount int
		want       time.Duration
	}{
		{retryCount: 0, want: 2 * time.Second},
		{retryCount: 1, want: 2 * time.Second},
		{retryCount: 2, want: 4 * time.Second},
		{retryCount: 3, want: 8 * time.Second},
		{retryCount: 4, want: 16 * time.Second},
		{retryCount: 5, want: 32 * time.Second},
		{retryCount: 6, want: 60 * time.Second},
		{retryCount: 20, want: 60 * time.Second},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, b.Delay(tt.retryCount), "retryCount=%d", tt.retryCount)
	}
}

func TestBackoffDelay_CapBelowBase(t *testing.T) {
	b := Backoff{Base: 10 * time.Second, Cap: 4 * time.Second}

	assert.Equal(t, 4*time.Second, b.Delay(1))
	assert.Equal(t, 4*time.Second, b.Delay(3))
}
