package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerVerbose(t *testing.T) {
	log := zap.NewNop()

	assert.True(t, NewLogger(log, true).Verbose())
	assert.False(t, NewLogger(log, false).Verbose())
}

func TestLoggerPrintf(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := NewLogger(zap.New(core), true)

	logger.Printf("applied %d migrations", 3)

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "DB Migration: applied 3 migrations", entries[0].Message)
}
