package app

import (
	"testing"

	"jobboard/internal/config"
	"jobboard/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenAddr(t *testing.T) {
	addr, err := ListenAddr("8080")
	require.NoError(t, err)
	assert.Equal(t, ":8080", addr)

	addr, err = ListenAddr(" :9000 ")
	require.NoError(t, err)
	assert.Equal(t, ":9000", addr)

	_, err = ListenAddr("  ")
	assert.Error(t, err)
}

func TestNewScheduler_RejectsBadSchedule(t *testing.T) {
	c := &Container{Log: logger.Nop()}
	c.Config.Sync.Schedule = "every now and then"
	c.Config.Cleanup.Schedule = "0 3 * * *"

	_, err := newScheduler(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job post sync")
}

func TestNewScheduler_EmptySchedulesAreManualOnly(t *testing.T) {
	c := &Container{Config: config.Config{}, Log: logger.Nop()}

	s, err := newScheduler(c)
	require.NoError(t, err)
	require.NotNil(t, s)
}
