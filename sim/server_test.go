package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_Tick_Idle_NoOp(t *testing.T) {
	// GIVEN an idle server
	s := NewServer(0)

	// WHEN ticked THEN nothing is returned and no busy time accrues
	assert.Nil(t, s.Tick())
	assert.True(t, s.Idle())
	assert.Equal(t, int64(0), s.BusyTicks)
}

func TestServer_Tick_ReturnsJobOnCompletion(t *testing.T) {
	// GIVEN a server holding a 2-tick job
	s := NewServer(3)
	job := NewJob(1, 2, 0)
	s.Assign(job, 4)
	assert.Equal(t, StateRunning, job.State)
	assert.Equal(t, int64(4), job.StartTick)
	assert.Same(t, job, s.Held())

	// WHEN ticked once THEN the job is still held
	assert.Nil(t, s.Tick())
	assert.False(t, s.Idle())

	// WHEN ticked again THEN the completed job is handed back and the server is idle
	done := s.Tick()
	require.NotNil(t, done)
	assert.Same(t, job, done)
	assert.True(t, s.Idle())
	assert.Equal(t, int64(2), s.BusyTicks)
}

func TestServer_Tick_ZeroDurationJob_TakesOneTick(t *testing.T) {
	s := NewServer(0)
	job := NewJob(1, 0, 0)
	s.Assign(job, 0)

	done := s.Tick()
	require.NotNil(t, done)
	assert.Equal(t, int64(1), done.Age)
	assert.Equal(t, int64(1), s.BusyTicks)
}

func TestServer_String(t *testing.T) {
	s := NewServer(2)
	assert.Equal(t, "server-2(idle)", s.String())
	s.Assign(NewJob(9, 1, 0), 0)
	assert.Equal(t, "server-2(job 9)", s.String())
}
