package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureDriver struct {
	job     func(time.Time)
	stopped bool
}

func (c *captureDriver) Start(_ context.Context, job func(time.Time)) error {
	c.job = job
	return nil
}

func (c *captureDriver) Stop(context.Context) error {
	c.stopped = true
	return nil
}

func TestSchedulerRefreshesComments(t *testing.T) {
	api := &fakeAPI{}
	f := newFixture(t, api)
	driver := &captureDriver{}
	s := NewScheduler(driver, f.dash)

	require.NoError(t, s.Start(context.Background()))
	require.NotNil(t, driver.job)

	driver.job(f.clock.Now())
	driver.job(f.clock.Now())
	assert.Equal(t, []string{"comments:", "comments:"}, api.Calls())

	require.NoError(t, s.Stop(context.Background()))
	assert.True(t, driver.stopped)
}

func TestSchedulerWithoutDriver(t *testing.T) {
	s := NewScheduler(nil, nil)
	assert.NoError(t, s.Start(context.Background()))
	assert.NoError(t, s.Stop(context.Background()))
}
