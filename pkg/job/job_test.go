package job_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/helpdesk/pkg/job"
)

func TestService_RunsAndStops(t *testing.T) {
	t.Parallel()

	var runs, panics atomic.Int32

	ctx, cancel := context.WithCancel(context.Background())

	s := job.NewService().
		RegisterJob("counter", 10*time.Millisecond, func(context.Context) error {
			runs.Add(1)
			return errors.New("keeps going")
		}).
		RegisterJob("panics", 10*time.Millisecond, func(context.Context) error {
			panics.Add(1)
			panic("boom")
		}).
		TryRegisterJob(false, "disabled", time.Millisecond, func(context.Context) error {
			t.Error("disabled job must not run")
			return nil
		})

	s.Start(ctx)

	require.Eventually(t, func() bool {
		return runs.Load() >= 2 && panics.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	s.Stop()
}
