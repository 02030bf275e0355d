package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func blockUntilDone(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestRunnerFirstExitStopsOthers(t *testing.T) {
	failure := errors.New("port gone")
	r := NewRunner().Go(
		NamedRun("waiter", RunFunc(blockUntilDone)),
		RunFunc(func(context.Context) error { return failure }),
	)
	done := make(chan error, 1)
	go func() { done <- r.Wait() }()
	select {
	case err := <-done:
		require.Equal(t, failure, err)
	case <-time.After(time.Second):
		t.Fatal("runner did not stop")
	}
}

func TestRunnerStop(t *testing.T) {
	r := NewRunner().Go(RunFunc(blockUntilDone), RunFunc(blockUntilDone))
	r.Stop()
	require.NoError(t, r.Wait())
}

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Add(nil).Aggregate())

	first := errors.New("first")
	require.Equal(t, first, errs.Add(first, nil).Aggregate())

	errs.Add(errors.New("second"))
	err := errs.Aggregate()
	require.Error(t, err)
	require.Equal(t, "Multiple errors:\nfirst\nsecond", err.Error())
}

func TestRunWithContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	unblock := make(chan struct{})
	var canceled bool
	go cancel()
	err := RunWithContextCancel(ctx, func() {
		canceled = true
		close(unblock)
	}, func() error {
		<-unblock
		return errors.New("closed")
	})
	require.Equal(t, context.Canceled, err)
	require.True(t, canceled)

	err = RunWithContextCancel(context.Background(), nil, func() error { return nil })
	require.NoError(t, err)
}
