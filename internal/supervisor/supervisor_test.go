package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestRun_RestartsTaskAfterError(t *testing.T) {
	s := New(10*time.Millisecond, zerolog.Nop())
	var calls int32

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	s.Add("flaky", func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("boom")
	})

	_ = s.Run(ctx)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(2))
}

func TestRun_IndependentTasksDoNotBlockEachOther(t *testing.T) {
	s := New(5*time.Millisecond, zerolog.Nop())
	var fastCalls, slowCalls int32

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	s.Add("fast", func(ctx context.Context) error {
		atomic.AddInt32(&fastCalls, 1)
		return nil
	})
	s.Add("slow", func(ctx context.Context) error {
		atomic.AddInt32(&slowCalls, 1)
		<-ctx.Done()
		return ctx.Err()
	})

	_ = s.Run(ctx)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&fastCalls), int32(2))
	assert.Equal(t, int32(1), atomic.LoadInt32(&slowCalls))
}

func TestRunOnce_RecoversPanic(t *testing.T) {
	err := make(chan error, 1)
	go func() {
		e := runOnce(context.Background(), "panicker", func(ctx context.Context) error {
			panic("exploded")
		})
		err <- e
	}()
	select {
	case e := <-err:
		assert.ErrorContains(t, e, "exploded")
	case <-time.After(time.Second):
		t.Fatal("runOnce did not return")
	}
}
