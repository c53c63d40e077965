package syncer

import (
	"context"
	"sync"
)

// pollTask is the handle of one session's periodic poll goroutine. Only the
// Controller holds it; cancelling it is the first step of every teardown.
type pollTask struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	// tickMu keeps ticks of one session strictly sequential.
	tickMu sync.Mutex
}

func newPollTask() *pollTask {
	ctx, cancel := context.WithCancel(context.Background())
	return &pollTask{
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// stop cancels the task and blocks until its goroutine has returned.
func (t *pollTask) stop() {
	t.cancel()
	<-t.done
}
