package sandboxes

import (
	"context"
	"sync"

	"github.com/reusee/tairlm/syncs"
)

// Asker answers a single prompt with model text.
type Asker interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

type Model func(ctx context.Context, prompt string) (string, error)

// Bridge hands llm_query requests to a dispatcher goroutine that owns the model.
// A caller blocks only itself while waiting for the reply.
type Bridge struct {
	model     Model
	requests  chan bridgeRequest
	closing   chan struct{}
	closeOnce sync.Once
	sem       syncs.Semaphore
	wg        sync.WaitGroup
}

type bridgeRequest struct {
	ctx    context.Context
	prompt string
	reply  chan bridgeReply
}

type bridgeReply struct {
	text string
	err  error
}

var _ Asker = new(Bridge)

func StartBridge(model Model, workers int) *Bridge {
	if workers < 1 {
		workers = 1
	}
	b := &Bridge{
		model:    model,
		requests: make(chan bridgeRequest),
		closing:  make(chan struct{}),
		sem:      syncs.NewSemaphore(workers),
	}
	b.wg.Add(1)
	go b.dispatch()
	return b
}

func (b *Bridge) dispatch() {
	defer b.wg.Done()
	for {
		select {
		case <-b.closing:
			return
		case req := <-b.requests:
			if err := b.sem.AcquireContext(req.ctx); err != nil {
				req.reply <- bridgeReply{
					err: err,
				}
				continue
			}
			b.wg.Add(1)
			go func() {
				defer b.wg.Done()
				defer b.sem.Release()
				text, err := b.model(req.ctx, req.prompt)
				req.reply <- bridgeReply{
					text: text,
					err:  err,
				}
			}()
		}
	}
}

func (b *Bridge) Ask(ctx context.Context, prompt string) (string, error) {
	if b == nil || b.model == nil {
		return "", ErrNoRuntime
	}

	req := bridgeRequest{
		ctx:    ctx,
		prompt: prompt,
		reply:  make(chan bridgeReply, 1),
	}
	select {
	case b.requests <- req:
	case <-b.closing:
		return "", ErrNoRuntime
	case <-ctx.Done():
		return "", context.Cause(ctx)
	}

	select {
	case reply := <-req.reply:
		return reply.text, reply.err
	case <-ctx.Done():
		return "", context.Cause(ctx)
	}
}

// Close stops accepting requests and waits for in-flight ones.
func (b *Bridge) Close() {
	b.closeOnce.Do(func() {
		close(b.closing)
	})
	b.wg.Wait()
}
