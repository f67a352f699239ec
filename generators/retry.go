package generators

import (
	"context"
	"time"

	"github.com/reusee/dscope"
	"github.com/reusee/tairlm/configs"
	"github.com/reusee/tairlm/logs"
	"github.com/reusee/tairlm/vars"
)

type RetryLimit int

var _ configs.Configurable = RetryLimit(0)

func (RetryLimit) ConfigExpr() string {
	return "retry_limit"
}

const defaultRetryLimit = 5

func (Module) RetryLimit(
	loader configs.Loader,
) RetryLimit {
	return vars.FirstNonZero(
		configs.Resolve[RetryLimit](loader),
		defaultRetryLimit,
	)
}

// Retry repeats retryable failures of the upstream generator with exponential backoff.
type Retry struct {
	upstream Generator
	limit    int
	backoff  time.Duration

	Logger dscope.Inject[logs.Logger]
}

var _ Generator = new(Retry)

func (r *Retry) Args() GeneratorArgs {
	return r.upstream.Args()
}

func (r *Retry) Generate(ctx context.Context, state State) (ret State, err error) {
	for i := range r.limit + 1 {
		ret, err = r.upstream.Generate(ctx, state)
		if err == nil || !isRetryable(err) || i == r.limit {
			return
		}
		r.Logger().WarnContext(ctx, "retry",
			"attempt", i+1,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return state, context.Cause(ctx)
		case <-time.After(r.backoff * time.Duration(1<<i)):
		}
	}
	return
}

type NewRetry func(upstream Generator) *Retry

func (Module) NewRetry(
	inject dscope.InjectStruct,
	limit RetryLimit,
) NewRetry {
	return func(upstream Generator) *Retry {
		ret := &Retry{
			upstream: upstream,
			limit:    int(limit),
			backoff:  time.Second,
		}
		inject(&ret)
		return ret
	}
}
