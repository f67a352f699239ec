package generators

import (
	"context"
	"errors"
	"testing"
)

func TestRetry(t *testing.T) {
	testScope(t).Call(func(
		newRetry NewRetry,
		limit RetryLimit,
	) {
		if limit != defaultRetryLimit {
			t.Fatalf("got %d", limit)
		}

		upstream := &scripted{
			replies: []string{"", "", "ok"},
			errs:    []error{ErrRetryable, ErrRetryable},
		}
		retry := newRetry(upstream)
		retry.backoff = 0
		text, err := Complete(t.Context(), retry, UserPrompt("", "q"))
		if err != nil {
			t.Fatal(err)
		}
		if text != "ok" {
			t.Fatalf("got %q", text)
		}
		if upstream.calls != 3 {
			t.Fatalf("got %d", upstream.calls)
		}
		if retry.Args().Model != "scripted" {
			t.Fatalf("got %+v", retry.Args())
		}
	})
}

func TestRetryNotRetryable(t *testing.T) {
	testScope(t).Call(func(
		newRetry NewRetry,
	) {
		fatal := errors.New("fatal")
		upstream := &scripted{
			errs: []error{fatal},
		}
		retry := newRetry(upstream)
		retry.backoff = 0
		if _, err := retry.Generate(t.Context(), UserPrompt("", "q")); !errors.Is(err, fatal) {
			t.Fatalf("got %v", err)
		}
		if upstream.calls != 1 {
			t.Fatalf("got %d", upstream.calls)
		}
	})
}

func TestRetryLimit(t *testing.T) {
	testScope(t).Call(func(
		newRetry NewRetry,
	) {
		upstream := &scripted{
			errs: []error{ErrRetryable, ErrRetryable, ErrRetryable, ErrRetryable},
		}
		retry := newRetry(upstream)
		retry.backoff = 0
		retry.limit = 2
		if _, err := retry.Generate(t.Context(), UserPrompt("", "q")); !errors.Is(err, ErrRetryable) {
			t.Fatalf("got %v", err)
		}
		if upstream.calls != 3 {
			t.Fatalf("got %d", upstream.calls)
		}
	})
}

func TestRetryCancel(t *testing.T) {
	testScope(t).Call(func(
		newRetry NewRetry,
	) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		retry := newRetry(&scripted{
			errs: []error{ErrRetryable, ErrRetryable},
		})
		if _, err := retry.Generate(ctx, UserPrompt("", "q")); !errors.Is(err, context.Canceled) {
			t.Fatalf("got %v", err)
		}
	})
}
