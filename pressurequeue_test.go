package pressurequeue_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/psobot/pressurequeue"
)

func newTestRDB(t *testing.T) redis.Cmdable {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestQueuePutGetRoundtrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rdb := newTestRDB(t)

	q := pressurequeue.NewQueue(rdb, "jobs", pressurequeue.WithClientUID("worker-1"))
	if err := q.Create(ctx, pressurequeue.Unbounded()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := q.Put(ctx, []byte("hello")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := q.Get(ctx)
	if err != nil || string(got) != "hello" {
		t.Fatalf("Get() = %q, %v, want \"hello\", nil", got, err)
	}
}

func TestQueueBoundedPutNowaitFull(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rdb := newTestRDB(t)

	q := pressurequeue.NewQueue(rdb, "jobs")
	if err := q.Create(ctx, pressurequeue.Bound(1)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := q.PutNowait(ctx, []byte("a"), false); err != nil {
		t.Fatalf("PutNowait: %v", err)
	}
	if err := q.PutNowait(ctx, []byte("b"), false); !errors.Is(err, pressurequeue.ErrFull) {
		t.Fatalf("second PutNowait() = %v, want ErrFull", err)
	}
}

func TestQueueCloseThenDoesNotExistAfterDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rdb := newTestRDB(t)

	q := pressurequeue.NewQueue(rdb, "jobs")
	if err := q.Create(ctx, pressurequeue.Unbounded()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := q.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := q.Get(ctx); !errors.Is(err, pressurequeue.ErrClosed) {
		t.Fatalf("Get() on empty closed queue = %v, want ErrClosed", err)
	}
	if err := q.Delete(ctx); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if exists, err := q.Exists(ctx); err != nil || exists {
		t.Fatalf("Exists() after Delete = %v, %v, want false, nil", exists, err)
	}
}

func TestReliableQueueConfirm(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rdb := newTestRDB(t)

	rq := pressurequeue.NewReliableQueue(rdb, "jobs")
	if err := rq.Create(ctx, pressurequeue.Unbounded()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := rq.Put(ctx, []byte("a")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := rq.Get(ctx)
	if err != nil || string(got) != "a" {
		t.Fatalf("Get() = %q, %v, want \"a\", nil", got, err)
	}
	if size, err := rq.QSize(ctx); err != nil || size != 1 {
		t.Fatalf("QSize() before Confirm = %d, %v, want 1, nil", size, err)
	}
	if err := rq.Confirm(ctx, got); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if size, err := rq.QSize(ctx); err != nil || size != 0 {
		t.Fatalf("QSize() after Confirm = %d, %v, want 0, nil", size, err)
	}
}
