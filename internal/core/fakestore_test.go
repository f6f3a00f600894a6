package core

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// fakeStore is an in-memory Store used to exercise Queue's coordination
// logic without a real Redis instance. Blocking ops are implemented with a
// broadcast channel that is replaced on every mutation, so waiters wake
// promptly instead of polling tightly.
type fakeStore struct {
	mu     sync.Mutex
	kv     map[string]string
	lists  map[string][][]byte // head at index 0
	notify chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		kv:     make(map[string]string),
		lists:  make(map[string][][]byte),
		notify: make(chan struct{}),
	}
}

func (s *fakeStore) broadcastLocked() {
	close(s.notify)
	s.notify = make(chan struct{})
}

func (s *fakeStore) SetNX(ctx context.Context, key, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.kv[key]; ok {
		return false, nil
	}
	s.kv[key] = value
	s.broadcastLocked()
	return true, nil
}

func (s *fakeStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.kv[key]
	return v, ok, nil
}

func (s *fakeStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kv[key] = value
	s.broadcastLocked()
	return nil
}

func (s *fakeStore) Exists(ctx context.Context, keys ...string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		if _, ok := s.kv[k]; ok {
			continue
		}
		if l, ok := s.lists[k]; ok && len(l) > 0 {
			continue
		}
		return false, nil
	}
	return true, nil
}

func (s *fakeStore) Del(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.kv, k)
		delete(s.lists, k)
	}
	s.broadcastLocked()
	return nil
}

func (s *fakeStore) IncrBy(ctx context.Context, key string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cur int64
	if v, ok := s.kv[key]; ok {
		if _, err := fmt.Sscanf(v, "%d", &cur); err != nil {
			return 0, err
		}
	}
	cur += delta
	s.kv[key] = fmt.Sprintf("%d", cur)
	s.broadcastLocked()
	return cur, nil
}

func (s *fakeStore) LPush(ctx context.Context, key string, values ...[]byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range values {
		s.lists[key] = append([][]byte{v}, s.lists[key]...)
	}
	s.broadcastLocked()
	return int64(len(s.lists[key])), nil
}

func (s *fakeStore) RPop(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rpopLocked(key)
}

func (s *fakeStore) rpopLocked(key string) ([]byte, bool, error) {
	l := s.lists[key]
	if len(l) == 0 {
		return nil, false, nil
	}
	v := l[len(l)-1]
	s.lists[key] = l[:len(l)-1]
	s.broadcastLocked()
	return v, true, nil
}

func (s *fakeStore) LLen(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.lists[key])), nil
}

func (s *fakeStore) LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.lists[key]
	n := int64(len(l))
	if n == 0 {
		return nil, nil
	}
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop {
		return nil, nil
	}
	out := make([][]byte, 0, stop-start+1)
	for i := start; i <= stop; i++ {
		out = append(out, l[i])
	}
	return out, nil
}

func (s *fakeStore) LTrim(ctx context.Context, key string, start, stop int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.lists[key]
	n := int64(len(l))
	if n == 0 {
		return nil
	}
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop {
		s.lists[key] = nil
		s.broadcastLocked()
		return nil
	}
	s.lists[key] = append([][]byte(nil), l[start:stop+1]...)
	s.broadcastLocked()
	return nil
}

func (s *fakeStore) LRem(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.lists[key]
	for i, v := range l {
		if string(v) == string(value) {
			s.lists[key] = append(l[:i], l[i+1:]...)
			s.broadcastLocked()
			return nil
		}
	}
	return nil
}

// waitForAny blocks until one of keys is non-empty, ctx is done, or timeout
// elapses (timeout<=0 means wait indefinitely). Must be called without s.mu
// held; it takes the lock only to inspect the lists and returns with it
// released, so the caller must re-check the key after locking again.
func (s *fakeStore) waitForAny(ctx context.Context, timeout time.Duration, keys ...string) (wokeKey string, ok bool) {
	var deadlineC <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadlineC = timer.C
	}

	for {
		s.mu.Lock()
		for _, k := range keys {
			if len(s.lists[k]) > 0 {
				s.mu.Unlock()
				return k, true
			}
		}
		notify := s.notify
		s.mu.Unlock()

		select {
		case <-notify:
			// something changed; loop and recheck
		case <-ctx.Done():
			return "", false
		case <-deadlineC:
			return "", false
		}
	}
}

func (s *fakeStore) BRPop(ctx context.Context, timeout time.Duration, keys ...string) (string, []byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, false, err
	}
	wokeKey, ok := s.waitForAny(ctx, timeout, keys...)
	if !ok {
		if err := ctx.Err(); err != nil {
			return "", nil, false, err
		}
		return "", nil, false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, _ := s.rpopLocked(wokeKey)
	if !ok {
		return "", nil, false, nil
	}
	return wokeKey, v, true, nil
}

func (s *fakeStore) BRPopLPush(ctx context.Context, src, dst string, timeout time.Duration) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	_, ok := s.waitForAny(ctx, timeout, src)
	if !ok {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, _ := s.rpopLocked(src)
	if !ok {
		return nil, false, nil
	}
	s.lists[dst] = append([][]byte{v}, s.lists[dst]...)
	s.broadcastLocked()
	return v, true, nil
}

var _ Store = (*fakeStore)(nil)
