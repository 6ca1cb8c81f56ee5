package internal

import (
	"sync"
)

type bbuffer[T any] interface {
	peek() (T, bool)
	pop() T
	push(T)
	len() int
}

// accumulate reads values produced by the consumer into an in-memory buffer. A
// channel is returned which provides those buffered values for consumption.
//
// This is helpful for smoothing out spikes in activity. A burst of bulk
// refresh requests shouldn't leave callers blocked on the refresh pool.
func accumulate[T any](producer <-chan T, buf bbuffer[T]) <-chan T {
	c := make(chan T)

	go func() {
		for {
			// If our buffer is empty our consumer<- will just no-op until
			// something is produced.
			var consumer chan T
			var next T
			if t, ok := buf.peek(); ok {
				consumer = c
				next = t
			}

			// Either buffer the next produced element, or pass a buffered
			// entry down to the consumer.
			select {
			case val, ok := <-producer:
				if !ok {
					close(c)
					return
				}
				buf.push(val)
			case consumer <- next:
				_ = buf.pop()
			}
		}
	}()

	return c
}

// slicebuffer is a simple slice buffer. It is not thread safe.
type slicebuffer[T any] []T

//nolint:unused // Linter seems confused by generics.
func (s *slicebuffer[T]) pop() T {
	ss := (*s)[0]
	*s = (*s)[1:]
	return ss
}

//nolint:unused // Linter seems confused by generics.
func (s *slicebuffer[T]) push(t T) {
	*s = append(*s, t)
}

//nolint:unused // Linter seems confused by generics.
func (s *slicebuffer[T]) peek() (T, bool) {
	if s == nil || len(*s) == 0 {
		var t T
		return t, false
	}
	return (*s)[0], true
}

//nolint:unused // Linter seems confused by generics.
func (s *slicebuffer[T]) len() int {
	return len(*s)
}

// slugbuf is a FIFO of slugs waiting to be refreshed. A slug which is already
// waiting isn't queued again, so repeated bulk requests for the same page
// collapse into one refresh.
type slugbuf struct {
	mu     sync.Mutex
	queue  []string
	queued set[string]
}

var _ bbuffer[string] = (*slugbuf)(nil)

// push enqueues the slug unless it's already waiting.
func (b *slugbuf) push(slug string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.queued == nil {
		b.queued = set[string]{}
	}
	if b.queued.has(slug) {
		return
	}
	b.queued[slug] = struct{}{}
	b.queue = append(b.queue, slug)
}

// peek returns the next slug if there is one, or false if there isn't.
func (b *slugbuf) peek() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.queue) == 0 {
		return "", false
	}
	return b.queue[0], true
}

// pop removes and returns the next slug. The caller must peek first.
func (b *slugbuf) pop() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	slug := b.queue[0]
	b.queue = b.queue[1:]
	delete(b.queued, slug)
	return slug
}

// len returns the number of slugs waiting.
func (b *slugbuf) len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.queue)
}
