package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccumulateSlugs(t *testing.T) {
	buf := &slugbuf{}
	assert.Equal(t, 0, buf.len())

	producer := make(chan string)
	consumer := accumulate(producer, buf)

	producer <- "one-piece"
	producer <- "berserk"
	producer <- "one-piece"
	// We unblock as soon as a value is sent down the producer channel but
	// before the buffer is updated. Sleep to allow the other goroutine to
	// actually push the value into the buffer. Racy but it works for now.
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 2, buf.len())

	assert.Equal(t, "one-piece", <-consumer)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 1, buf.len())

	// Once popped the slug can be queued again.
	producer <- "one-piece"
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 2, buf.len())

	assert.Equal(t, "berserk", <-consumer)
	assert.Equal(t, "one-piece", <-consumer)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 0, buf.len())

	close(producer)

	_, ok := <-consumer
	assert.False(t, ok)
}

func TestAccumulateSlice(t *testing.T) {
	buf := slicebuffer[int]{}
	producer := make(chan int)
	consumer := accumulate(producer, &buf)

	// Test this case where we consume before producing.
	go func() {
		time.Sleep(100 * time.Millisecond)
		producer <- -1
	}()
	x := <-consumer
	assert.Equal(t, -1, x)

	producer <- 1
	producer <- 2
	producer <- 3

	assert.Equal(t, 1, <-consumer)
	assert.Equal(t, 2, <-consumer)
	assert.Equal(t, 3, <-consumer)

	close(producer)
	_, ok := <-consumer
	assert.False(t, ok)
}
