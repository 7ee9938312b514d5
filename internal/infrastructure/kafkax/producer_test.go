package kafkax

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProducer_PublishAfterShutdown(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "events", 8)

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	cancel()
	p.WaitClosed()

	// Late publishes must be dropped, not panic or block.
	assert.NotPanics(t, func() {
		p.Publish([]byte("key"), []byte("value"))
		p.Publish([]byte("key"), []byte("value"))
	})
}

func TestProducer_WaitClosedReturnsAfterCancel(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "events", 8)

	ctx, cancel := context.WithCancel(context.Background())
	p.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		p.WaitClosed()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("producer did not shut down after cancel")
	}
}
