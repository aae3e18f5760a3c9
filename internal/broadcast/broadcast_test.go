package broadcast

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribe_ReplaysLatest(t *testing.T) {
	b := New[int]()
	b.Publish(1)
	b.Publish(2)

	sub := b.Subscribe()
	defer sub.Unsubscribe()

	require.Len(t, sub.C, 1)
	assert.Equal(t, 2, <-sub.C)
}

func TestSubscribe_NothingPublished(t *testing.T) {
	b := New[string]()
	sub := b.Subscribe()
	defer sub.Unsubscribe()

	assert.Empty(t, sub.C)
	_, ok := b.Latest()
	assert.False(t, ok)
}

func TestPublish_LatestWins(t *testing.T) {
	b := New[int]()
	sub := b.Subscribe()
	defer sub.Unsubscribe()

	for i := 1; i <= 5; i++ {
		b.Publish(i)
	}
	assert.Equal(t, 5, <-sub.C)
	assert.Empty(t, sub.C)
}

func TestPublish_FansOut(t *testing.T) {
	b := New[int]()
	subs := []*Subscription[int]{b.Subscribe(), b.Subscribe(), b.Subscribe()}
	b.Publish(7)

	for _, s := range subs {
		assert.Equal(t, 7, <-s.C)
		s.Unsubscribe()
	}
	assert.Zero(t, b.Len())
}

func TestNotify_NotReplayed(t *testing.T) {
	b := New[int]()
	b.Publish(1)

	early := b.Subscribe()
	defer early.Unsubscribe()
	<-early.C

	b.Notify(-1)
	assert.Equal(t, -1, <-early.C)

	late := b.Subscribe()
	defer late.Unsubscribe()
	assert.Equal(t, 1, <-late.C)
}

func TestUnsubscribe_ClosesChannel(t *testing.T) {
	b := New[int]()
	sub := b.Subscribe()
	sub.Unsubscribe()
	sub.Unsubscribe()

	_, ok := <-sub.C
	assert.False(t, ok)

	b.Publish(1)
	assert.Zero(t, b.Len())
}

func TestReset(t *testing.T) {
	b := New[int]()
	b.Publish(3)
	b.Reset()

	sub := b.Subscribe()
	defer sub.Unsubscribe()
	assert.Empty(t, sub.C)
}

func TestClose(t *testing.T) {
	b := New[int]()
	sub := b.Subscribe()
	b.Close()
	b.Close()

	_, ok := <-sub.C
	assert.False(t, ok)

	after := b.Subscribe()
	_, ok = <-after.C
	assert.False(t, ok)
	after.Unsubscribe()
}

func TestConcurrentPublishAndUnsubscribe(t *testing.T) {
	b := New[int]()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := b.Subscribe()
			for j := 0; j < 100; j++ {
				b.Publish(j)
			}
			sub.Unsubscribe()
			for range sub.C {
			}
		}()
	}
	wg.Wait()
	assert.Zero(t, b.Len())
}
