package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushReachesSubscriber(t *testing.T) {
	hub, err := NewHub(4, func(userId int64) (int64, error) {
		return 7, nil
	})
	require.NoError(t, err)
	defer hub.Release()

	ch, cancel := hub.Subscribe(42)
	defer cancel()

	hub.PushUnreadCount(42)

	select {
	case count := <-ch:
		assert.EqualValues(t, 7, count)
	case <-time.After(2 * time.Second):
		t.Fatal("no push received")
	}
}

func TestPushOnlyTargetsUser(t *testing.T) {
	hub, err := NewHub(4, func(userId int64) (int64, error) {
		return 1, nil
	})
	require.NoError(t, err)
	defer hub.Release()

	target, cancelTarget := hub.Subscribe(1)
	defer cancelTarget()
	other, cancelOther := hub.Subscribe(2)
	defer cancelOther()

	hub.PushUnreadCount(1)

	select {
	case <-target:
	case <-time.After(2 * time.Second):
		t.Fatal("no push received")
	}

	select {
	case <-other:
		t.Fatal("push leaked to another user")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	hub, err := NewHub(4, func(userId int64) (int64, error) {
		return 1, nil
	})
	require.NoError(t, err)
	defer hub.Release()

	ch, cancel := hub.Subscribe(42)
	cancel()

	hub.PushUnreadCount(42)

	select {
	case <-ch:
		t.Fatal("push delivered after cancel")
	case <-time.After(100 * time.Millisecond):
	}
}
