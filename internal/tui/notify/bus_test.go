package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/librarian/internal/core/notify"
)

func TestBus_Publish_dispatches_to_subscribers(t *testing.T) {
	b := NewBus()

	var got []notify.Notification
	b.Subscribe(func(n notify.Notification) {
		got = append(got, n)
	})

	b.Errorf("failed to %s", "ask")

	require.Len(t, got, 1)
	assert.Equal(t, notify.LevelError, got[0].Level)
	assert.Equal(t, "failed to ask", got[0].Message)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestBus_Publish_without_subscribers(t *testing.T) {
	b := NewBus()

	b.Infof("nobody listening")

	history := b.History()
	require.Len(t, history, 1)
	assert.Equal(t, "nobody listening", history[0].Message)
}

func TestBus_History_newest_first_and_bounded(t *testing.T) {
	b := NewBus()

	for i := 0; i < historyLimit+10; i++ {
		b.Warnf("warning %d", i)
	}

	history := b.History()
	require.Len(t, history, historyLimit)
	assert.Equal(t, "warning 109", history[0].Message)
	assert.Equal(t, "warning 10", history[len(history)-1].Message)
}
