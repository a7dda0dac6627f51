package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	perr "cobrify/internal/platform/errors"
	kit "cobrify/internal/platform/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	posted  []Event
	removed []string
	panicOn string
}

func (r *recorder) OnPosted(evt Event) {
	if r.panicOn != "" && evt.Title == r.panicOn {
		panic("handler blew up")
	}
	r.mu.Lock()
	r.posted = append(r.posted, evt)
	r.mu.Unlock()
}

func (r *recorder) OnRemoved(pkg string) {
	r.mu.Lock()
	r.removed = append(r.removed, pkg)
	r.mu.Unlock()
}

func (r *recorder) titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.posted))
	for _, e := range r.posted {
		out = append(out, e.Title)
	}
	return out
}

func runHub(t *testing.T, h *Hub) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = h.Run(ctx) }()
}

func TestHub_SingleSubscriber(t *testing.T) {
	h := NewHub(4, true)
	sub, err := h.Subscribe(&recorder{})
	require.NoError(t, err)
	assert.Equal(t, 1, h.Subscribers())

	_, err = h.Subscribe(&recorder{})
	assert.True(t, perr.IsCode(err, perr.ErrorCodeSubscription), "second subscribe: %v", err)

	require.NoError(t, sub.Unsubscribe())
	require.NoError(t, sub.Unsubscribe())
	assert.Equal(t, 0, h.Subscribers())

	_, err = h.Subscribe(&recorder{})
	require.NoError(t, err)
}

func TestHub_StaleUnsubscribeKeepsNewHandler(t *testing.T) {
	h := NewHub(4, true)
	old, err := h.Subscribe(&recorder{})
	require.NoError(t, err)
	require.NoError(t, old.Unsubscribe())

	_, err = h.Subscribe(&recorder{})
	require.NoError(t, err)

	// old's once already fired, so this must not detach the new handler
	require.NoError(t, old.Unsubscribe())
	assert.Equal(t, 1, h.Subscribers())
}

func TestHub_DeliversInOrder(t *testing.T) {
	h := NewHub(2, true)
	rec := &recorder{}
	_, err := h.Subscribe(rec)
	require.NoError(t, err)
	runHub(t, h)

	ctx := context.Background()
	want := []string{"a", "b", "c", "d", "e"}
	for _, title := range want {
		require.NoError(t, h.Post(ctx, Event{Package: "p.q", Title: title}))
	}
	require.NoError(t, h.Post(ctx, Event{Kind: KindRemoved, Package: "p.q"}))

	kit.Eventually(t, time.Second, func() bool { return len(rec.titles()) == len(want) }, "events not delivered")
	assert.Equal(t, want, rec.titles())
	kit.Eventually(t, time.Second, func() bool {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		return len(rec.removed) == 1
	}, "removal not delivered")
}

func TestHub_PanickingHandlerDoesNotStopDelivery(t *testing.T) {
	h := NewHub(4, true)
	rec := &recorder{panicOn: "bad"}
	_, err := h.Subscribe(rec)
	require.NoError(t, err)
	runHub(t, h)

	ctx := context.Background()
	require.NoError(t, h.Post(ctx, Event{Title: "bad"}))
	require.NoError(t, h.Post(ctx, Event{Title: "good"}))
	kit.Eventually(t, time.Second, func() bool { return len(rec.titles()) == 1 }, "event after panic lost")
}

func TestHub_PostWhenFullHonoursContext(t *testing.T) {
	h := NewHub(1, true)
	require.NoError(t, h.Post(context.Background(), Event{Title: "fills"}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := h.Post(ctx, Event{Title: "blocked"})
	assert.True(t, perr.IsCode(err, perr.ErrorCodeTooManyRequests), "err = %v", err)
}

func TestHub_Close(t *testing.T) {
	h := NewHub(4, false)
	rec := &recorder{}
	sub, err := h.Subscribe(rec)
	require.NoError(t, err)
	require.NoError(t, h.Post(context.Background(), Event{Title: "queued"}))

	h.Close()
	require.NoError(t, h.Run(context.Background()))
	assert.Equal(t, []string{"queued"}, rec.titles())
	select {
	case <-h.Done():
	default:
		t.Fatal("Done not closed after Run returned")
	}

	assert.ErrorIs(t, h.Post(context.Background(), Event{}), ErrClosed)
	_, err = h.Subscribe(rec)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeSubscription))
	assert.ErrorIs(t, sub.Unsubscribe(), ErrClosed)
	assert.Equal(t, 0, h.Subscribers())
}

func TestHub_Granted(t *testing.T) {
	h := NewHub(0, false)
	assert.False(t, h.Granted())
	h.SetGranted(true)
	assert.True(t, h.Granted())
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"": KindPosted, "posted": KindPosted, " Removed ": KindRemoved} {
		got, ok := ParseKind(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseKind("updated")
	assert.False(t, ok)
}
