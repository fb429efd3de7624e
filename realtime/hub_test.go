package realtime

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func testHub() *Hub {
	return NewHub(nil, nil, zap.NewNop().Sugar())
}

func newTestClient(bookingID, userID uint) *client {
	return &client{
		bookingID: bookingID,
		userID:    userID,
		send:      make(chan []byte, sendBuffer),
	}
}

func TestDeliverLocalRoomIsolation(t *testing.T) {
	h := testHub()

	a := newTestClient(1, 10)
	b := newTestClient(1, 20)
	other := newTestClient(2, 30)
	h.join(a)
	h.join(b)
	h.join(other)

	h.deliverLocal(1, []byte("hello"))

	for _, cl := range []*client{a, b} {
		select {
		case got := <-cl.send:
			if string(got) != "hello" {
				t.Errorf("payload = %q, want %q", got, "hello")
			}
		default:
			t.Error("room member did not receive the payload")
		}
	}

	select {
	case got := <-other.send:
		t.Errorf("client in another room received %q", got)
	default:
	}
}

func TestDeliverLocalUnknownRoom(t *testing.T) {
	h := testHub()

	// No members, nothing to do, must not panic.
	h.deliverLocal(99, []byte("x"))
}

func TestDeliverLocalDropsOnFullOutbox(t *testing.T) {
	h := testHub()

	cl := newTestClient(1, 10)
	h.join(cl)

	for i := 0; i < sendBuffer+5; i++ {
		h.deliverLocal(1, []byte("m"))
	}

	if got := len(cl.send); got != sendBuffer {
		t.Errorf("buffered = %d, want %d", got, sendBuffer)
	}
}

func TestLeaveClosesAndEmptiesRoom(t *testing.T) {
	h := testHub()

	cl := newTestClient(1, 10)
	h.join(cl)
	h.leave(cl)

	if _, ok := <-cl.send; ok {
		t.Error("send channel still open after leave")
	}
	h.mu.RLock()
	_, exists := h.rooms[1]
	h.mu.RUnlock()
	if exists {
		t.Error("empty room not removed")
	}

	// A second leave is a no-op.
	h.leave(cl)
}

func TestHandleInboundRejectsBadMessages(t *testing.T) {
	h := testHub()
	cl := newTestClient(1, 10)
	ctx := context.Background()

	cases := []struct {
		name string
		in   inboundMessage
	}{
		{"empty content", inboundMessage{Content: ""}},
		{"oversized content", inboundMessage{Content: strings.Repeat("a", 1001)}},
		{"unknown type", inboundMessage{Content: "hi", Type: "video"}},
	}

	for _, tc := range cases {
		if err := h.handleInbound(ctx, cl, tc.in); err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
	}
}
