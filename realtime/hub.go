package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/localkart/core-api/metrics"
	"github.com/localkart/core-api/models"
)

const channelPrefix = "booking:"

// sendBuffer bounds the per-connection outbox. Delivery is best-effort:
// a slow consumer drops messages rather than stalling the room.
const sendBuffer = 16

type client struct {
	bookingID  uint
	userID     uint
	receiverID uint
	send       chan []byte
}

// Hub fans chat messages out to every socket joined to a booking room.
// Publishing goes through redis so rooms span instances.
type Hub struct {
	db  *gorm.DB
	rdb *redis.Client
	log *zap.SugaredLogger

	mu    sync.RWMutex
	rooms map[uint]map[*client]struct{}
}

func NewHub(gdb *gorm.DB, rdb *redis.Client, log *zap.SugaredLogger) *Hub {
	return &Hub{
		db:    gdb,
		rdb:   rdb,
		log:   log,
		rooms: make(map[uint]map[*client]struct{}),
	}
}

// Run subscribes to every booking channel and delivers incoming payloads to
// the local members of the matching room. Blocks until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	sub := h.rdb.PSubscribe(ctx, channelPrefix+"*")
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var bookingID uint
			if _, err := fmt.Sscanf(strings.TrimPrefix(msg.Channel, channelPrefix), "%d", &bookingID); err != nil {
				h.log.Warnw("relay channel with bad booking id", "channel", msg.Channel)
				continue
			}
			h.deliverLocal(bookingID, []byte(msg.Payload))
		}
	}
}

func (h *Hub) join(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[cl.bookingID]
	if !ok {
		room = make(map[*client]struct{})
		h.rooms[cl.bookingID] = room
	}
	room[cl] = struct{}{}
}

func (h *Hub) leave(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[cl.bookingID]
	if !ok {
		return
	}
	if _, member := room[cl]; !member {
		return
	}
	delete(room, cl)
	if len(room) == 0 {
		delete(h.rooms, cl.bookingID)
	}
	close(cl.send)
}

// deliverLocal pushes a payload to every room member connected to this
// instance, dropping it for clients whose outbox is full.
func (h *Hub) deliverLocal(bookingID uint, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for cl := range h.rooms[bookingID] {
		select {
		case cl.send <- payload:
		default:
		}
	}
}

func (h *Hub) publish(ctx context.Context, bookingID uint, payload []byte) error {
	return h.rdb.Publish(ctx, fmt.Sprintf("%s%d", channelPrefix, bookingID), payload).Err()
}

type inboundMessage struct {
	Content     string                    `json:"content"`
	Type        string                    `json:"type"`
	Attachments models.MessageAttachments `json:"attachments,omitempty"`
}

var allowedMessageTypes = map[string]bool{
	"text":     true,
	"image":    true,
	"file":     true,
	"location": true,
}

// handleInbound persists one chat message and broadcasts it to the room.
func (h *Hub) handleInbound(ctx context.Context, cl *client, in inboundMessage) error {
	if in.Content == "" || len(in.Content) > 1000 {
		return fmt.Errorf("message content must be 1-1000 characters")
	}
	if in.Type == "" {
		in.Type = "text"
	}
	if !allowedMessageTypes[in.Type] {
		return fmt.Errorf("unsupported message type %q", in.Type)
	}

	msg := models.Message{
		ID:          uuid.NewString(),
		BookingID:   cl.bookingID,
		SenderID:    cl.userID,
		ReceiverID:  cl.receiverID,
		Content:     in.Content,
		Type:        in.Type,
		Attachments: in.Attachments,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.db.Create(&msg).Error; err != nil {
		return err
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if err := h.publish(ctx, cl.bookingID, payload); err != nil {
		return err
	}

	metrics.RelayMessagesTotal.Inc()
	return nil
}
