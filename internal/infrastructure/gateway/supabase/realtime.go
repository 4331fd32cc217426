package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/travelops/console-service/internal/core/gateway"
)

const heartbeatInterval = 25 * time.Second

// frame is a Phoenix-channel protocol frame.
type frame struct {
	Topic   string          `json:"topic"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	Ref     string          `json:"ref"`
}

// changePayload is the body of a postgres_changes frame.
type changePayload struct {
	Data struct {
		Type      string          `json:"type"`
		Table     string          `json:"table"`
		Record    json.RawMessage `json:"record"`
		OldRecord json.RawMessage `json:"old_record"`
	} `json:"data"`
}

// realtimeClient implements gateway.Realtime over the websocket change feed.
// Each subscription holds its own connection.
type realtimeClient struct {
	client *Client
	log    zerolog.Logger

	mu   sync.Mutex
	subs map[string]*subscription
}

// newRealtimeClient creates the realtime facet for a gateway client.
func newRealtimeClient(c *Client) *realtimeClient {
	return &realtimeClient{
		client: c,
		log:    log.With().Str("component", "realtime").Logger(),
		subs:   make(map[string]*subscription),
	}
}

// Subscribe starts delivering change events for the given table.
func (r *realtimeClient) Subscribe(ctx context.Context, table, filter string, handler gateway.ChangeHandler) (gateway.Subscription, error) {
	if handler == nil {
		return nil, fmt.Errorf("handler is required")
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, r.socketURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to change feed: %w", err)
	}

	sub := &subscription{
		id:      uuid.New().String(),
		table:   table,
		conn:    conn,
		handler: handler,
		done:    make(chan struct{}),
		parent:  r,
		log:     r.log.With().Str("table", table).Logger(),
	}

	if err := sub.join(filter); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to join change channel: %w", err)
	}

	r.mu.Lock()
	r.subs[sub.id] = sub
	r.mu.Unlock()

	go sub.readLoop()
	go sub.heartbeatLoop()

	sub.log.Info().Str("filter", filter).Msg("change subscription established")
	return sub, nil
}

// closeAll terminates every active subscription.
func (r *realtimeClient) closeAll() error {
	r.mu.Lock()
	subs := make([]*subscription, 0, len(r.subs))
	for _, sub := range r.subs {
		subs = append(subs, sub)
	}
	r.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
	return nil
}

// remove unregisters a closed subscription.
func (r *realtimeClient) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subs, id)
}

// socketURL derives the websocket endpoint from the project base URL.
func (r *realtimeClient) socketURL() string {
	wsBase := strings.Replace(r.client.baseURL, "http", "ws", 1)
	return wsBase + "/realtime/v1/websocket?apikey=" + r.client.anonKey + "&vsn=1.0.0"
}

// subscription is one active change-event stream over its own connection.
type subscription struct {
	id      string
	table   string
	conn    *websocket.Conn
	handler gateway.ChangeHandler
	parent  *realtimeClient
	log     zerolog.Logger

	writeMu sync.Mutex
	ref     int64

	closeOnce sync.Once
	done      chan struct{}
}

// join sends the channel join frame for the table's change feed.
func (s *subscription) join(filter string) error {
	config := map[string]interface{}{
		"config": map[string]interface{}{
			"postgres_changes": []map[string]string{{
				"event":  "*",
				"schema": "public",
				"table":  s.table,
				"filter": filter,
			}},
		},
	}
	return s.send("phx_join", config)
}

// send writes a frame on the subscription's topic. Thread-safe.
func (s *subscription) send(event string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.ref++
	return s.conn.WriteJSON(frame{
		Topic:   "realtime:public:" + s.table,
		Event:   event,
		Payload: body,
		Ref:     strconv.FormatInt(s.ref, 10),
	})
}

// readLoop reads frames until the connection closes, dispatching change
// events to the handler in delivery order.
func (s *subscription) readLoop() {
	defer s.Close()

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-s.done:
			default:
				s.log.Warn().Err(err).Msg("change feed read failed")
			}
			return
		}

		var f frame
		if err := json.Unmarshal(msg, &f); err != nil {
			s.log.Warn().Err(err).Msg("malformed change frame dropped")
			continue
		}
		if f.Event != "postgres_changes" {
			continue
		}

		var payload changePayload
		if err := json.Unmarshal(f.Payload, &payload); err != nil {
			s.log.Warn().Err(err).Msg("malformed change payload dropped")
			continue
		}

		kind, ok := changeKind(payload.Data.Type)
		if !ok {
			s.log.Warn().Str("type", payload.Data.Type).Msg("unknown change type dropped")
			continue
		}

		s.handler(gateway.Change{
			Kind:   kind,
			Table:  s.table,
			Row:    payload.Data.Record,
			OldRow: payload.Data.OldRecord,
		})
	}
}

// heartbeatLoop keeps the connection alive until the subscription closes.
func (s *subscription) heartbeatLoop() {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.writeMu.Lock()
			s.ref++
			err := s.conn.WriteJSON(frame{
				Topic:   "phoenix",
				Event:   "heartbeat",
				Payload: json.RawMessage(`{}`),
				Ref:     strconv.FormatInt(s.ref, 10),
			})
			s.writeMu.Unlock()
			if err != nil {
				s.log.Warn().Err(err).Msg("heartbeat failed")
				return
			}
		}
	}
}

// Close terminates the subscription and its connection.
func (s *subscription) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.send("phx_leave", struct{}{})
		err = s.conn.Close()
		s.parent.remove(s.id)
		s.log.Info().Msg("change subscription closed")
	})
	return err
}

// changeKind maps the wire change type to the gateway variant.
func changeKind(wireType string) (gateway.ChangeKind, bool) {
	switch wireType {
	case "INSERT":
		return gateway.ChangeInsert, true
	case "UPDATE":
		return gateway.ChangeUpdate, true
	case "DELETE":
		return gateway.ChangeDelete, true
	default:
		return "", false
	}
}
