// Package dashboard owns the dashboard load fan-out and the realtime
// change-event routing into the reactive cache.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/travelops/console-service/internal/core/audit"
	"github.com/travelops/console-service/internal/core/gateway"
	"github.com/travelops/console-service/internal/domain/models"
	"github.com/travelops/console-service/internal/services/directory"
	"github.com/travelops/console-service/internal/store"
)

const auditTimeout = 5 * time.Second

// Service coordinates full loads and incremental reconciliation for the
// reactive cache.
type Service struct {
	store     *store.Store
	directory *directory.Service
	realtime  gateway.Realtime
	audit     audit.Recorder
	log       zerolog.Logger
}

// Config holds the configuration for the dashboard service.
type Config struct {
	Store     *store.Store
	Directory *directory.Service
	Realtime  gateway.Realtime
	// Audit is optional; reconciliation is not audited when nil.
	Audit audit.Recorder
}

// NewService creates a new dashboard service.
func NewService(cfg *Config) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.Directory == nil {
		return nil, fmt.Errorf("directory service is required")
	}
	if cfg.Realtime == nil {
		return nil, fmt.Errorf("realtime gateway is required")
	}

	return &Service{
		store:     cfg.Store,
		directory: cfg.Directory,
		realtime:  cfg.Realtime,
		audit:     cfg.Audit,
		log:       log.With().Str("component", "dashboard").Logger(),
	}, nil
}

// LoadAll issues the four dashboard sub-loads concurrently. Each collection
// is replaced independently and atomically the moment its own fetch
// resolves; the four collections are not required to be mutually consistent
// at a single instant. A sub-load failure lands in the shared error slot
// without blocking the others. After all four settle, the change-event
// subscriptions are established.
//
// Every application is guarded by the epoch captured at the start, so a
// sign-out racing the load cannot be resurrected by late results.
func (s *Service) LoadAll(ctx context.Context) {
	epoch := s.store.Epoch()
	s.store.SetLoading(true)
	defer s.store.SetLoading(false)

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		travelers, err := s.directory.ListTravelers(ctx)
		if err != nil {
			s.store.SetErrorAt(epoch, err.Error())
			return
		}
		s.store.SetTravelers(epoch, travelers)
	}()

	go func() {
		defer wg.Done()
		conversations, err := s.directory.ListConversations(ctx)
		if err != nil {
			s.store.SetErrorAt(epoch, err.Error())
			return
		}
		s.store.SetConversations(epoch, conversations)
	}()

	go func() {
		defer wg.Done()
		feedback, err := s.directory.ListFeedback(ctx)
		if err != nil {
			s.store.SetErrorAt(epoch, err.Error())
			return
		}
		s.store.SetFeedback(epoch, feedback)
	}()

	go func() {
		defer wg.Done()
		metrics, err := s.directory.GetMetrics(ctx)
		if err != nil {
			s.store.SetErrorAt(epoch, err.Error())
			return
		}
		s.store.SetMetrics(epoch, metrics)
	}()

	wg.Wait()

	s.subscribe(ctx, epoch)
}

// subscribe establishes the conversation and feedback change subscriptions
// and registers their teardown with the store. Skipped when the epoch went
// stale while the loads were in flight.
func (s *Service) subscribe(ctx context.Context, epoch uint64) {
	if s.store.Epoch() != epoch {
		return
	}

	var subs []gateway.Subscription

	convSub, err := s.realtime.Subscribe(ctx, directory.TableConversations, "", func(ch gateway.Change) {
		s.handleChange(epoch, store.EntityConversation, ch)
	})
	if err != nil {
		s.store.SetErrorAt(epoch, err.Error())
	} else {
		subs = append(subs, convSub)
	}

	fbSub, err := s.realtime.Subscribe(ctx, directory.TableFeedback, "", func(ch gateway.Change) {
		s.handleChange(epoch, store.EntityFeedback, ch)
	})
	if err != nil {
		s.store.SetErrorAt(epoch, err.Error())
	} else {
		subs = append(subs, fbSub)
	}

	if len(subs) == 0 {
		return
	}

	closeSubs := func() {
		for _, sub := range subs {
			if err := sub.Close(); err != nil {
				s.log.Warn().Err(err).Msg("subscription close failed")
			}
		}
	}

	// A reset may have landed while the subscribes were in flight; in that
	// case the connections must not outlive the sign-out.
	if !s.store.SetTeardownAt(epoch, closeSubs) {
		closeSubs()
	}
}

// SubscribeMessages delivers new messages of a single conversation as they
// arrive. Only inserts are delivered; updates and deletes on the messages
// table are not part of the conversation feed. Undecodable events are
// dropped and logged. The caller owns the returned subscription.
func (s *Service) SubscribeMessages(ctx context.Context, conversationID string, fn func(models.Message)) (gateway.Subscription, error) {
	filter := "conversation_id=eq." + conversationID
	return s.realtime.Subscribe(ctx, directory.TableMessages, filter, func(ch gateway.Change) {
		if ch.Kind != gateway.ChangeInsert {
			return
		}
		var msg models.Message
		if err := json.Unmarshal(ch.Row, &msg); err != nil || msg.ID == "" {
			s.log.Warn().Err(err).
				Str("conversation_id", conversationID).
				Msg("message event dropped")
			return
		}
		fn(msg)
	})
}

// handleChange validates one raw change event and applies it to the cache.
// Malformed events (no usable id, undecodable row) are dropped, never fatal.
func (s *Service) handleChange(epoch uint64, entity store.EntityKind, ch gateway.Change) {
	ev, err := decodeChange(entity, ch)
	if err != nil {
		s.log.Warn().Err(err).
			Str("entity", string(entity)).
			Str("kind", string(ch.Kind)).
			Msg("change event dropped")
		s.record(models.AuditChangeDropped, entity, "", err.Error())
		return
	}

	if !s.store.Reconcile(epoch, ev) {
		s.log.Debug().
			Str("entity", string(entity)).
			Str("id", ev.ID).
			Msg("stale change event discarded")
		return
	}

	s.record(models.AuditChangeApplied, entity, ev.ID, string(ev.Kind))
}

// record appends a best-effort audit entry without blocking event delivery.
func (s *Service) record(action models.AuditAction, entity store.EntityKind, id, detail string) {
	if s.audit == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
		defer cancel()
		err := s.audit.Record(ctx, &models.AuditEntry{
			Action:     action,
			EntityKind: string(entity),
			EntityID:   id,
			Detail:     detail,
		})
		if err != nil {
			s.log.Warn().Err(err).Msg("audit record failed")
		}
	}()
}
