// FILE: internal/service/indexer_service.go
// PURPOSE: Owns the searchable corpus: loads snapshots, builds the in-memory
// index, and swaps it atomically on reload events.
package service

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"

	"code-assistant-be/pkg/corpus"
	"code-assistant-be/pkg/events"
	"code-assistant-be/pkg/index"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IIndexerService interface {
	// Reload loads a fresh snapshot and swaps it in. In-flight queries keep
	// the old index until they finish.
	Reload(ctx context.Context) (*ReloadStats, error)
	// RequestReload publishes a reload event instead of rebuilding inline.
	RequestReload(ctx context.Context, reason string) error
	// Consume starts the in-process reload event loop.
	Consume(ctx context.Context) error
	// HandleBroadcast adapts a cross-replica reload event onto Reload.
	HandleBroadcast(ctx context.Context, event events.Event) error
	// SetBroadcaster routes reload requests through a cross-replica bus.
	SetBroadcaster(b Broadcaster)

	Index() *index.Index
	Corpus() *corpus.Store
	Model() string
}

type ReloadStats struct {
	Items int
	Model string
}

// Broadcaster publishes an event to every replica, this one included.
type Broadcaster interface {
	Publish(ctx context.Context, event events.Event) error
}

type reloadPayload struct {
	Reason string `json:"reason"`
}

type indexerService struct {
	loader    CorpusLoader
	model     string
	pubSub    *gochannel.GoChannel
	topicName string

	holder      *index.Holder
	store       atomic.Pointer[corpus.Store]
	broadcaster Broadcaster // nil outside multi-replica deployments
	reloadMu    sync.Mutex  // one rebuild at a time
}

// NewIndexerService loads the initial snapshot eagerly: a replica that cannot
// build its index must not start serving.
func NewIndexerService(
	ctx context.Context,
	loader CorpusLoader,
	model string,
	pubSub *gochannel.GoChannel,
	topicName string,
) (IIndexerService, error) {
	s := &indexerService{
		loader:    loader,
		model:     model,
		pubSub:    pubSub,
		topicName: topicName,
	}

	items, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	store, err := corpus.Load(items)
	if err != nil {
		return nil, err
	}
	idx, err := index.Build(items)
	if err != nil {
		return nil, err
	}

	s.holder = index.NewHolder(idx)
	s.store.Store(store)

	log.Printf("[INFO] Corpus index ready: %d items, %d dimensions", idx.Size(), idx.Dimension())
	return s, nil
}

func (s *indexerService) Index() *index.Index   { return s.holder.Get() }
func (s *indexerService) Corpus() *corpus.Store { return s.store.Load() }
func (s *indexerService) Model() string         { return s.model }

func (s *indexerService) Reload(ctx context.Context) (*ReloadStats, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	items, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	store, err := corpus.Load(items)
	if err != nil {
		return nil, err
	}
	idx, err := index.Build(items)
	if err != nil {
		return nil, err
	}

	// Store first, index second: a query racing the swap may see the new
	// store with the old index, and hydration tolerates that.
	s.store.Store(store)
	s.holder.Swap(idx)

	log.Printf("[INFO] Corpus index reloaded: %d items", idx.Size())
	return &ReloadStats{Items: idx.Size(), Model: s.model}, nil
}

func (s *indexerService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

func (s *indexerService) RequestReload(ctx context.Context, reason string) error {
	// With a broadcaster attached the event goes over the bus; this replica
	// picks it up through its own subscription, so publishing locally as
	// well would reload twice.
	if s.broadcaster != nil {
		return s.broadcaster.Publish(ctx, events.NewIndexReloadEvent(reason))
	}

	payload, err := json.Marshal(reloadPayload{Reason: reason})
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return s.pubSub.Publish(s.topicName, msg)
}

func (s *indexerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *indexerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload reloadPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal reload message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing index reload (reason: %s)", payload.Reason)

	if _, err := s.Reload(ctx); err != nil {
		log.Printf("[ERROR] Index reload failed: %v", err)
		msg.Nack() // Nack for retriable errors
		return
	}
	msg.Ack()
}

// HandleBroadcast adapts a cross-replica NATS reload event onto the local
// reload path.
func (s *indexerService) HandleBroadcast(ctx context.Context, event events.Event) error {
	reason, _ := event.Payload()["reason"].(string)
	log.Printf("[INFO] Received reload broadcast (reason: %s)", reason)
	_, err := s.Reload(ctx)
	return err
}
