package http

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/dwellkeys"
	"github.com/aretw0/dwellkeys/internal/logging"
	"github.com/aretw0/dwellkeys/pkg/domain"
	"github.com/aretw0/dwellkeys/pkg/ports"
)

// Stream topics. Each SSE frame carries its topic as the event name.
const (
	TopicDwell    = "dwell"    // lifecycle events of the dwell engine
	TopicProgress = "progress" // dwell progress of the active target
	TopicState    = "state"    // keyboard snapshots
)

// Topics lists every topic in subscription order.
var Topics = []string{TopicDwell, TopicProgress, TopicState}

const subscriberBuffer = 32

// Message is one SSE frame.
type Message struct {
	Topic string
	Data  string
}

// ProgressUpdate is the payload of TopicProgress.
type ProgressUpdate struct {
	TargetID domain.TargetID `json:"target_id"`
	Fraction float64         `json:"fraction"`
}

var _ ports.ProgressSink = (*StreamManager)(nil)

// StreamManager fans keyboard activity out to SSE subscribers. It is wired
// into the keyboard as progress sink, lifecycle hooks and change listener.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- Message]struct{} // Topic -> Set of Channels
	logger      *slog.Logger
}

// NewStreamManager creates an empty StreamManager.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan<- Message]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a channel receiving every message of the given topics.
// The returned func unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(topics ...string) (<-chan Message, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan Message, subscriberBuffer)
	for _, topic := range topics {
		if _, ok := sm.subscribers[topic]; !ok {
			sm.subscribers[topic] = make(map[chan<- Message]struct{})
		}
		sm.subscribers[topic][ch] = struct{}{}
	}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			for _, topic := range topics {
				if subs, ok := sm.subscribers[topic]; ok {
					delete(subs, ch)
					if len(subs) == 0 {
						delete(sm.subscribers, topic)
					}
				}
			}
			close(ch)
		})
	}
}

// Broadcast sends data to every subscriber of topic. Slow subscribers lose
// the message rather than stall the keyboard.
func (sm *StreamManager) Broadcast(topic string, data string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[topic] {
		select {
		case ch <- Message{Topic: topic, Data: data}:
		default:
			sm.logger.Warn("SSE: Client buffer full, dropping message", "topic", topic)
		}
	}
}

// Progress implements ports.ProgressSink.
func (sm *StreamManager) Progress(id domain.TargetID, fraction float64) {
	sm.publish(TopicProgress, ProgressUpdate{TargetID: id, Fraction: fraction})
}

// Hooks returns lifecycle hooks publishing every dwell event.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	publish := func(e *domain.DwellEvent) {
		sm.publish(TopicDwell, e)
	}
	return domain.LifecycleHooks{
		OnDwellStart:  publish,
		OnDwellCancel: publish,
		OnActivate:    publish,
		OnCooldownEnd: publish,
	}
}

// PublishState is a keyboard change listener.
func (sm *StreamManager) PublishState(s dwellkeys.Snapshot) {
	sm.publish(TopicState, s)
}

func (sm *StreamManager) publish(topic string, v any) {
	sm.mu.RLock()
	idle := len(sm.subscribers[topic]) == 0
	sm.mu.RUnlock()
	if idle {
		return
	}

	data, err := json.Marshal(v)
	if err != nil {
		sm.logger.Error("SSE: Failed to encode message", "topic", topic, "error", err)
		return
	}
	sm.Broadcast(topic, string(data))
}
