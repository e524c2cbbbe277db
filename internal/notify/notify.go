// Package notify delivers history change events to subscribers.
//
// Events are addressed by a dot-separated topic such as "account.undo".
// Subscribing to a topic also receives events for its sub-topics, so a
// subscription to "account" sees "account.deposit" and "account.undo".
package notify

import (
	"sync"
	"time"

	"github.com/dshills/vignette/internal/logging"
)

// Change describes one movement of a tracked value's history.
type Change struct {
	// Topic is the dot-separated event name, e.g. "account.deposit".
	Topic string

	// Value is the tracked value after the change.
	Value any

	// Position is the history cursor after the change.
	Position int

	// Length is the number of snapshots after the change.
	Length int

	// Source identifies the component that produced the change.
	Source string

	// Time is when the change was published. Set by Notify if zero.
	Time time.Time
}

// Observer is called when a change is published.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	topic    string
	notifier *Notifier
}

// Unsubscribe removes this subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
		s.notifier = nil
	}
}

// Topic returns the subscribed topic, or "" for a global subscription.
func (s *Subscription) Topic() string {
	return s.topic
}

// Notifier manages change subscriptions.
type Notifier struct {
	mu sync.RWMutex

	// Global observers that receive all changes
	globalObservers map[uint64]Observer

	// Topic-specific observers
	topicObservers map[string]map[uint64]Observer

	nextID uint64

	// Whether to notify synchronously or asynchronously
	async  bool
	buffer chan Change
	done   chan struct{}
	wg     sync.WaitGroup

	closed bool
	logger *logging.Logger
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithAsync enables asynchronous delivery through a buffer of the given size.
func WithAsync(bufferSize int) Option {
	return func(n *Notifier) {
		if bufferSize > 0 {
			n.async = true
			n.buffer = make(chan Change, bufferSize)
		}
	}
}

// WithLogger sets the logger that reports observer panics.
// The process default logger is used otherwise.
func WithLogger(l *logging.Logger) Option {
	return func(n *Notifier) {
		if l != nil {
			n.logger = l
		}
	}
}

// New creates a new Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		globalObservers: make(map[uint64]Observer),
		topicObservers:  make(map[string]map[uint64]Observer),
		done:            make(chan struct{}),
	}

	for _, opt := range opts {
		opt(n)
	}
	if n.logger == nil {
		n.logger = logging.Default()
	}
	n.logger = n.logger.WithComponent("notify")

	if n.async {
		n.wg.Add(1)
		go n.processAsync()
	}

	return n
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.globalObservers[id] = observer

	return &Subscription{id: id, notifier: n}
}

// SubscribeTopic registers an observer for a topic and its sub-topics.
func (n *Notifier) SubscribeTopic(topic string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++

	if n.topicObservers[topic] == nil {
		n.topicObservers[topic] = make(map[uint64]Observer)
	}
	n.topicObservers[topic][id] = observer

	return &Subscription{id: id, topic: topic, notifier: n}
}

// ObserverCount returns the number of active subscriptions.
func (n *Notifier) ObserverCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	count := len(n.globalObservers)
	for _, observers := range n.topicObservers {
		count += len(observers)
	}
	return count
}

// Notify publishes a change. Changes published after Close are dropped.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	n.mu.RUnlock()

	if change.Time.IsZero() {
		change.Time = time.Now()
	}

	if n.async {
		select {
		case n.buffer <- change:
		case <-n.done:
		}
		return
	}

	n.deliverChange(change)
}

// Close shuts down the notifier, draining pending async changes.
// It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()

	close(n.done)
	n.wg.Wait()
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.globalObservers, id)

	for topic, observers := range n.topicObservers {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.topicObservers, topic)
		}
	}
}

// deliverChange sends a change to all matching observers.
func (n *Notifier) deliverChange(change Change) {
	n.mu.RLock()

	var observers []Observer
	for _, obs := range n.globalObservers {
		observers = append(observers, obs)
	}
	for topic, topicObs := range n.topicObservers {
		if topic == change.Topic || isParentTopic(topic, change.Topic) {
			for _, obs := range topicObs {
				observers = append(observers, obs)
			}
		}
	}

	n.mu.RUnlock()

	// Call observers outside the lock
	for _, obs := range observers {
		n.call(obs, change)
	}
}

// call invokes one observer, containing any panic it raises.
func (n *Notifier) call(obs Observer, change Change) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.WithField("topic", change.Topic).Error("observer panic: %v", r)
		}
	}()
	obs(change)
}

// processAsync handles asynchronous notification delivery.
func (n *Notifier) processAsync() {
	defer n.wg.Done()

	for {
		select {
		case change := <-n.buffer:
			n.deliverChange(change)
		case <-n.done:
			// Drain remaining buffered changes
			for {
				select {
				case change := <-n.buffer:
					n.deliverChange(change)
				default:
					return
				}
			}
		}
	}
}

// isParentTopic reports whether parent is a dot-separated prefix of child,
// e.g. "account" is a parent of "account.undo".
func isParentTopic(parent, child string) bool {
	if len(parent) >= len(child) {
		return false
	}
	if parent == "" {
		return true
	}
	return child[:len(parent)] == parent && child[len(parent)] == '.'
}
