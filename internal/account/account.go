// Package account implements a bank account whose balance can be undone and
// redone through a history.Store.
package account

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/vignette/internal/history"
	"github.com/dshills/vignette/internal/logging"
	"github.com/dshills/vignette/internal/notify"
)

// Errors returned by account operations.
var (
	// ErrInvalidAmount indicates a non-positive deposit or withdrawal.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds indicates a withdrawal larger than the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrOverflow indicates a deposit that would exceed the largest balance.
	ErrOverflow = errors.New("balance overflow")
)

// Topic names published to a notifier.
const (
	TopicDeposit  = "account.deposit"
	TopicWithdraw = "account.withdraw"
	TopicUndo     = "account.undo"
	TopicRedo     = "account.redo"
	TopicRestore  = "account.restore"
)

// Snapshot is a captured balance.
type Snapshot = history.Snapshot[int64]

// Account holds a balance with full undo/redo.
// It is safe for concurrent use: each operation checks and records under one
// lock. Changes made directly through History bypass that lock.
type Account struct {
	mu       sync.Mutex
	history  *history.Store[int64]
	notifier *notify.Notifier
	logger   *logging.Logger
	name     string
}

// Option configures an Account.
type Option func(*options)

type options struct {
	maxHistory int
	notifier   *notify.Notifier
	logger     *logging.Logger
	name       string
}

// WithMaxHistory bounds the number of snapshots kept. Zero means unbounded.
func WithMaxHistory(n int) Option {
	return func(o *options) {
		o.maxHistory = n
	}
}

// WithNotifier publishes every balance change to n.
func WithNotifier(n *notify.Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}

// WithLogger sets the logger used for balance changes.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithName labels the account in logs and notifications.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// New opens an account with the given starting balance.
func New(balance int64, opts ...Option) *Account {
	o := options{
		logger: logging.NullLogger,
		name:   "default",
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Account{
		history:  history.New(balance, history.WithMaxEntries[int64](o.maxHistory)),
		notifier: o.notifier,
		logger:   o.logger.WithComponent("account").WithField("account", o.name),
		name:     o.name,
	}
}

// Deposit adds amount to the balance and returns the new snapshot.
func (a *Account) Deposit(amount int64) (Snapshot, error) {
	if amount <= 0 {
		return Snapshot{}, fmt.Errorf("deposit %d: %w", amount, ErrInvalidAmount)
	}

	a.mu.Lock()
	balance := a.history.Current()
	if balance > 0 && amount > math.MaxInt64-balance {
		a.mu.Unlock()
		return Snapshot{}, fmt.Errorf("deposit %d to %d: %w", amount, balance, ErrOverflow)
	}
	snap := a.history.Record(balance + amount)
	change := a.changeLocked(TopicDeposit, snap)
	a.mu.Unlock()

	a.publish(change)
	a.logger.Debug("deposit %d, balance %d", amount, snap.Value())
	return snap, nil
}

// Withdraw removes amount from the balance and returns the new snapshot.
func (a *Account) Withdraw(amount int64) (Snapshot, error) {
	if amount <= 0 {
		return Snapshot{}, fmt.Errorf("withdraw %d: %w", amount, ErrInvalidAmount)
	}

	a.mu.Lock()
	balance := a.history.Current()
	if amount > balance {
		a.mu.Unlock()
		return Snapshot{}, fmt.Errorf("withdraw %d from %d: %w", amount, balance, ErrInsufficientFunds)
	}
	snap := a.history.Record(balance - amount)
	change := a.changeLocked(TopicWithdraw, snap)
	a.mu.Unlock()

	a.publish(change)
	a.logger.Debug("withdraw %d, balance %d", amount, snap.Value())
	return snap, nil
}

// Undo returns the balance to its previous snapshot.
// Returns false when there is nothing to undo.
func (a *Account) Undo() (Snapshot, bool) {
	a.mu.Lock()
	snap, ok := a.history.Undo()
	if !ok {
		a.mu.Unlock()
		a.logger.Debug("nothing to undo")
		return snap, false
	}
	change := a.changeLocked(TopicUndo, snap)
	a.mu.Unlock()

	a.publish(change)
	a.logger.Debug("undo, balance %d", snap.Value())
	return snap, true
}

// Redo reapplies the most recently undone change.
// Returns false when there is nothing to redo.
func (a *Account) Redo() (Snapshot, bool) {
	a.mu.Lock()
	snap, ok := a.history.Redo()
	if !ok {
		a.mu.Unlock()
		a.logger.Debug("nothing to redo")
		return snap, false
	}
	change := a.changeLocked(TopicRedo, snap)
	a.mu.Unlock()

	a.publish(change)
	a.logger.Debug("redo, balance %d", snap.Value())
	return snap, true
}

// Restore sets the balance to that of an earlier snapshot, recording it as
// a new change.
func (a *Account) Restore(id uuid.UUID) (Snapshot, error) {
	a.mu.Lock()
	snap, err := a.history.Restore(id)
	if err != nil {
		a.mu.Unlock()
		return Snapshot{}, fmt.Errorf("restore %s: %w", id, err)
	}
	change := a.changeLocked(TopicRestore, snap)
	a.mu.Unlock()

	a.publish(change)
	a.logger.Debug("restore %s, balance %d", id, snap.Value())
	return snap, nil
}

// Balance returns the current balance.
func (a *Account) Balance() int64 {
	return a.history.Current()
}

// Name returns the account label.
func (a *Account) Name() string {
	return a.name
}

// History exposes the underlying snapshot log.
func (a *Account) History() *history.Store[int64] {
	return a.history
}

// String implements fmt.Stringer.
func (a *Account) String() string {
	return fmt.Sprintf("Balance = %d", a.Balance())
}

// changeLocked describes the history after an operation. Caller holds mu.
func (a *Account) changeLocked(topic string, snap Snapshot) notify.Change {
	return notify.Change{
		Topic:    topic,
		Value:    snap.Value(),
		Position: a.history.Position(),
		Length:   a.history.Len(),
		Source:   a.name,
	}
}

// publish sends change to the notifier. Called without mu held so observers
// may call back into the account.
func (a *Account) publish(change notify.Change) {
	if a.notifier == nil {
		return
	}
	a.notifier.Notify(change)
}
