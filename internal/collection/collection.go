// Package collection implements the in-memory resource collections
// the UI layers consume: one value per entity owning its fetch and
// mutation lifecycle, a small state machine, and a stale-but-available
// error policy.
package collection

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// State is the lifecycle of one collection.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateErrored:
		return "errored"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ErrConfirmationRequired is returned by Delete for protected
// resources when the caller has not confirmed the destructive action.
var ErrConfirmationRequired = errors.New("deletion requires confirmation")

// Config wires one collection to its remote operations. ID extracts
// the row key; Validate, when set, runs client-side before Create.
type Config[T any] struct {
	Resource string

	Fetch  func(ctx context.Context) ([]T, error)
	Insert func(ctx context.Context, input T) (T, error)
	Update func(ctx context.Context, id uint, patch map[string]any) (T, error)
	Remove func(ctx context.Context, id uint) error

	ID       func(T) uint
	Validate func(T) error

	// RequireConfirm marks deletions as destructive (books, categories,
	// authors, users).
	RequireConfirm bool

	Notifier Notifier
}

// Collection owns one entity collection. Reads return copies;
// completions arriving out of order never overwrite newer state.
type Collection[T any] struct {
	cfg Config[T]

	mu      sync.Mutex
	state   State
	items   []T
	lastErr string

	// fetchSeq tags each Fetch; only the latest issued may apply.
	fetchSeq uint64
}

func New[T any](cfg Config[T]) *Collection[T] {
	if cfg.Notifier == nil {
		cfg.Notifier = NopNotifier{}
	}
	return &Collection[T]{cfg: cfg, state: StateIdle}
}

// State reports the current lifecycle state.
func (c *Collection[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Items returns a copy of the current collection.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len reports the number of rows currently held.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// LastError returns the message recorded by the most recent failure.
func (c *Collection[T]) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Fetch replaces the collection with the remote result set. Each call
// takes a new sequence number; when fetches overlap, only the latest
// issued call applies its result, so state always equals the newest
// request regardless of completion order. On failure the previous
// items stay visible and retryable.
func (c *Collection[T]) Fetch(ctx context.Context) error {
	c.mu.Lock()
	c.fetchSeq++
	seq := c.fetchSeq
	c.state = StateLoading
	c.mu.Unlock()

	items, err := c.cfg.Fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.fetchSeq {
		// A newer fetch was issued while this one was in flight.
		return nil
	}

	if err != nil {
		c.state = StateErrored
		c.lastErr = err.Error()
		c.cfg.Notifier.Notify(Notification{
			Title:       "تعذر تحميل البيانات",
			Description: err.Error(),
			IsError:     true,
		})
		return err
	}

	c.items = items
	c.state = StateReady
	c.lastErr = ""
	return nil
}

// Create validates the input, issues the insert, and prepends the
// created row on success. Failure leaves the collection unchanged.
func (c *Collection[T]) Create(ctx context.Context, input T) error {
	if c.cfg.Validate != nil {
		if err := c.cfg.Validate(input); err != nil {
			c.cfg.Notifier.Notify(Notification{
				Title:       "بيانات غير مكتملة",
				Description: err.Error(),
				IsError:     true,
			})
			return err
		}
	}

	created, err := c.cfg.Insert(ctx, input)
	if err != nil {
		c.notifyFailure("فشل الإنشاء", err)
		return err
	}

	c.mu.Lock()
	c.items = append([]T{created}, c.items...)
	c.mu.Unlock()

	c.cfg.Notifier.Notify(Notification{Title: "تمت الإضافة بنجاح"})
	return nil
}

// Update patches exactly the provided fields and replaces the matching
// row on success.
func (c *Collection[T]) Update(ctx context.Context, id uint, patch map[string]any) error {
	updated, err := c.cfg.Update(ctx, id, patch)
	if err != nil {
		c.notifyFailure("فشل التحديث", err)
		return err
	}

	c.mu.Lock()
	for i := range c.items {
		if c.cfg.ID(c.items[i]) == id {
			c.items[i] = updated
			break
		}
	}
	c.mu.Unlock()

	c.cfg.Notifier.Notify(Notification{Title: "تم التحديث بنجاح"})
	return nil
}

// Delete issues exactly one delete call and removes the row locally
// only on success. Protected resources refuse without confirm.
func (c *Collection[T]) Delete(ctx context.Context, id uint, confirm bool) error {
	if c.cfg.RequireConfirm && !confirm {
		return ErrConfirmationRequired
	}

	if err := c.cfg.Remove(ctx, id); err != nil {
		c.notifyFailure("فشل الحذف", err)
		return err
	}

	c.mu.Lock()
	for i := range c.items {
		if c.cfg.ID(c.items[i]) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	c.cfg.Notifier.Notify(Notification{Title: "تم الحذف بنجاح"})
	return nil
}

func (c *Collection[T]) notifyFailure(title string, err error) {
	c.mu.Lock()
	c.lastErr = err.Error()
	c.mu.Unlock()
	c.cfg.Notifier.Notify(Notification{Title: title, Description: err.Error(), IsError: true})
}
