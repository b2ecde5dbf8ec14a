package collection

// Notification is the single success/failure channel surfaced to the
// user: a human-readable title/description pair.
type Notification struct {
	Title       string
	Description string
	IsError     bool
}

// Notifier receives every notification a collection emits.
type Notifier interface {
	Notify(n Notification)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(Notification) {}

// FuncNotifier adapts a function to the Notifier interface.
type FuncNotifier func(n Notification)

func (f FuncNotifier) Notify(n Notification) { f(n) }
