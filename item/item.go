package item

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Separator joins history entries in Render.
const Separator = " -> "

// DefaultKind is the noun used in the seed history entry.
const DefaultKind = "item"

// Option customizes a new Item.
type Option func(*options)

type options struct {
	kind string
}

// WithKind sets the noun of the seed entry, e.g. "image" gives "Original image '<name>'".
func WithKind(kind string) Option {
	return func(o *options) {
		if kind != "" {
			o.kind = kind
		}
	}
}

// Item is a named entity carrying an append-only log of applied effects.
//
// Identity is the generated ID, not the name: two items created with the
// same name are different items.
type Item struct {
	id   uuid.UUID
	name string

	mu      sync.RWMutex
	history []string
}

// New creates an item whose history holds only the seed entry.
func New(name string, opts ...Option) *Item {
	o := options{kind: DefaultKind}
	for _, opt := range opts {
		opt(&o)
	}
	return &Item{
		id:      uuid.New(),
		name:    name,
		history: []string{fmt.Sprintf("Original %s '%s'", o.kind, name)},
	}
}

func (i *Item) ID() uuid.UUID { return i.id }

func (i *Item) Name() string { return i.name }

// AppendDescription appends text verbatim to the history.
func (i *Item) AppendDescription(text string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.history = append(i.history, text)
}

// History returns a copy of the history entries in order.
func (i *Item) History() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make([]string, len(i.history))
	copy(out, i.history)
	return out
}

// Render joins the history with Separator.
func (i *Item) Render() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return strings.Join(i.history, Separator)
}

func (i *Item) String() string {
	return i.Render()
}
