package effects

import (
	"errors"

	"github.com/on-the-ground/effectpipe/item"
	"github.com/on-the-ground/effectpipe/param"
)

// ErrUnknownEffect is returned by Registry.Create for names with no constructor.
var ErrUnknownEffect = errors.New("unknown effect")

// ErrInvalidParameter is returned by Apply when a required parameter is absent
// or carries the wrong kind.
var ErrInvalidParameter = errors.New("invalid parameter")

// Effect applies a described mutation to an item.
//
// Apply either appends exactly one description to the item and returns nil,
// or leaves the item untouched and returns an error. Effects must not panic;
// one that panics after appending leaves that description in place.
// A nil parameter means the request carried none.
type Effect interface {
	Name() string
	Apply(it *item.Item, p *param.Parameter) error
}

// Constructor builds a fresh Effect instance.
type Constructor func() Effect
