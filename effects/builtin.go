package effects

import (
	"fmt"

	"github.com/on-the-ground/effectpipe/item"
	"github.com/on-the-ground/effectpipe/param"
)

const (
	NameResize    = "Resize"
	NameBlur      = "Blur"
	NameGrayscale = "Grayscale"
)

var (
	_ Effect = Resize{}
	_ Effect = Blur{}
	_ Effect = Grayscale{}
)

// Resize records a resize to the integer target size in the parameter.
type Resize struct{}

func NewResize() Effect { return Resize{} }

func (Resize) Name() string { return NameResize }

func (r Resize) Apply(it *item.Item, p *param.Parameter) error {
	size, err := requireInt(r.Name(), "target size", p)
	if err != nil {
		return err
	}
	it.AppendDescription(fmt.Sprintf("Resize to %dpx", size))
	return nil
}

// Blur records a blur with the integer radius in the parameter.
type Blur struct{}

func NewBlur() Effect { return Blur{} }

func (Blur) Name() string { return NameBlur }

func (b Blur) Apply(it *item.Item, p *param.Parameter) error {
	radius, err := requireInt(b.Name(), "blur radius", p)
	if err != nil {
		return err
	}
	it.AppendDescription(fmt.Sprintf("Blur %dpx", radius))
	return nil
}

// Grayscale takes no parameter; one passed anyway is ignored.
type Grayscale struct{}

func NewGrayscale() Effect { return Grayscale{} }

func (Grayscale) Name() string { return NameGrayscale }

func (Grayscale) Apply(it *item.Item, _ *param.Parameter) error {
	it.AppendDescription("Convert to Grayscale")
	return nil
}

func requireInt(effect, what string, p *param.Parameter) (int64, error) {
	if p == nil {
		return 0, fmt.Errorf("%w: %s requires an integer %s, got none", ErrInvalidParameter, effect, what)
	}
	v, ok := p.Value.AsInt()
	if !ok {
		return 0, fmt.Errorf("%w: %s requires an integer %s, got %s %q",
			ErrInvalidParameter, effect, what, p.Value.Kind(), p.Value.String())
	}
	return v, nil
}
