package processor

import "github.com/on-the-ground/effectpipe/param"

// Request is a deferred instruction to apply the named effect.
// The name is resolved against the registry only when a batch runs.
type Request struct {
	EffectName string
	Param      *param.Parameter // nil when the effect takes no parameter
}

func NewRequest(effectName string, p *param.Parameter) Request {
	return Request{EffectName: effectName, Param: p}
}

func (r Request) String() string {
	if r.Param == nil {
		return r.EffectName
	}
	return r.EffectName + "(" + r.Param.String() + ")"
}
