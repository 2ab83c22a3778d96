// Package effects defines the pluggable unit of work applied to items.
//
// An effect is anything that:
//   - has a stable name it is registered under,
//   - appends one description to an item's history when it succeeds,
//   - rejects a missing or wrongly typed parameter instead of guessing.
//
// # How does it work?
//
// Effects are never shared. The Registry maps a name to a Constructor and
// builds a fresh Effect every time one is requested, so third-party effects
// can be added or removed at runtime without touching the processor:
//
//	reg := effects.NewRegistry() // Resize, Blur, Grayscale
//	reg.Register("Sepia", func() effects.Effect { return sepia{} })
//
//	eff, err := reg.Create("Resize")
//	if err != nil {
//	    // errors.Is(err, effects.ErrUnknownEffect)
//	}
//	err = eff.Apply(img, param.Of("size", param.Int(100)))
//
// Registering a name twice keeps the first constructor.
package effects
