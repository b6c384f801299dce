package engine

import (
	"dragsort.dev/dragsort/internal/errors"
	"dragsort.dev/dragsort/internal/motion"
)

// Options configures a drag-sort engine. The zero value of any field means
// "use the default"; withDefaults produces the fully-populated struct the
// engine actually runs with.
type Options struct {
	// Transition is the timing used for sibling slides and the settle
	// animation.
	Transition motion.Transition

	// HandleClass marks the drag-initiation sub-element of each child.
	HandleClass string

	// DraggingClass is applied to the element while it is dragged.
	DraggingClass string

	// ShadowClass is applied to the floating clone.
	ShadowClass string

	// PlaceholderClass is applied to the slot-reservation element.
	PlaceholderClass string

	// Threshold insets every snapshot rectangle before move hit-testing.
	// Larger values require deeper pointer penetration into a neighboring
	// slot before the destination index changes.
	Threshold float64
}

// DefaultOptions returns the options used when the caller configures
// nothing.
func DefaultOptions() Options {
	return Options{
		Transition:       motion.DefaultTransition(),
		HandleClass:      "handle",
		DraggingClass:    "dragging",
		ShadowClass:      "shadow",
		PlaceholderClass: "placeholder",
		Threshold:        0,
	}
}

// withDefaults overlays o on the defaults and returns the merged result.
// Pure: o is not modified.
func (o Options) withDefaults() Options {
	merged := DefaultOptions()
	if o.Transition.Duration > 0 {
		merged.Transition.Duration = o.Transition.Duration
	}
	if o.Transition.Easing != nil {
		merged.Transition.Easing = o.Transition.Easing
	}
	if o.HandleClass != "" {
		merged.HandleClass = o.HandleClass
	}
	if o.DraggingClass != "" {
		merged.DraggingClass = o.DraggingClass
	}
	if o.ShadowClass != "" {
		merged.ShadowClass = o.ShadowClass
	}
	if o.PlaceholderClass != "" {
		merged.PlaceholderClass = o.PlaceholderClass
	}
	if o.Threshold != 0 {
		merged.Threshold = o.Threshold
	}
	return merged
}

// validate checks the raw options before merging.
func (o Options) validate() error {
	if o.Threshold < 0 {
		return errors.NewOptionError("Threshold", "must not be negative")
	}
	if o.Transition.Duration < 0 {
		return errors.NewOptionError("Transition.Duration", "must not be negative")
	}
	return nil
}
