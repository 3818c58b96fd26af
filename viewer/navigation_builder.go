package viewer

// NavigatorBuilderOption is a function that configures a navigator.
type NavigatorBuilderOption func(*navigator)

// WithDamping sets the per-frame velocity decay factor in (0, 1]. Higher
// values stop motion faster. Defaults to 0.05.
//
// Parameters:
//   - damping: the decay factor
//
// Returns:
//   - NavigatorBuilderOption: the option to apply
func WithDamping(damping float32) NavigatorBuilderOption {
	return func(n *navigator) {
		if damping > 0 && damping <= 1 {
			n.damping = damping
		}
	}
}

// WithDragSensitivity sets the radians of orbit per pixel of drag. Defaults
// to 0.005.
//
// Parameters:
//   - sensitivity: radians per pixel
//
// Returns:
//   - NavigatorBuilderOption: the option to apply
func WithDragSensitivity(sensitivity float32) NavigatorBuilderOption {
	return func(n *navigator) {
		if sensitivity > 0 {
			n.dragSensitivity = sensitivity
		}
	}
}

// WithZoomSensitivity sets the zoom delta applied per scroll unit. Defaults
// to 0.25.
//
// Parameters:
//   - sensitivity: zoom units per scroll step
//
// Returns:
//   - NavigatorBuilderOption: the option to apply
func WithZoomSensitivity(sensitivity float32) NavigatorBuilderOption {
	return func(n *navigator) {
		if sensitivity > 0 {
			n.zoomSensitivity = sensitivity
		}
	}
}
