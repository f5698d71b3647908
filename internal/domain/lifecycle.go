package domain

// LifecycleEventKind enumerates the app lifecycle events a shop can emit.
type LifecycleEventKind string

const (
	// EventActivate fires when a merchant activates the app for their shop.
	EventActivate LifecycleEventKind = "activate"
	// EventDeactivate fires when the app is deactivated or uninstalled.
	EventDeactivate LifecycleEventKind = "deactivate"
)

// LifecycleEvent is delivered to registered handlers with the shop that
// triggered it.
type LifecycleEvent struct {
	Kind LifecycleEventKind
	Shop *Shop
}
