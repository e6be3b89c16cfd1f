// Package shell coordinates the built-in apps the way the device
// firmware does: one app is active at a time and owns the screen.
package shell

// App is a built-in application. Create builds the app's state when it
// becomes active and Destroy releases it when another app takes over.
// Destroy must be idempotent: the shell may call it on an app that
// never finished creating.
type App interface {
	// ID is the stable registry key, e.g. "folder".
	ID() string

	// Title is the human-readable name shown in menus.
	Title() string

	// Create builds the app's state. An error keeps the previous app
	// active.
	Create() error

	// Destroy releases the app's state.
	Destroy()

	// Screen returns the current display contents, one string per line.
	Screen() []string
}

// Descriptor identifies a registered app.
type Descriptor struct {
	ID    string
	Title string
}
