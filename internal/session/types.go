// Package session keeps one presenter per browser session and fans out
// changes to the pages watching that session.
package session

// UpdateType defines what kind of data changed.
type UpdateType string

const (
	// UpdateView means the session's presenter changed; Payload is a presenter.View.
	UpdateView UpdateType = "view"
	// UpdateWorkers means the asset folder changed; Payload is the changed path.
	UpdateWorkers UpdateType = "workers"
	// UpdateExpired is the last update a session sends before its channels close.
	UpdateExpired UpdateType = "expired"
)

// Update represents a change a subscriber should react to.
type Update struct {
	Type    UpdateType
	Source  string // "http", "ws", "watch"
	Payload interface{}
}
