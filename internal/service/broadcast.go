package service

// Broadcaster sends game events to whoever follows a game.
type Broadcaster interface {
	BroadcastGameEvent(gameID string, eventType string, data any)
}

// NoopBroadcaster is a no-op implementation for tests and the CLI.
type NoopBroadcaster struct{}

func (NoopBroadcaster) BroadcastGameEvent(string, string, any) {}
