package context

type contextKey int

const (
	ctxKeyLogger contextKey = iota
	ctxKeyEventStore
	ctxKeyInboxManager
	ctxKeySettingsStore
)
