package out

import "context"

// DedupPort remembers recently processed event ids so redelivered broker
// messages do not trigger duplicate work.
type DedupPort interface {
	// MarkSeen records the id and reports whether it was already known.
	MarkSeen(ctx context.Context, id string) bool
}
