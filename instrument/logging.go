package instrument

import (
	"log/slog"

	"github.com/jpalmerr/wikistore"
	"github.com/jpalmerr/wikistore/notify"
)

// LogEvents logs every before-set and read event of s at debug level.
//
// Writes are logged as "insert" or "replace", reads as "hit" or "miss".
// If logger is nil, [slog.Default] is used.
func LogEvents[R wikistore.Keyed](s *wikistore.Store[R], logger *slog.Logger) notify.Unsubscribe {
	if logger == nil {
		logger = slog.Default()
	}

	unsubSet := s.OnBeforeSet(func(e wikistore.BeforeSetEvent[R]) {
		logger.Debug("record set",
			"key", e.New.Key(),
			"kind", writeKind(e.Found),
			"records", s.Len(),
		)
	})

	unsubRead := s.OnRead(func(e wikistore.ReadEvent) {
		result := "hit"
		if !s.Contains(e.ID) {
			result = "miss"
		}
		logger.Debug("record read", "key", e.ID, "result", result)
	})

	return func() {
		unsubSet()
		unsubRead()
	}
}

// writeKind labels a write by whether it replaces an existing record.
func writeKind(found bool) string {
	if found {
		return "replace"
	}
	return "insert"
}
