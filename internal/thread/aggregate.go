package thread

import (
	dbpkg "github.com/linklyhq/linkly/internal/db"
	"github.com/linklyhq/linkly/internal/db/sqlc"
)

// threadAccum is one thread's aggregation state before participant resolution.
type threadAccum struct {
	threadID  string
	lastMsg   sqlc.Message
	partnerID string
	unread    int
}

// aggregateThreads folds a newest-first message scan into per-thread
// accumulators. The first message seen for a thread is its most recent one,
// so the output preserves most-recent-activity-descending order. Unread counts
// only messages addressed to the viewer with seen=false.
func aggregateThreads(rows []sqlc.Message, viewerID string) []threadAccum {
	index := map[string]int{}
	threads := make([]threadAccum, 0)
	for _, row := range rows {
		fromID := dbpkg.UUIDToString(row.FromUser)
		toID := dbpkg.UUIDToString(row.ToUser)

		pos, ok := index[row.ThreadID]
		if !ok {
			partnerID := fromID
			if fromID == viewerID {
				partnerID = toID
			}
			index[row.ThreadID] = len(threads)
			pos = len(threads)
			threads = append(threads, threadAccum{
				threadID:  row.ThreadID,
				lastMsg:   row,
				partnerID: partnerID,
			})
		}
		if toID == viewerID && !row.Seen {
			threads[pos].unread++
		}
	}
	return threads
}
