package domain

import "time"

// NeedsReindex decides whether a collection requires a new indexing pass.
//
// A nil stats means the collection has never been indexed, so a pass is
// needed. Otherwise a pass is needed iff the source has been modified
// strictly after the most recent indexed chunk. Equal timestamps count as
// up-to-date so a scheduled pass does not re-embed an unchanged collection.
func NeedsReindex(stats *CollectionStats, sourceLastUpdated time.Time) bool {
	if stats == nil {
		return true
	}
	return stats.LastUpdated.Before(sourceLastUpdated)
}
