package timetable

// FindConflicts flags every entry whose time range collides with another
// entry in the same room on the same weekday, or on the same explicit date.
// Overlap follows the half-open rule: an entry ending exactly when another
// starts is not a conflict.
//
// Both members of a colliding pair are flagged, so the result is symmetric
// by construction. The scan is O(n²) over the already date- and room-scoped
// input, which is fine at per-room-per-day entry counts; a room-keyed bucket
// with a sorted interval sweep is the upgrade path if that ever changes.
func FindConflicts(entries []Entry) map[string]struct{} {
	conflicts := make(map[string]struct{})
	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			if entriesCollide(entries[i], entries[j]) {
				conflicts[entries[i].ID] = struct{}{}
				conflicts[entries[j].ID] = struct{}{}
			}
		}
	}
	return conflicts
}

func entriesCollide(a, b Entry) bool {
	if a.ID == b.ID || a.RoomID != b.RoomID {
		return false
	}
	sameDay := a.Day == b.Day
	sameDate := a.Date != "" && b.Date != "" && a.Date == b.Date
	if !sameDay && !sameDate {
		return false
	}
	return Overlaps(a.StartTime, a.EndTime, b.StartTime, b.EndTime)
}
