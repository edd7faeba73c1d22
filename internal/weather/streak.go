package weather

// UpdateStreak applies today's condition category to a location's streak
// record. It runs at most once per calendar day: when the stored date
// already equals today the record is returned unchanged, so repeated
// refreshes within a day cannot double-count. A matching category extends
// the streak, a different one restarts it at 1.
func UpdateStreak(rec StreakRecord, today string, code int) StreakRecord {
	if rec.LastDate == today {
		return rec
	}

	cond := ClassifyCondition(code)
	if rec.LastCondition == cond {
		rec.Count++
	} else {
		rec.Count = 1
		rec.LastCondition = cond
	}
	rec.LastDate = today
	return rec
}
