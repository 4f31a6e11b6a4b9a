package learner

type StreakStatus string

const (
	StreakSameDay   StreakStatus = "same_day"
	StreakContinued StreakStatus = "continued"
	StreakReset     StreakStatus = "reset"
	StreakStarted   StreakStatus = "started"
)

type StreakResult struct {
	Status StreakStatus `json:"status"`
	Streak int          `json:"streak"`
	Ledger []string     `json:"ledger"`
}

// Changed reports whether the check-in has to be persisted.
func (r StreakResult) Changed() bool {
	return r.Status != StreakSameDay
}

// AdvanceStreak runs one check-in against the ledger of visit dates.
//
// A visit on the same day as lastVisit changes nothing. A visit the day after
// lastVisit appends today. Anything else (first visit, skipped day) restarts
// the ledger as [today], so the streak on a reset day is 1.
func AdvanceStreak(ledger []string, lastVisit, today, yesterday string) StreakResult {
	switch lastVisit {
	case today:
		return StreakResult{Status: StreakSameDay, Streak: len(ledger), Ledger: ledger}
	case yesterday:
		next := append([]string(nil), ledger...)
		if len(next) == 0 || next[len(next)-1] != today {
			next = append(next, today)
		}
		return StreakResult{Status: StreakContinued, Streak: len(next), Ledger: next}
	case "":
		return StreakResult{Status: StreakStarted, Streak: 1, Ledger: []string{today}}
	default:
		return StreakResult{Status: StreakReset, Streak: 1, Ledger: []string{today}}
	}
}
