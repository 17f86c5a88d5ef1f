package domain

import "time"

const formattedTimeLayout = "01/02/2006 15:04:05"

type NameHistoryEntry struct {
	Name string
	// Zero for the account's original name
	ChangedAt time.Time
}

func (e NameHistoryEntry) IsOriginal() bool {
	return e.ChangedAt.IsZero()
}

func (e NameHistoryEntry) FormattedTime() string {
	if e.IsOriginal() {
		return "Original"
	}
	return e.ChangedAt.UTC().Format(formattedTimeLayout) + " GMT"
}
