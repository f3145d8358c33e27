package schedule

import (
	"medsync/models"
)

// Recurrence horizons. These bounds are product policy, not configuration.
const (
	dailyHorizonDays  = 7
	weeklyOccurrences = 4
)

// ExpandRecurrence produces the ordered calendar dates a shift template is
// instantiated on. "none" yields just the anchor; "daily" the anchor and the
// following six days; "weekly" four dates seven days apart.
func ExpandRecurrence(anchorDate string, policy models.RecurrencePolicy) ([]string, error) {
	anchor, err := models.ParseDate(anchorDate)
	if err != nil {
		return nil, newValidationError("date", err.Error())
	}

	switch policy {
	case models.RecurrenceDaily:
		dates := make([]string, 0, dailyHorizonDays)
		for i := 0; i < dailyHorizonDays; i++ {
			dates = append(dates, anchor.AddDate(0, 0, i).Format(models.DateLayout))
		}
		return dates, nil
	case models.RecurrenceWeekly:
		dates := make([]string, 0, weeklyOccurrences)
		for i := 0; i < weeklyOccurrences; i++ {
			dates = append(dates, anchor.AddDate(0, 0, i*7).Format(models.DateLayout))
		}
		return dates, nil
	case models.RecurrenceNone:
		return []string{anchor.Format(models.DateLayout)}, nil
	}
	return nil, newValidationError("recurrence", "unknown policy "+string(policy))
}
