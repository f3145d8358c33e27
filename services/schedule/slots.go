package schedule

import "medsync/models"

// SlotBuffer is the fixed gap, in minutes, between consecutive consultation
// slots.
const SlotBuffer = 10

// GenerateSlots produces the ordered, non-overlapping consultation slots
// inside a shift window. Each slot spans exactly durationMinutes and
// consecutive slots are separated by SlotBuffer. The cursor advances by
// duration+buffer every iteration whether or not a slot was emitted, and no
// emitted slot ends past the window end. Degenerate inputs yield an empty
// sequence.
func GenerateSlots(start, end models.ClockTime, durationMinutes int) []models.Slot {
	slots := []models.Slot{}
	if durationMinutes <= 0 || end <= start {
		return slots
	}

	step := models.ClockTime(durationMinutes + SlotBuffer)
	span := models.ClockTime(durationMinutes)

	for cursor := start; cursor < end; cursor += step {
		slotEnd := cursor + span
		if slotEnd > end {
			break
		}
		slots = append(slots, models.Slot{
			Start: cursor,
			End:   slotEnd,
		})
	}
	return slots
}
