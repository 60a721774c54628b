package models

// Booking reserves a room for a day and a pair of free-form time labels.
type Booking struct {
	ID        int64  `json:"id" db:"id" example:"1"`
	Room      string `json:"room" db:"room" example:"A401"`
	Day       string `json:"day" db:"day" example:"Monday"`
	StartTime string `json:"startTime" db:"start_time" example:"09:00"`
	EndTime   string `json:"endTime" db:"end_time" example:"10:00"`
}

// BookingSlot is the tuple two bookings may never share.
type BookingSlot struct {
	Room      string
	Day       string
	StartTime string
	EndTime   string
}

// Slot returns the booking's conflict tuple.
func (b *Booking) Slot() BookingSlot {
	return BookingSlot{Room: b.Room, Day: b.Day, StartTime: b.StartTime, EndTime: b.EndTime}
}
