package booking

import "time"

// Booking is a reservation of one room by one customer for a date range.
// Number is the globally unique business key callers use to address it.
// EndDate is the day the guest departs: the interval is [StartDate, EndDate).
type Booking struct {
	BookingID  int64     `json:"bookingId"`
	Number     string    `json:"number"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	RoomID     int64     `json:"roomId"`
	CustomerID int64     `json:"customerId"`
	CreateDate time.Time `json:"createDate"`
}

func NewBooking(number string, startDate, endDate time.Time, roomID, customerID int64) *Booking {
	return &Booking{
		Number:     number,
		StartDate:  startDate,
		EndDate:    endDate,
		RoomID:     roomID,
		CustomerID: customerID,
		CreateDate: time.Now(),
	}
}

// Covers reports whether the given date falls inside [StartDate, EndDate).
// The departure day itself is not covered, so back-to-back stays where one
// guest arrives on another's departure day are allowed.
func (b *Booking) Covers(date time.Time) bool {
	return !date.Before(b.StartDate) && date.Before(b.EndDate)
}

// View is the flattened read projection exposed to callers: the room and
// customer references are resolved to their display names.
type View struct {
	Number       string
	StartDate    time.Time
	EndDate      time.Time
	CustomerName string
	RoomName     string
}
