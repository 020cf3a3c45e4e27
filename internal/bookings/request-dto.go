package bookings

// PassengerForm carries the details for one seat's passenger. Mobile
// numbers are the usual 10-digit format.
type PassengerForm struct {
	Seat         string `json:"seat" binding:"required"`
	Name         string `json:"name" binding:"required,max=100"`
	Age          int    `json:"age" binding:"required,min=1,max=120"`
	Gender       string `json:"gender" binding:"required,oneof=male female"`
	MobileNumber string `json:"mobile_number" binding:"required,len=10,numeric"`
}

// SubmitBookingRequest is one confirm action: a set of passenger forms
// sharing a single (route, date, timing) key.
type SubmitBookingRequest struct {
	SlNo       int             `json:"sl_no" binding:"required"`
	Date       string          `json:"date" binding:"required,datetime=2006-01-02"`
	Timing     string          `json:"timing" binding:"required"`
	Passengers []PassengerForm `json:"passengers" binding:"required,min=1,dive"`
}
