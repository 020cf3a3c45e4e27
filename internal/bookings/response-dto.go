package bookings

// ItemOutcome is the result of one reservation write. Outcomes are
// per-item because the writes are independent: some can succeed while
// others fail, and collapsing that into one boolean would hide which
// seats were actually reserved.
type ItemOutcome struct {
	Seat         string `json:"seat"`
	TicketNumber string `json:"ticket_number"`
	Status       string `json:"status"` // "CONFIRMED" or "FAILED"
	Error        string `json:"error,omitempty"`
}

// BookingResult summarizes one submitted reservation batch.
type BookingResult struct {
	SlNo          int           `json:"sl_no"`
	FromLocation  string        `json:"from_location"`
	ToLocation    string        `json:"to_location"`
	Date          string        `json:"date"`
	Timing        string        `json:"timing"`
	PricePerSeat  float64       `json:"price_per_seat"`
	TotalPrice    float64       `json:"total_price"`
	Confirmed     bool          `json:"confirmed"` // true only if every item succeeded
	TicketNumbers []string      `json:"ticket_numbers"`
	Items         []ItemOutcome `json:"items"`
}
