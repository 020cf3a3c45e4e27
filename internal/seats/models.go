package seats

// RouteKey scopes seat occupancy and selection to one departure. Booked
// and selected sets are only meaningful for a complete key; any change
// to the key invalidates both.
type RouteKey struct {
	SlNo   int    `json:"sl_no"`
	Date   string `json:"date"`   // ISO YYYY-MM-DD
	Timing string `json:"timing"` // departure timing, e.g. "10.30AM"
}

// Complete reports whether all three parts of the key are set. An
// incomplete key yields empty booked/selected sets rather than stale
// ones.
func (k RouteKey) Complete() bool {
	return k.SlNo != 0 && k.Date != "" && k.Timing != ""
}

// SeatView is one seat cell on the rendered board.
type SeatView struct {
	Label  string `json:"label"`
	Status string `json:"status"` // "booked", "selected" or "available"
}

// DeckView is one deck laid out in display rows.
type DeckView struct {
	Deck string       `json:"deck"` // "upper" or "lower"
	Rows [][]SeatView `json:"rows"`
}

// Board is the reconciled seat state for one route key: the persisted
// occupancy, the rider's in-progress selection, and the seats eligible
// for submission.
type Board struct {
	Key           RouteKey   `json:"key"`
	Booked        []string   `json:"booked"`
	Selected      []string   `json:"selected"`
	NewlySelected []string   `json:"newly_selected"`
	Decks         []DeckView `json:"decks"`
}

// DraftSeat is one seat in a confirmed selection, priced and stamped
// with its ticket number, awaiting passenger details.
type DraftSeat struct {
	Seat         string  `json:"seat"`
	TicketNumber string  `json:"ticket_number"`
	Price        float64 `json:"price"`
}

// ConfirmDraft is what the rider reviews between confirming seats and
// submitting passenger details.
type ConfirmDraft struct {
	Key          RouteKey    `json:"key"`
	FromLocation string      `json:"from_location"`
	ToLocation   string      `json:"to_location"`
	RouteLength  float64     `json:"route_length"`
	Seats        []DraftSeat `json:"seats"`
	TotalPrice   float64     `json:"total_price"`
}
