package upstream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexString decodes a JSON string or number into a string. The remote
// service is loose about numeric fields: sl_no arrives as a number on
// /getroutes/ rows but as a string on /getseats/ records.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("field is neither string nor number: %s", data)
	}
	*f = FlexString(n.String())
	return nil
}

// FlexFloat decodes a JSON number or numeric string into a float64.
// route_length and ticket_price both arrive in either form.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	s := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("field is not numeric: %s", data)
	}
	*f = FlexFloat(v)
	return nil
}

// Route is one row of the remote route directory.
type Route struct {
	SlNo             FlexString `json:"sl_no"`
	FromLocation     string     `json:"from_location"`
	ToLocation       string     `json:"to_location"`
	DepartureTimings string     `json:"departure_timings"` // comma-joined
	RouteLength      FlexFloat  `json:"route_length"`
}

// SeatRecord is one persisted reservation on the remote service. It is
// the unit read from /getseats/ and deleted via /deleteseat/.
type SeatRecord struct {
	No                    int        `json:"no,omitempty"`
	SlNo                  FlexString `json:"sl_no"`
	Date                  string     `json:"date"`
	DepartureTimings      string     `json:"departure_timings"`
	SelectedSeat          string     `json:"selected_seats"`
	PassengerName         string     `json:"passenger_name"`
	PassengerAge          FlexString `json:"passenger_age"`
	PassengerGender       string     `json:"passenger_gender"`
	PassengerMobileNumber FlexString `json:"passenger_mobile_number"`
	TicketPrice           FlexFloat  `json:"ticket_price"`
	TicketNumber          string     `json:"ticket_number"`
	FromLocation          string     `json:"from_location"`
	ToLocation            string     `json:"to_location"`
}

// ReserveRequest is the body of POST /reserveseats/: one passenger,
// one seat, one ticket.
type ReserveRequest struct {
	SlNo                  int     `json:"sl_no"`
	Date                  string  `json:"date"`
	DepartureTimings      string  `json:"departure_timings"`
	SelectedSeat          string  `json:"selected_seats"`
	PassengerName         string  `json:"passenger_name"`
	PassengerAge          int     `json:"passenger_age"`
	PassengerGender       string  `json:"passenger_gender"`
	PassengerMobileNumber string  `json:"passenger_mobile_number"`
	TicketPrice           float64 `json:"ticket_price"`
	TicketNumber          string  `json:"ticket_number"`
	FromLocation          string  `json:"from_location"`
	ToLocation            string  `json:"to_location"`
}

type routesEnvelope struct {
	Rows []Route `json:"rows"`
}

type seatsEnvelope struct {
	Seats []SeatRecord `json:"seats"`
}
