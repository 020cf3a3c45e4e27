package seats

import (
	"strconv"
	"strings"
)

// Fixed bus layout: two decks of 18 seats, shown six to a row. Labels
// are deck letter + 1-based index with no zero padding ("U7", "L18").
const (
	SeatsPerDeck = 18
	SeatsPerRow  = 6

	UpperDeckLetter = "U"
	LowerDeckLetter = "L"
)

// ValidSeatLabel reports whether the label addresses a real seat.
func ValidSeatLabel(label string) bool {
	if len(label) < 2 {
		return false
	}
	deck, index := label[:1], label[1:]
	if deck != UpperDeckLetter && deck != LowerDeckLetter {
		return false
	}
	n, err := strconv.Atoi(index)
	if err != nil || n < 1 || n > SeatsPerDeck {
		return false
	}
	// Reject padded forms like "U07"; the board never produces them.
	return index == strconv.Itoa(n)
}

// BuildDecks lays out both decks with per-seat status derived from the
// booked and selected sets. A seat present in both renders as booked;
// the sets are kept disjoint upstream, so that is purely defensive
// rendering order.
func BuildDecks(booked, selected []string) []DeckView {
	bookedSet := toSet(booked)
	selectedSet := toSet(selected)

	build := func(name, letter string) DeckView {
		deck := DeckView{Deck: name}
		var row []SeatView
		for i := 1; i <= SeatsPerDeck; i++ {
			label := letter + strconv.Itoa(i)
			status := "available"
			switch {
			case bookedSet[label]:
				status = "booked"
			case selectedSet[label]:
				status = "selected"
			}
			row = append(row, SeatView{Label: label, Status: status})
			if i%SeatsPerRow == 0 {
				deck.Rows = append(deck.Rows, row)
				row = nil
			}
		}
		return deck
	}

	return []DeckView{
		build("upper", UpperDeckLetter),
		build("lower", LowerDeckLetter),
	}
}

func toSet(labels []string) map[string]bool {
	set := make(map[string]bool, len(labels))
	for _, l := range labels {
		set[strings.TrimSpace(l)] = true
	}
	return set
}
