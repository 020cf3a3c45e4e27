package tickets

// PerSeatPrice is the fare for one seat on a route of the given length.
// Recomputed on every use; route lengths differ per route so a cached
// value would go stale across route changes.
func PerSeatPrice(routeLength float64) float64 {
	return 2 * routeLength
}

// TotalPrice is the fare for a whole reservation.
func TotalPrice(routeLength float64, seatCount int) float64 {
	return PerSeatPrice(routeLength) * float64(seatCount)
}
