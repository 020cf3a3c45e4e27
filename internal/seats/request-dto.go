package seats

// BoardQuery identifies the departure whose board is being viewed.
// Parts may be missing while the rider is still picking; the board is
// then empty rather than stale.
type BoardQuery struct {
	SlNo   int    `form:"sl_no"`
	Date   string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	Timing string `form:"timing"`
}

type ToggleSeatRequest struct {
	SlNo   int    `json:"sl_no" binding:"required"`
	Date   string `json:"date" binding:"required,datetime=2006-01-02"`
	Timing string `json:"timing" binding:"required"`
	Seat   string `json:"seat" binding:"required"`
}

type ConfirmSelectionRequest struct {
	SlNo   int    `json:"sl_no" binding:"required"`
	Date   string `json:"date" binding:"required,datetime=2006-01-02"`
	Timing string `json:"timing" binding:"required"`
}
