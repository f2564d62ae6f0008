package dto

// ReorderRequest ranks entries of one date by ID. Rank values arrive as
// strings from the form layer; unparsable or missing ranks demote the
// entry after all ranked ones, keeping relative order.
type ReorderRequest struct {
	RankByID map[string]string `json:"rankByID" binding:"required"`
}

// ReorderResponse reports whether any entry actually moved.
type ReorderResponse struct {
	Modified bool `json:"modified"`
}
