package domain

// PageRequest holds offset-based pagination parameters for list queries.
// From is a zero-based row offset; Size is the maximum number of rows.
type PageRequest struct {
	From int
	Size int
}

// Offset returns the row offset, clamped at zero.
func (p PageRequest) Offset() int {
	if p.From < 0 {
		return 0
	}
	return p.From
}

// Limit returns the page size, clamped at one.
func (p PageRequest) Limit() int {
	if p.Size < 1 {
		return 1
	}
	return p.Size
}
