package dto

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type PageRequest struct {
	Page  int
	Limit int
}

// Normalize clamps page and limit to sane bounds
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages rounds up
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
