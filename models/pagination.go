package models

const (
	DefaultListLimit      = 100
	DefaultAdminListLimit = 200
	DefaultActivityLimit  = 50
	MaxListLimit          = 1000
)

// ListParams is bound from ?skip=&limit= on list endpoints.
type ListParams struct {
	Skip  int `form:"skip" binding:"omitempty,min=0"`
	Limit int `form:"limit" binding:"omitempty,min=0,max=1000"`
}

// WithDefault fills a missing limit and clamps out-of-range values.
func (p ListParams) WithDefault(limit int) ListParams {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = limit
	}
	if p.Limit > MaxListLimit {
		p.Limit = MaxListLimit
	}
	return p
}
