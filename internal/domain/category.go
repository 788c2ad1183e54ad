package domain

import "time"

// Category labels projects and carries an optional stage template that seeds
// work stages when a ticket in that category is converted.
type Category struct {
	ID            string
	Name          string
	Description   string
	StageTemplate []byte
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasTemplate reports whether a stage template payload is stored.
func (c *Category) HasTemplate() bool {
	return c != nil && len(c.StageTemplate) > 0
}
