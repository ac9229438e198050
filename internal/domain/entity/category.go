package entity

import "time"

// Category groups products, optionally as a hierarchy via ParentID.
type Category struct {
	ID        string
	Name      string
	Color     string // hex color used by the dashboard
	ParentID  string // empty if root
	SortOrder int
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
