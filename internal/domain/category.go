package domain

// Category groups providers and projects by trade.
type Category struct {
	ID          string
	Name        string
	Slug        string
	Description string
}
