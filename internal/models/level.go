package models

// Level is immutable reference data; Order defines natural progression.
type Level struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Cycle string `db:"cycle" json:"cycle"`
	Order int    `db:"sort_order" json:"order"`
}
