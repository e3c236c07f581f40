package domain

import "time"

// StockAlert signals that a sweet's quantity dropped to or below the
// configured low-stock threshold.
type StockAlert struct {
	SweetID   string
	Name      string
	Quantity  int
	Threshold int
	At        time.Time
}
