package ports

import "github.com/sweetshop/inventory-system/internal/core/domain"

// AlertDispatcher accepts low-stock alerts for asynchronous handling.
// Enqueue must not block the purchasing request path beyond the queue's
// buffer capacity.
type AlertDispatcher interface {
	Enqueue(alert domain.StockAlert)
}
