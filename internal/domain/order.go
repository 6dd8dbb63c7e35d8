package domain

import "time"

// Order is a finalized purchase, immutable once written to the order store.
type Order struct {
	OrderID      string     `json:"orderId"`
	UserID       string     `json:"userId"`
	CustomerName string     `json:"customerName"`
	Address      string     `json:"address"`
	Timestamp    time.Time  `json:"timestamp"`
	Lines        []CartLine `json:"items"`
	Total        int64      `json:"total"`
	PaymentID    string     `json:"paymentId,omitempty"`
}
