package models

// InventoryAlert asks to be told when a sold-out variant is back in stock.
type InventoryAlert struct {
	ID            string `json:"id"`
	ProductID     string `json:"productId"`
	ProductHandle string `json:"productHandle"`
	ProductTitle  string `json:"productTitle"`
	VariantTitle  string `json:"variantTitle"`
	VariantID     string `json:"variantId"`
	Email         string `json:"email"`
	CreatedAt     string `json:"createdAt"`
	Notified      bool   `json:"notified"`
}

// NewAlertRequest is the payload for creating an alert; id, createdAt and
// notified are filled in by the store.
type NewAlertRequest struct {
	ProductID     string `json:"productId" binding:"required"`
	ProductHandle string `json:"productHandle" binding:"required"`
	ProductTitle  string `json:"productTitle" binding:"required"`
	VariantTitle  string `json:"variantTitle"`
	VariantID     string `json:"variantId" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
}

// AlertCreatedEvent is published to SNS when a shopper subscribes to a restock.
type AlertCreatedEvent struct {
	EventType string         `json:"event_type"`
	UserID    string         `json:"user_id"`
	Alert     InventoryAlert `json:"alert"`
}
