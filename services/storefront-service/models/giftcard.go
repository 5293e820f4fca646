package models

// PendingGiftCard holds a gift card purchase between the configurator and
// the cart, stored under the pendingGiftCard key.
type PendingGiftCard struct {
	VariantID      string  `json:"variantId" binding:"required"`
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	CurrencyCode   string  `json:"currencyCode" binding:"required,len=3"`
	RecipientName  string  `json:"recipientName" binding:"required"`
	RecipientEmail string  `json:"recipientEmail" binding:"required,email"`
	SenderName     string  `json:"senderName"`
	Message        string  `json:"message" binding:"max=500"`
	DeliveryDate   string  `json:"deliveryDate,omitempty"`
}
