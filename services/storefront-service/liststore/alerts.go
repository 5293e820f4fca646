package liststore

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/models"
	"github.com/kkurtzhang/3dbyte-tech-store-sub001/services/storefront-service/storage"
	"go.uber.org/zap"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// Alerts stores back-in-stock subscriptions. Duplicate product/variant pairs
// are allowed; callers check HasAlert first when they care.
type Alerts struct {
	*Store[models.InventoryAlert]
	now func() time.Time
}

func NewAlerts(ctx context.Context, backend storage.Store, log *zap.Logger) *Alerts {
	return &Alerts{
		Store: New(ctx, backend, storage.KeyInventoryAlerts, func(a models.InventoryAlert) string { return a.ID }, 0, log),
		now:   time.Now,
	}
}

// WithClock replaces the time source used for ids and timestamps.
func (a *Alerts) WithClock(now func() time.Time) *Alerts {
	a.now = now
	return a
}

func newAlertID(t time.Time) string {
	var sb strings.Builder
	for i := 0; i < 9; i++ {
		sb.WriteByte(base36[rand.Intn(len(base36))])
	}
	return fmt.Sprintf("alert_%d_%s", t.UnixMilli(), sb.String())
}

// AddAlert records a new un-notified alert and returns it.
func (a *Alerts) AddAlert(ctx context.Context, req models.NewAlertRequest) (models.InventoryAlert, error) {
	now := a.now()
	alert := models.InventoryAlert{
		ID:            newAlertID(now),
		ProductID:     req.ProductID,
		ProductHandle: req.ProductHandle,
		ProductTitle:  req.ProductTitle,
		VariantTitle:  req.VariantTitle,
		VariantID:     req.VariantID,
		Email:         req.Email,
		CreatedAt:     now.UTC().Format(time.RFC3339),
	}
	_, err := a.Add(ctx, alert)
	return alert, err
}

// HasAlert reports whether an alert exists for exactly this pair.
func (a *Alerts) HasAlert(productID, variantID string) bool {
	for _, al := range a.Items() {
		if al.ProductID == productID && al.VariantID == variantID {
			return true
		}
	}
	return false
}

func (a *Alerts) RemoveAlert(ctx context.Context, id string) (bool, error) {
	return a.Remove(ctx, id)
}

// RemoveAlertFor drops every alert for the product/variant pair.
func (a *Alerts) RemoveAlertFor(ctx context.Context, productID, variantID string) (int, error) {
	return a.RemoveWhere(ctx, func(al models.InventoryAlert) bool {
		return al.ProductID == productID && al.VariantID == variantID
	})
}

func (a *Alerts) MarkNotified(ctx context.Context, id string) (bool, error) {
	return a.Update(ctx, id, func(al *models.InventoryAlert) { al.Notified = true })
}

func (a *Alerts) AlertsForEmail(email string) []models.InventoryAlert {
	var out []models.InventoryAlert
	for _, al := range a.Items() {
		if strings.EqualFold(al.Email, email) {
			out = append(out, al)
		}
	}
	return out
}
