package telegram

import (
	"testing"

	"github.com/ariefcatur/craft-marketplace.git/internal/orders"
	"github.com/stretchr/testify/assert"
)

func payload(to orders.Status) orders.OrderStatusChangedPayload {
	return orders.OrderStatusChangedPayload{
		OrderID:     "11112222-3333-4444-5555-666677778888",
		NewStatus:   to,
		ProductName: "Clay Vase",
		ArtisanName: "Ravi",
		BuyerName:   "Anita",
		TotalCents:  250000,
	}
}

func TestBuyerStatusMessage(t *testing.T) {
	for _, st := range []orders.Status{
		orders.StatusConfirmed, orders.StatusProcessing, orders.StatusShipped,
		orders.StatusDelivered, orders.StatusCancelled,
	} {
		msg, ok := BuyerStatusMessage(payload(st))
		assert.True(t, ok, string(st))
		assert.Contains(t, msg, "11112222", string(st))
		assert.Contains(t, msg, "Clay Vase", string(st))
	}

	_, ok := BuyerStatusMessage(payload(orders.StatusPending))
	assert.False(t, ok)
}

func TestArtisanStatusMessage(t *testing.T) {
	msg, ok := ArtisanStatusMessage(payload(orders.StatusDelivered))
	assert.True(t, ok)
	assert.Contains(t, msg, "Anita")
	assert.Contains(t, msg, "₹2500.00")

	msg, ok = ArtisanStatusMessage(payload(orders.StatusCancelled))
	assert.True(t, ok)
	assert.Contains(t, msg, "cancelled")

	// selain delivered/cancelled artisan tidak dikirimi apa-apa
	for _, st := range []orders.Status{orders.StatusConfirmed, orders.StatusProcessing, orders.StatusShipped, orders.StatusPending} {
		_, ok := ArtisanStatusMessage(payload(st))
		assert.False(t, ok, string(st))
	}
}
