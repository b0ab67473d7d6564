package telegram

import (
	"fmt"

	"github.com/ariefcatur/craft-marketplace.git/internal/orders"
)

// BuyerStatusMessage: pesan telegram buyer per status baru. ok=false kalau
// status itu memang tidak dikirimi pesan.
func BuyerStatusMessage(p orders.OrderStatusChangedPayload) (string, bool) {
	short := shortID(p.OrderID)
	switch p.NewStatus {
	case orders.StatusConfirmed:
		return fmt.Sprintf(`✅ **Order Confirmed!**

📦 **Order ID:** %s
🎨 **Product:** %s
👨‍🎨 **Artisan:** %s

Your order has been confirmed! The artisan will start working on your handcrafted piece. 🎨`, short, p.ProductName, p.ArtisanName), true

	case orders.StatusProcessing:
		return fmt.Sprintf(`⚒️ **Order in Progress!**

📦 **Order ID:** %s
🎨 **Product:** %s

Great news! Your artisan is now crafting your special piece with love and care. ✨`, short, p.ProductName), true

	case orders.StatusShipped:
		return fmt.Sprintf(`🚚 **Order Shipped!**

📦 **Order ID:** %s
🎨 **Product:** %s

Your handcrafted treasure is on its way! Expect delivery soon. 📮`, short, p.ProductName), true

	case orders.StatusDelivered:
		return fmt.Sprintf(`🎉 **Order Delivered!**

📦 **Order ID:** %s
🎨 **Product:** %s

Your handcrafted piece has arrived! We hope you love it. Please consider leaving a review! ⭐`, short, p.ProductName), true

	case orders.StatusCancelled:
		return fmt.Sprintf(`❌ **Order Cancelled**

📦 **Order ID:** %s
🎨 **Product:** %s

Your order has been cancelled. If you have any questions, please contact support. 💙`, short, p.ProductName), true

	default:
		return "", false
	}
}

// ArtisanStatusMessage: artisan cuma dikabari untuk delivered dan cancelled.
func ArtisanStatusMessage(p orders.OrderStatusChangedPayload) (string, bool) {
	short := shortID(p.OrderID)
	switch p.NewStatus {
	case orders.StatusDelivered:
		return fmt.Sprintf(`🎉 **Order Completed!**

📦 **Order ID:** %s
🎨 **Product:** %s
👤 **Customer:** %s
💰 **Amount:** %s

Congratulations! Your handcrafted piece has been delivered successfully. 🎨✨`, short, p.ProductName, p.BuyerName, orders.FormatAmount(p.TotalCents)), true

	case orders.StatusCancelled:
		return fmt.Sprintf(`❌ **Order Cancelled**

📦 **Order ID:** %s
🎨 **Product:** %s

The order has been cancelled. The customer has been notified.`, short, p.ProductName), true

	default:
		return "", false
	}
}

func BrowseKeyboard() *InlineKeyboard {
	return &InlineKeyboard{InlineKeyboard: [][]InlineButton{
		{{Text: "🛍️ Browse More Products", CallbackData: "show_all_products"}},
	}}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
