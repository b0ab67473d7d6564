package orders

import (
	"errors"
	"fmt"
	"time"

	"github.com/ariefcatur/craft-marketplace.git/internal/notify"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// Plan: hasil validasi transisi sebelum commit — status baru plus row
// notification yang di-stage bareng di satu tx.
type Plan struct {
	From          Status
	To            Status
	NoOp          bool
	Notifications []notify.Notification
}

// TransitionPlan pure function: tidak nulis apa-apa. Replay event dengan
// status sama -> NoOp (tanpa write, tanpa notification), jadi aman
// at-least-once.
func TransitionPlan(o Order, to Status, now time.Time) (Plan, error) {
	if o.Status == to {
		return Plan{From: o.Status, To: to, NoOp: true}, nil
	}
	if !CanTransition(o.Status, to) {
		return Plan{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
	}

	p := Plan{From: o.Status, To: to}
	if title, msg, ok := buyerFeedCopy(o, to); ok {
		p.Notifications = append(p.Notifications, notify.New(
			o.BuyerID, notify.TypeOrderUpdate, title, msg, notify.RoleBuyer,
			map[string]any{"orderId": o.ID, "status": string(to)}, now,
		))
	}
	if title, msg, ok := artisanFeedCopy(o, to); ok && o.ArtisanID != "" {
		p.Notifications = append(p.Notifications, notify.New(
			o.ArtisanID, notify.TypeOrderUpdate, title, msg, notify.RoleArtisan,
			map[string]any{"orderId": o.ID, "status": string(to)}, now,
		))
	}
	return p, nil
}

// buyerFeedCopy: template per status baru, exhaustive. Status tanpa template
// (pending) tidak menghasilkan notifikasi buyer.
func buyerFeedCopy(o Order, to Status) (title, msg string, ok bool) {
	switch to {
	case StatusConfirmed:
		return "Order Confirmed",
			fmt.Sprintf("Your order %s (%s) has been confirmed by %s. The artisan will start working on your piece.", o.ShortID(), o.ProductName, o.ArtisanName),
			true
	case StatusProcessing:
		return "Order in Progress",
			fmt.Sprintf("Your order %s (%s) is being crafted by %s.", o.ShortID(), o.ProductName, o.ArtisanName),
			true
	case StatusShipped:
		return "Order Shipped",
			fmt.Sprintf("Your order %s (%s) is on its way.", o.ShortID(), o.ProductName),
			true
	case StatusDelivered:
		return "Order Delivered",
			fmt.Sprintf("Your order %s (%s) has been delivered. Enjoy your handcrafted piece!", o.ShortID(), o.ProductName),
			true
	case StatusCancelled:
		return "Order Cancelled",
			fmt.Sprintf("Your order %s (%s) has been cancelled. If you have any questions, please contact support.", o.ShortID(), o.ProductName),
			true
	case StatusPending:
		return "", "", false
	default:
		return "", "", false
	}
}

// artisanFeedCopy: disjoint dari buyer — artisan hanya dikabari untuk
// delivered (selamat, ada nominal) dan cancelled (informasi).
func artisanFeedCopy(o Order, to Status) (title, msg string, ok bool) {
	switch to {
	case StatusDelivered:
		return "Order Completed",
			fmt.Sprintf("Order %s (%s) for %s has been delivered successfully. Amount: %s. Congratulations!", o.ShortID(), o.ProductName, o.BuyerName, FormatAmount(o.TotalCents)),
			true
	case StatusCancelled:
		return "Order Cancelled",
			fmt.Sprintf("Order %s (%s) has been cancelled. The customer has been notified.", o.ShortID(), o.ProductName),
			true
	default:
		return "", "", false
	}
}

func FormatAmount(cents int) string {
	return fmt.Sprintf("₹%d.%02d", cents/100, cents%100)
}
