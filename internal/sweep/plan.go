package sweep

import (
	"fmt"
	"time"

	"github.com/ariefcatur/craft-marketplace.git/internal/notify"
	"github.com/ariefcatur/craft-marketplace.git/internal/requests"
)

// ClassifyExpired: tanpa quotation -> expired (arsip), ada quotation ->
// deadline_expired tapi quotation tetap bisa dibuka buyer.
func ClassifyExpired(quotationCount int) (requests.Status, string) {
	if quotationCount == 0 {
		return requests.StatusExpired, requests.ReasonNoQuotations
	}
	return requests.StatusDeadlineExpired, requests.ReasonWithQuotations
}

func expiryMessage(title string, quotationCount int) string {
	if quotationCount == 0 {
		return fmt.Sprintf("Your custom request \"%s\" deadline has expired.\nNo quotations were received before the deadline.\nYou can create a new request if you still need this item.", title)
	}
	return fmt.Sprintf("Your custom request \"%s\" deadline has expired.\nYou have %d quotation%s to review.\nPlease check your quotations and make a decision.",
		title, quotationCount, plural(quotationCount))
}

func expiryNotification(r requests.Request, reason string, now time.Time) notify.Notification {
	return notify.New(
		r.BuyerID,
		notify.TypeDeadlineExpired,
		"Request Deadline Expired ⏰",
		expiryMessage(r.Title, r.QuotationCount),
		notify.RoleBuyer,
		map[string]any{
			"requestId":      r.ID,
			"requestTitle":   r.Title,
			"quotationCount": r.QuotationCount,
			"reason":         "deadline_expired",
		},
		now,
	)
}

func reminderNotification(r requests.Request, remaining string, now time.Time) notify.Notification {
	return notify.New(
		r.BuyerID,
		notify.TypeSystemUpdate,
		"Deadline Reminder ⏰",
		fmt.Sprintf("Your request \"%s\" deadline is approaching.\nTime remaining: %s\nReview any quotations you've received or extend the deadline if needed.",
			r.Title, remaining),
		notify.RoleBuyer,
		map[string]any{
			"requestId":     r.ID,
			"requestTitle":  r.Title,
			"timeRemaining": remaining,
			"reminderType":  "deadline_approaching",
		},
		now,
	)
}

// TimeRemaining: sisa waktu versi manusia. Dihitung saat commit, bukan saat
// select, biar tidak basi kalau sweep-nya lama.
func TimeRemaining(now, deadline time.Time) string {
	d := deadline.Sub(now)
	if d <= 0 {
		return "Expired"
	}
	if days := int(d.Hours() / 24); days > 0 {
		return fmt.Sprintf("%d day%s left", days, plural(days))
	}
	if hours := int(d.Hours()); hours > 0 {
		return fmt.Sprintf("%d hour%s left", hours, plural(hours))
	}
	if minutes := int(d.Minutes()); minutes > 0 {
		return fmt.Sprintf("%d minute%s left", minutes, plural(minutes))
	}
	return "Expiring soon"
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
