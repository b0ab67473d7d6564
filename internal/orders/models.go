package orders

import "time"

type Order struct {
	ID             string
	BuyerID        string
	ArtisanID      string
	ProductName    string
	ArtisanName    string
	BuyerName      string
	TotalCents     int
	Status         Status
	TelegramChatID string // chat id buyer, kosong kalau bukan user telegram
	BuyerPlatform  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ShortID: prefix 8 char untuk copy notifikasi.
func (o Order) ShortID() string {
	if len(o.ID) > 8 {
		return o.ID[:8]
	}
	return o.ID
}
