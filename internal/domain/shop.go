package domain

import "time"

// Shop represents one Shopware store instance with its own Admin API
// credentials. Records are created by the app registration handshake and
// removed when the merchant uninstalls the app.
type Shop struct {
	ID           string    `json:"id" bson:"_id"`
	ShopURL      string    `json:"shop_url" bson:"shop_url"`
	ShopSecret   string    `json:"shop_secret" bson:"shop_secret"`
	ClientID     string    `json:"client_id" bson:"client_id"`
	ClientSecret string    `json:"client_secret" bson:"client_secret"`
	Active       bool      `json:"active" bson:"active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// HasCredentials reports whether the shop has completed the registration
// confirmation and carries usable API credentials.
func (s *Shop) HasCredentials() bool {
	return s.ClientID != "" && s.ClientSecret != ""
}
