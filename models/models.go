package models

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// --- JWT & Auth ---

// JwtClaims mirrors the token issued by the canteen auth service.
type JwtClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// --- Core Models ---

// Order is a single canteen order as read from storage.
// CreatedAt is nil when the stored record carries no timestamp.
type Order struct {
	ID        string     `json:"id"`
	User      string     `json:"user,omitempty"`
	Status    string     `json:"status,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	Items     []LineItem `json:"items"`
}

// LineItem is an individual menu item within an Order.
type LineItem struct {
	Name  *string  `json:"name,omitempty"`
	Qty   *int     `json:"qty,omitempty"`
	Price *float64 `json:"price,omitempty"`
}

// Quantity returns the line quantity, defaulting to 1 when it was not recorded.
func (l LineItem) Quantity() int {
	if l.Qty == nil {
		return 1
	}
	return *l.Qty
}

// ItemName returns the trimmed line name, or "" when absent.
func (l LineItem) ItemName() string {
	if l.Name == nil {
		return ""
	}
	return strings.TrimSpace(*l.Name)
}
