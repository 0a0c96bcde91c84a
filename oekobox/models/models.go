package models

import "time"

// Shop is one storefront from the public shop list. Every shop serves its own
// base URL derived from ID.
type Shop struct {
	ID        string
	Name      string
	Latitude  float64
	Longitude float64

	// Delivery area center, when the feed carries one.
	DeliveryLat *float64
	DeliveryLng *float64
}

// UserInfo describes the account a session belongs to.
type UserInfo struct {
	ID           string
	Username     string
	Email        string
	IsActive     bool
	PcgifVersion string
	ShopVersion  string
}

// CustomerInfo is the customer profile wrapper around UserInfo.
type CustomerInfo struct {
	ID   string
	User UserInfo
}

// Group is a top-level product category.
type Group struct {
	ID    string
	Name  string
	Info  string
	Count int
}

// SubGroup is a category below a Group.
type SubGroup struct {
	ID       string
	Name     string
	ParentID string
	Count    int
}

// Item is a single product. Price may be absent for weighted or on-request
// articles.
type Item struct {
	ID          string
	Name        string
	Price       *float64
	Unit        string
	Description string
	GroupID     string
}

// CartItem is one position of the server-side cart.
type CartItem struct {
	ItemID   string
	Quantity float64
	Unit     string
	Price    *float64
	Note     string
}

// Order is a delivery order. Total is computed by the server and never
// recalculated here.
type Order struct {
	ID           string
	CustomerID   string
	DeliveryDate *time.Time
	Status       string
	Total        *float64
	Items        []CartItem
}

// DeliveryDate is one selectable delivery slot.
type DeliveryDate struct {
	Date      time.Time
	Available bool
}

// Favourite marks an item pinned by a customer.
type Favourite struct {
	CustomerID string
	ItemID     string
}

// Subscription is a recurring box subscription.
type Subscription struct {
	ID         string
	CustomerID string
	Frequency  string
	Active     bool
}
