package models

import (
	"time"
)

// Card conditions, roughly best to worst.
const (
	ConditionMint      = "Mint"
	ConditionNearMint  = "Near Mint"
	ConditionExcellent = "Excellent"
	ConditionGood      = "Good"
	ConditionPlayed    = "Played"
)

// ValidConditions is the set of accepted condition values for admin input.
var ValidConditions = map[string]bool{
	ConditionMint:      true,
	ConditionNearMint:  true,
	ConditionExcellent: true,
	ConditionGood:      true,
	ConditionPlayed:    true,
}

// Order statuses, in fulfillment order.
const (
	StatusOrdered   = "Ordered"
	StatusPaid      = "Paid"
	StatusShipped   = "Shipped"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)

var ValidOrderStatuses = map[string]bool{
	StatusOrdered:   true,
	StatusPaid:      true,
	StatusShipped:   true,
	StatusDelivered: true,
	StatusCancelled: true,
}

// Card is one physical copy of a card. Stock for a logical card is the
// number of unsold rows sharing the (name, set_name, card_number) triple;
// there is no stock counter column anywhere.
type Card struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	SetName     string    `json:"set_name"`
	CardNumber  string    `json:"card_number"`
	Rarity      string    `json:"rarity"`
	ImageURL    string    `json:"image_url"`
	Price       float64   `json:"price"`
	Condition   string    `json:"condition"`
	Description string    `json:"description"`
	SellerNotes string    `json:"seller_notes"` // per-copy, never cascaded
	SoldOrderID int       `json:"-"`            // 0 = available for sale
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GroupedCard is the derived view of a logical card: the first-seen row as
// representative plus the count and list of its physical copies. Built on
// every read, never persisted.
type GroupedCard struct {
	Card
	Quantity int    `json:"quantity"`
	Variants []Card `json:"variants,omitempty"`
}

// CartItem lives in the shopper's session. Name and price are snapshotted at
// add-to-cart time; quantity is revalidated against live stock on view and
// at checkout.
type CartItem struct {
	CardID     int     `json:"card_id"`
	Name       string  `json:"name"`
	SetName    string  `json:"set_name"`
	CardNumber string  `json:"card_number"`
	ImageURL   string  `json:"image_url"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

type Order struct {
	ID              int         `json:"id"`
	OrderRef        string      `json:"order_ref"`
	UserID          int         `json:"user_id"`
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	ShippingAddress string      `json:"shipping_address"`
	Status          string      `json:"status"`
	Total           float64     `json:"total"`
	Items           []OrderItem `json:"items,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// OrderItem snapshots what was bought at what price. CardIDs records the
// specific physical rows claimed for this line.
type OrderItem struct {
	ID         int     `json:"id"`
	OrderID    int     `json:"order_id"`
	CardName   string  `json:"card_name"`
	SetName    string  `json:"set_name"`
	CardNumber string  `json:"card_number"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CardIDs    []int   `json:"card_ids,omitempty"`
}

type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Password  string    `json:"-"` // bcrypt hash
	FullName  string    `json:"full_name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// CollectionEntry is a card a user tracks as owned. Identified by the same
// triple as shop cards but independent of shop inventory.
type CollectionEntry struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	Name       string    `json:"name"`
	SetName    string    `json:"set_name"`
	CardNumber string    `json:"card_number"`
	ImageURL   string    `json:"image_url"`
	AddedAt    time.Time `json:"added_at"`
}
