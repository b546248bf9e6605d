package store

import (
	"crypto/rand"
	"database/sql"
	"strconv"
	"time"

	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/inventory"
	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/models"
)

// CreateOrder writes the order, its item snapshots, and the row claims in a
// single transaction. Each line claims exactly Quantity unsold copies of its
// logical card; if any line comes up short the whole order rolls back with
// ErrInsufficientStock, so two shoppers can no longer buy the same copy.
func (s *Store) CreateOrder(order *models.Order) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if order.OrderRef == "" {
		order.OrderRef = generateOrderRef()
	}
	if order.Status == "" {
		order.Status = models.StatusOrdered
	}

	total := 0.0
	for _, it := range order.Items {
		total += it.UnitPrice * float64(it.Quantity)
	}
	order.Total = total

	res, err := tx.Exec(`
		INSERT INTO orders (order_ref, user_id, customer_name, customer_email, shipping_address, status, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		order.OrderRef, order.UserID, order.CustomerName, order.CustomerEmail,
		order.ShippingAddress, order.Status, order.Total)
	if err != nil {
		return err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return err
	}
	order.ID = int(orderID)

	for i := range order.Items {
		it := &order.Items[i]
		it.OrderID = order.ID

		key := inventory.Key{Name: it.CardName, SetName: it.SetName, CardNumber: it.CardNumber}
		ids, err := claimCards(tx, order.ID, key, it.Quantity)
		if err != nil {
			return err
		}
		it.CardIDs = ids

		itemRes, err := tx.Exec(`
			INSERT INTO order_items (order_id, card_name, set_name, card_number, quantity, unit_price)
			VALUES (?, ?, ?, ?, ?, ?)`,
			order.ID, it.CardName, it.SetName, it.CardNumber, it.Quantity, it.UnitPrice)
		if err != nil {
			return err
		}
		itemID, err := itemRes.LastInsertId()
		if err != nil {
			return err
		}
		it.ID = int(itemID)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.cache.invalidate()
	return nil
}

func (s *Store) OrderByID(id int) (*models.Order, error) {
	row := s.DB.QueryRow(`
		SELECT id, order_ref, user_id, customer_name, customer_email, shipping_address, status, total, created_at
		FROM orders WHERE id = ?`, id)

	var o models.Order
	err := row.Scan(&o.ID, &o.OrderRef, &o.UserID, &o.CustomerName,
		&o.CustomerEmail, &o.ShippingAddress, &o.Status, &o.Total, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := s.orderItems(o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (s *Store) orderItems(orderID int) ([]models.OrderItem, error) {
	rows, err := s.DB.Query(`
		SELECT id, order_id, card_name, set_name, card_number, quantity, unit_price
		FROM order_items WHERE order_id = ? ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.CardName, &it.SetName,
			&it.CardNumber, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// OrdersByUser lists a shopper's order history, newest first, items included.
func (s *Store) OrdersByUser(userID int) ([]models.Order, error) {
	rows, err := s.DB.Query(`
		SELECT id, order_ref, user_id, customer_name, customer_email, shipping_address, status, total, created_at
		FROM orders WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.OrderRef, &o.UserID, &o.CustomerName,
			&o.CustomerEmail, &o.ShippingAddress, &o.Status, &o.Total, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := s.orderItems(orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (s *Store) GetAllOrders(limit, offset int) ([]models.Order, error) {
	rows, err := s.DB.Query(`
		SELECT id, order_ref, user_id, customer_name, customer_email, shipping_address, status, total, created_at
		FROM orders ORDER BY created_at DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.OrderRef, &o.UserID, &o.CustomerName,
			&o.CustomerEmail, &o.ShippingAddress, &o.Status, &o.Total, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *Store) GetTotalOrdersCount() (int, error) {
	var count int
	err := s.DB.QueryRow("SELECT COUNT(*) FROM orders").Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) UpdateOrderStatus(id int, status string) error {
	res, err := s.DB.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func generateOrderRef() string {
	// 8 chars alphanumeric, uppercase. I, O, 1, 0 removed to avoid confusion.
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "ORD" + strconv.FormatInt(time.Now().Unix(), 10)
	}
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b)
}
