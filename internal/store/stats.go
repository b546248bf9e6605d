package store

import "database/sql"

type DashboardStats struct {
	CardsInStock   int            // unsold physical copies
	LogicalCards   int            // distinct identity triples in stock
	TotalUsers     int
	TotalOrders    int
	OrdersByStatus map[string]int
	TopSellers     []CardSaleCount
}

type CardSaleCount struct {
	Name       string
	SetName    string
	CardNumber string
	SoldCount  int
}

func (s *Store) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{
		OrdersByStatus: make(map[string]int),
	}

	err := s.DB.QueryRow("SELECT COUNT(*) FROM cards WHERE sold_order_id IS NULL").Scan(&stats.CardsInStock)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	err = s.DB.QueryRow(`SELECT COUNT(*) FROM (
		SELECT DISTINCT name, set_name, card_number FROM cards WHERE sold_order_id IS NULL
	)`).Scan(&stats.LogicalCards)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	err = s.DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&stats.TotalUsers)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	err = s.DB.QueryRow("SELECT COUNT(*) FROM orders").Scan(&stats.TotalOrders)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	rows, err := s.DB.Query("SELECT status, COUNT(*) FROM orders GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.OrdersByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sellerRows, err := s.DB.Query(`
		SELECT card_name, set_name, card_number, SUM(quantity) as sold
		FROM order_items
		GROUP BY card_name, set_name, card_number
		ORDER BY sold DESC
		LIMIT 10
	`)
	if err != nil {
		return nil, err
	}
	defer sellerRows.Close()
	for sellerRows.Next() {
		var c CardSaleCount
		if err := sellerRows.Scan(&c.Name, &c.SetName, &c.CardNumber, &c.SoldCount); err != nil {
			return nil, err
		}
		stats.TopSellers = append(stats.TopSellers, c)
	}

	return stats, sellerRows.Err()
}
