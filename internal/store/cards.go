package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/inventory"
	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/models"
)

const cardColumns = `id, name, set_name, card_number, rarity, image_url, price,
	condition, description, seller_notes, COALESCE(sold_order_id, 0), created_at, updated_at`

func scanCard(row interface{ Scan(...any) error }) (models.Card, error) {
	var c models.Card
	err := row.Scan(&c.ID, &c.Name, &c.SetName, &c.CardNumber, &c.Rarity,
		&c.ImageURL, &c.Price, &c.Condition, &c.Description, &c.SellerNotes,
		&c.SoldOrderID, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func collectCards(rows *sql.Rows) ([]models.Card, error) {
	defer rows.Close()
	var cards []models.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// CreateCards inserts qty identical copies of card in one transaction.
// "Adding 3 units" is modeled as inserting 3 rows sharing the identity
// triple, one per physical copy.
func (s *Store) CreateCards(card *models.Card, qty int) error {
	if qty < 1 {
		qty = 1
	}
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO cards (name, set_name, card_number, rarity, image_url, price, condition, description, seller_notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`
	for i := 0; i < qty; i++ {
		if _, err := tx.Exec(query, card.Name, card.SetName, card.CardNumber,
			card.Rarity, card.ImageURL, card.Price, card.Condition,
			card.Description, card.SellerNotes); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.cache.invalidate()
	return nil
}

// AvailableCards returns every unsold copy, newest first, through the short
// TTL cache. Pass bypassCache when the caller is about to make a decision
// that must see fresh rows.
func (s *Store) AvailableCards(bypassCache bool) ([]models.Card, error) {
	const key = "cards:available"
	if !bypassCache {
		if cards, ok := s.cache.get(key); ok {
			return cards, nil
		}
	}

	query := `SELECT ` + cardColumns + ` FROM cards WHERE sold_order_id IS NULL ORDER BY created_at DESC, id DESC`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	cards, err := collectCards(rows)
	if err != nil {
		return nil, err
	}
	s.cache.set(key, cards)
	return cards, nil
}

// AllCards returns every copy including sold ones, newest first. This is the
// admin audit view and never touches the cache.
func (s *Store) AllCards() ([]models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards ORDER BY created_at DESC, id DESC`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	return collectCards(rows)
}

// CardByID fetches one physical copy, sold or not.
func (s *Store) CardByID(id int) (*models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = ?`
	c, err := scanCard(s.DB.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CardsByKey returns the unsold siblings of a logical card, oldest first
// (the claim order used at checkout).
func (s *Store) CardsByKey(k inventory.Key) ([]models.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards
		WHERE name = ? AND set_name = ? AND card_number = ? AND sold_order_id IS NULL
		ORDER BY created_at ASC, id ASC`
	rows, err := s.DB.Query(query, k.Name, k.SetName, k.CardNumber)
	if err != nil {
		return nil, err
	}
	return collectCards(rows)
}

// CountInStock answers "how many copies are left" with a count-only query,
// never transferring rows. Sold copies do not count.
func (s *Store) CountInStock(k inventory.Key) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM cards WHERE name = ? AND set_name = ? AND card_number = ? AND sold_order_id IS NULL`
	if err := s.DB.QueryRow(query, k.Name, k.SetName, k.CardNumber).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CascadeFields are the shared fields copied to sibling rows on a cascading
// edit. Condition, seller notes, and the image stay per-copy.
var CascadeFields = []string{"name", "set_name", "card_number", "rarity", "price", "description"}

// UpdateCard rewrites one row's editable fields. With cascade set, the
// shared fields also propagate to every unsold sibling of the row's previous
// identity triple, all inside one transaction: either the whole group moves
// or nothing does.
func (s *Store) UpdateCard(card *models.Card, cascade bool) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	prev, err := scanCard(tx.QueryRow(`SELECT `+cardColumns+` FROM cards WHERE id = ?`, card.ID))
	if err == sql.ErrNoRows {
		return ErrCardNotFound
	}
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		UPDATE cards
		SET name = ?, set_name = ?, card_number = ?, rarity = ?, price = ?,
		    condition = ?, description = ?, seller_notes = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		card.Name, card.SetName, card.CardNumber, card.Rarity, card.Price,
		card.Condition, card.Description, card.SellerNotes, card.ID)
	if err != nil {
		return err
	}

	if cascade {
		_, err = tx.Exec(`
			UPDATE cards
			SET name = ?, set_name = ?, card_number = ?, rarity = ?, price = ?,
			    description = ?, updated_at = CURRENT_TIMESTAMP
			WHERE name = ? AND set_name = ? AND card_number = ?
			  AND id != ? AND sold_order_id IS NULL`,
			card.Name, card.SetName, card.CardNumber, card.Rarity, card.Price,
			card.Description,
			prev.Name, prev.SetName, prev.CardNumber, card.ID)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.cache.invalidate()
	return nil
}

// UpdateCardImage replaces one copy's image. Images are deliberately outside
// the cascade set.
func (s *Store) UpdateCardImage(id int, imageURL string) error {
	res, err := s.DB.Exec(`UPDATE cards SET image_url = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, imageURL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCardNotFound
	}
	s.cache.invalidate()
	return nil
}

// DeleteCard removes one physical copy: stock for its logical card drops by
// exactly one. Sold copies belong to an order and cannot be deleted.
func (s *Store) DeleteCard(id int) error {
	res, err := s.DB.Exec(`DELETE FROM cards WHERE id = ? AND sold_order_id IS NULL`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCardNotFound
	}
	s.cache.invalidate()
	return nil
}

// DeleteCardGroup removes every unsold copy of a logical card.
func (s *Store) DeleteCardGroup(k inventory.Key) (int, error) {
	res, err := s.DB.Exec(`DELETE FROM cards WHERE name = ? AND set_name = ? AND card_number = ? AND sold_order_id IS NULL`,
		k.Name, k.SetName, k.CardNumber)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	s.cache.invalidate()
	return int(n), nil
}

// claimCards marks qty unsold copies of a logical card as belonging to an
// order, oldest copies first, and returns the claimed ids. Runs inside the
// caller's transaction so a failed line aborts the whole order.
func claimCards(tx *sql.Tx, orderID int, k inventory.Key, qty int) ([]int, error) {
	// A zero or negative line can never be satisfied.
	if qty < 1 {
		return nil, fmt.Errorf("%w: %q requested %d copies", ErrInsufficientStock, k.Name, qty)
	}
	rows, err := tx.Query(`
		SELECT id FROM cards
		WHERE name = ? AND set_name = ? AND card_number = ? AND sold_order_id IS NULL
		ORDER BY created_at ASC, id ASC
		LIMIT ?`, k.Name, k.SetName, k.CardNumber, qty)
	if err != nil {
		return nil, err
	}
	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) < qty {
		return nil, fmt.Errorf("%w: %q has %d of %d requested", ErrInsufficientStock, k.Name, len(ids), qty)
	}

	placeholders := strings.Repeat("?,", len(ids)-1) + "?"
	args := make([]any, 0, len(ids)+1)
	args = append(args, orderID)
	for _, id := range ids {
		args = append(args, id)
	}
	res, err := tx.Exec(`UPDATE cards SET sold_order_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id IN (`+placeholders+`) AND sold_order_id IS NULL`, args...)
	if err != nil {
		return nil, err
	}
	// A concurrent checkout may have grabbed a row between SELECT and
	// UPDATE; the row count check keeps the claim exact.
	if n, _ := res.RowsAffected(); int(n) != len(ids) {
		return nil, fmt.Errorf("%w: %q claimed concurrently", ErrInsufficientStock, k.Name)
	}
	return ids, nil
}
