package store

import (
	"strings"

	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/models"
)

// AddCollectionEntry records a card the user owns. Adding the same card
// twice is a no-op rather than an error.
func (s *Store) AddCollectionEntry(e *models.CollectionEntry) error {
	res, err := s.DB.Exec(`
		INSERT INTO collections (user_id, name, set_name, card_number, image_url, added_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		e.UserID, e.Name, e.SetName, e.CardNumber, e.ImageURL)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = int(id)
	return nil
}

func (s *Store) CollectionByUser(userID int) ([]models.CollectionEntry, error) {
	rows, err := s.DB.Query(`
		SELECT id, user_id, name, set_name, card_number, image_url, added_at
		FROM collections WHERE user_id = ? ORDER BY added_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.CollectionEntry
	for rows.Next() {
		var e models.CollectionEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Name, &e.SetName,
			&e.CardNumber, &e.ImageURL, &e.AddedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RemoveCollectionEntry deletes one entry, scoped to the owner so a user
// cannot remove someone else's.
func (s *Store) RemoveCollectionEntry(userID, entryID int) error {
	res, err := s.DB.Exec(`DELETE FROM collections WHERE id = ? AND user_id = ?`, entryID, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCardNotFound
	}
	return nil
}
