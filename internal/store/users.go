package store

import (
	"database/sql"
	"strings"

	"github.com/Vito-Gandeza/PokeTracker-sub000/internal/models"
)

// CreateUser stores a new account. The password must already be hashed.
func (s *Store) CreateUser(user *models.User) error {
	email := strings.ToLower(strings.TrimSpace(user.Email))
	res, err := s.DB.Exec(`
		INSERT INTO users (email, username, password, full_name, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		email, user.Username, user.Password, user.FullName, user.IsAdmin)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return ErrEmailTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = int(id)
	user.Email = email
	return nil
}

// GetUserByEmail returns (nil, nil) when no account exists; callers treat an
// unknown email the same as a bad password.
func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	query := `SELECT id, email, username, password, full_name, is_admin, created_at FROM users WHERE email = ?`
	row := s.DB.QueryRow(query, strings.ToLower(strings.TrimSpace(email)))

	var user models.User
	if err := row.Scan(&user.ID, &user.Email, &user.Username, &user.Password,
		&user.FullName, &user.IsAdmin, &user.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByID(id int) (*models.User, error) {
	query := `SELECT id, email, username, password, full_name, is_admin, created_at FROM users WHERE id = ?`
	row := s.DB.QueryRow(query, id)

	var user models.User
	if err := row.Scan(&user.ID, &user.Email, &user.Username, &user.Password,
		&user.FullName, &user.IsAdmin, &user.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// SetAdmin flips the role flag. The session picks the change up on the
// user's next request because the admin middleware re-reads the row.
func (s *Store) SetAdmin(userID int, isAdmin bool) error {
	res, err := s.DB.Exec(`UPDATE users SET is_admin = ? WHERE id = ?`, isAdmin, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *Store) ListUsers() ([]models.User, error) {
	rows, err := s.DB.Query(`SELECT id, email, username, full_name, is_admin, created_at FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.FullName, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
