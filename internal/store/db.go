package store

import (
	"database/sql"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

type Store struct {
	DB    *sql.DB
	cache *queryCache
}

func NewStore(dataSourceName string) (*Store, error) {
	return NewStoreWithTTL(dataSourceName, DefaultCacheTTL)
}

// NewStoreWithTTL opens the database with an explicit read-cache TTL.
// Tests use a tiny TTL; a zero or negative value gets the default.
func NewStoreWithTTL(dataSourceName string, cacheTTL time.Duration) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	// Checkout transactions claim rows; serialize writers instead of
	// surfacing SQLITE_BUSY to handlers.
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		return nil, err
	}

	return &Store{DB: db, cache: newQueryCache(cacheTTL)}, nil
}

func (s *Store) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS cards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		set_name TEXT NOT NULL,
		card_number TEXT NOT NULL,
		rarity TEXT DEFAULT '',
		image_url TEXT DEFAULT '',
		price REAL NOT NULL DEFAULT 0,
		condition TEXT DEFAULT 'Near Mint',
		description TEXT DEFAULT '',
		seller_notes TEXT DEFAULT '',
		sold_order_id INTEGER,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_cards_identity ON cards (name, set_name, card_number);
	CREATE INDEX IF NOT EXISTS idx_cards_sold ON cards (sold_order_id);

	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		username TEXT NOT NULL,
		password TEXT NOT NULL,
		full_name TEXT DEFAULT '',
		is_admin INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		order_ref TEXT NOT NULL UNIQUE,
		user_id INTEGER NOT NULL,
		customer_name TEXT NOT NULL,
		customer_email TEXT NOT NULL,
		shipping_address TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Ordered',
		total REAL NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS order_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		order_id INTEGER NOT NULL,
		card_name TEXT NOT NULL,
		set_name TEXT NOT NULL,
		card_number TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		unit_price REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items (order_id);

	CREATE TABLE IF NOT EXISTS collections (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		set_name TEXT NOT NULL,
		card_number TEXT NOT NULL,
		image_url TEXT DEFAULT '',
		added_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, name, set_name, card_number)
	);
	`
	_, err := s.DB.Exec(query)
	if err != nil {
		slog.Error("Error creating schema", "error", err)
		return err
	}
	return nil
}
