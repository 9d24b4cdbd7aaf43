package repos

import (
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	// Ensure staff accounts exist (idempotent; safe to run every start)
	if err := seedStaff(db); err != nil {
		return nil, err
	}

	return db, nil
}

// EnsureSchema creates all tables and indexes if absent. Exported so tests
// can build in-memory fixtures against the real schema.
func EnsureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Shelves (physical storage locations)
CREATE TABLE IF NOT EXISTS shelves(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  code TEXT NOT NULL,
  item_count INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_shelves_code_nocase ON shelves(LOWER(code));

-- Batches (intake provenance)
CREATE TABLE IF NOT EXISTS batches(
  id TEXT PRIMARY KEY,
  label TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Staff
CREATE TABLE IF NOT EXISTS staff(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_staff_email ON staff(LOWER(email));

-- Auctions
CREATE TABLE IF NOT EXISTS auctions(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  internal_code TEXT NOT NULL UNIQUE,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  brand TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  condition TEXT NOT NULL DEFAULT '',
  weight_lbs NUMERIC NOT NULL DEFAULT 0,
  weight_oz NUMERIC NOT NULL DEFAULT 0,
  brand_tier TEXT NOT NULL DEFAULT '',
  stock_quantity INTEGER NOT NULL DEFAULT 1,
  cost NUMERIC NOT NULL DEFAULT 0,
  retail_price NUMERIC NOT NULL DEFAULT 0,
  starting_bid NUMERIC NOT NULL DEFAULT 0,
  current_bid NUMERIC NOT NULL DEFAULT 0,
  bid_count INTEGER NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft','active','ended','sold')),
  destination TEXT NOT NULL DEFAULT 'auction' CHECK (destination IN ('auction','ebay','amazon')),
  end_time TEXT,
  external_status TEXT,
  external_listing_id TEXT,
  external_listing_url TEXT,
  external_payload TEXT,
  last_sync_at TEXT,
  last_exported_at TEXT,
  shelf_id INTEGER REFERENCES shelves(id) ON DELETE SET NULL,
  scanned_by_staff_id INTEGER REFERENCES staff(id),
  batch_id TEXT REFERENCES batches(id),
  sold_at TEXT,
  sold_price NUMERIC,
  show_on_homepage INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_auctions_created_at ON auctions(created_at);
CREATE INDEX IF NOT EXISTS idx_auctions_shelf ON auctions(shelf_id);
CREATE INDEX IF NOT EXISTS idx_auctions_status ON auctions(status);

-- Dependent records. Deletion is handled transactionally by the
-- delete coordinator, not by declarative cascades.
CREATE TABLE IF NOT EXISTS tags(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  auction_id INTEGER NOT NULL REFERENCES auctions(id),
  name TEXT NOT NULL,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_tags_auction ON tags(auction_id);

CREATE TABLE IF NOT EXISTS bids(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  auction_id INTEGER NOT NULL REFERENCES auctions(id),
  bidder TEXT NOT NULL DEFAULT '',
  amount NUMERIC NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_bids_auction ON bids(auction_id);

CREATE TABLE IF NOT EXISTS watchlist(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  auction_id INTEGER NOT NULL REFERENCES auctions(id),
  session_id TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_watchlist_auction ON watchlist(auction_id);
`
	_, err := db.Exec(schema)
	return err
}

// seedStaff ensures the intake accounts exist (idempotent).
func seedStaff(db *sqlx.DB) error {
	type s struct {
		Email, Name, Hash string
	}
	mk := func(email, name, raw string) s {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return s{Email: email, Name: name, Hash: string(h)}
	}

	staff := []s{
		mk("intake@stockyard.test", "Intake Desk", "Passw0rd!"),
		mk("floor@stockyard.test", "Floor Staff", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range staff {
		if _, err := tx.Exec(`
			INSERT INTO staff(email,name,password_hash)
			VALUES(?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.Email, x.Name, x.Hash); err != nil {
			return err
		}
	}

	return tx.Commit()
}
