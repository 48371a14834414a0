package repos

import (
	"log"

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

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed demo catalog if DB is empty (idempotent; safe to run every start)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
-- Products (flat collection, no foreign keys)
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL DEFAULT 0 CHECK (price >= 0),
  quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
  availability INTEGER NOT NULL DEFAULT 0,
  image_url TEXT NOT NULL,
  features_json TEXT,
  estimated_delivery TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_name       ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(LOWER(category));
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Admin account & sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(LOWER(username));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo roofing catalog")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(id,name,category,description,price,quantity,availability,image_url,features_json,created_at,updated_at) VALUES
	  ('prd-sheets-001','Roofing Sheets','metal','Galvanized corrugated roofing sheets for industrial and residential use.',
	    300.00,100,1,'/static/img/roofing-sheets.jpg','["Corrosion resistant","25-year warranty","Lightweight"]',CURRENT_TIMESTAMP,CURRENT_TIMESTAMP),
	  ('prd-clay-001','Clay Tiles','tiles','Traditional terracotta clay tiles with natural thermal insulation.',
	    200.00,55,1,'/static/img/clay-tiles.jpg','["Natural insulation","Weather resistant","Classic finish"]',CURRENT_TIMESTAMP,CURRENT_TIMESTAMP),
	  ('prd-shingles-001','Asphalt Shingles','shingles','Architectural asphalt shingles in assorted colors.',
	    100.00,0,0,'/static/img/asphalt-shingles.jpg','["Easy installation","Assorted colors","Budget friendly"]',CURRENT_TIMESTAMP,CURRENT_TIMESTAMP)`)

	return tx.Commit()
}

// EnsureAdmin creates the single admin account if it does not exist yet
// (idempotent; safe to run every start).
func EnsureAdmin(db *sqlx.DB, username, rawPassword string) error {
	h, err := bcrypt.GenerateFromPassword([]byte(rawPassword), 12)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO users(id,username,password_hash,role)
		VALUES(?,?,?,'ADMIN')
		ON CONFLICT(username) DO NOTHING
	`, "u-admin", username, string(h))
	return err
}
