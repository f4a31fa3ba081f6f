package scrimage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// ScreenDB caches encoded screens keyed by the SHA1 of the source image and
// the options used to encode it. Finding the best number of colors with
// interrupts means quantizing the image many times over so it's worth not
// doing it twice.
type ScreenDB struct {
	db *sql.DB
}

// NewScreenDB opens, creating if necessary, the cache database in file
func NewScreenDB(file string) (*ScreenDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS screen (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, options TEXT NOT NULL, interrupts INTEGER NOT NULL, data BLOB NOT NULL, UNIQUE(sha1, options))"); err != nil {
		db.Close()
		return nil, err
	}

	return &ScreenDB{
		db: db,
	}, nil
}

// Close closes the database
func (db *ScreenDB) Close() error {
	return db.db.Close()
}

// Find returns the cached screen for the given source image and options, or
// nil if there isn't one.
func (db *ScreenDB) Find(sha, options string) ([]byte, error) {
	var data []byte
	switch err := db.db.QueryRow("SELECT data FROM screen WHERE sha1 = ? AND options = ?", sha, options).Scan(&data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return data, nil
	default:
		return nil, err
	}
}

// Add stores the screen for the given source image and options, replacing
// any existing entry.
func (db *ScreenDB) Add(sha, options string, interrupts int, data []byte) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO screen (sha1, options, interrupts, data) VALUES (?, ?, ?, ?)", sha, options, interrupts, data); err != nil {
		return err
	}
	return nil
}

// Length returns the number of cached screens
func (db *ScreenDB) Length() (int, error) {
	var n int
	if err := db.db.QueryRow("SELECT COUNT(*) FROM screen").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
