package repos

import (
	"github.com/jmoiron/sqlx"

	"stockyard/internal/domain"
)

type ShelfRepo struct{ db *sqlx.DB }

func NewShelfRepo(db *sqlx.DB) *ShelfRepo { return &ShelfRepo{db: db} }

// List returns all shelves ordered by code.
func (r *ShelfRepo) List() ([]domain.Shelf, error) {
	var out []domain.Shelf
	err := r.db.Select(&out, `
		SELECT id, name, code, item_count, created_at
		FROM shelves
		ORDER BY code
	`)
	return out, err
}

// Get returns one shelf. sql.ErrNoRows when absent.
func (r *ShelfRepo) Get(id int64) (domain.Shelf, error) {
	var s domain.Shelf
	err := r.db.Get(&s, `SELECT id, name, code, item_count, created_at FROM shelves WHERE id = ?`, id)
	return s, err
}

// CodeExists matches shelf codes case-insensitively.
func (r *ShelfRepo) CodeExists(code string) (bool, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM shelves WHERE LOWER(code) = LOWER(?)`, code); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Count returns the total number of shelves.
func (r *ShelfRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM shelves`)
	return n, err
}

// Insert creates a shelf and returns the stored row.
func (r *ShelfRepo) Insert(name, code string) (domain.Shelf, error) {
	res, err := r.db.Exec(`INSERT INTO shelves(name, code) VALUES(?, ?)`, name, code)
	if err != nil {
		return domain.Shelf{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Shelf{}, err
	}
	return r.Get(id)
}
