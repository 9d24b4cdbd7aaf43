package repos

import (
	"github.com/jmoiron/sqlx"

	"stockyard/internal/domain"
)

type BatchRepo struct{ db *sqlx.DB }

func NewBatchRepo(db *sqlx.DB) *BatchRepo { return &BatchRepo{db: db} }

func (r *BatchRepo) Get(id string) (domain.Batch, error) {
	var b domain.Batch
	err := r.db.Get(&b, `SELECT id, label, created_at FROM batches WHERE id = ?`, id)
	return b, err
}

func (r *BatchRepo) Insert(id, label string) error {
	_, err := r.db.Exec(`INSERT INTO batches(id, label) VALUES(?, ?)`, id, label)
	return err
}
