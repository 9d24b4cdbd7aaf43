package repos

import (
	"github.com/jmoiron/sqlx"

	"stockyard/internal/domain"
)

type TagRepo struct{ db *sqlx.DB }

func NewTagRepo(db *sqlx.DB) *TagRepo { return &TagRepo{db: db} }

func (r *TagRepo) ListAll() ([]domain.Tag, error) {
	var out []domain.Tag
	err := r.db.Select(&out, `SELECT id, auction_id, name, created_at FROM tags ORDER BY id`)
	return out, err
}

func (r *TagRepo) Add(auctionID int64, name string) error {
	_, err := r.db.Exec(`INSERT INTO tags(auction_id, name) VALUES(?, ?)`, auctionID, name)
	return err
}

func (r *TagRepo) CountForAuction(auctionID int64) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM tags WHERE auction_id = ?`, auctionID)
	return n, err
}
