package repos

import (
	"github.com/jmoiron/sqlx"

	"stockyard/internal/domain"
)

type WatchlistRepo struct{ db *sqlx.DB }

func NewWatchlistRepo(db *sqlx.DB) *WatchlistRepo { return &WatchlistRepo{db: db} }

func (r *WatchlistRepo) ListForAuction(auctionID int64) ([]domain.WatchlistEntry, error) {
	var out []domain.WatchlistEntry
	err := r.db.Select(&out, `
		SELECT id, auction_id, session_id, created_at
		FROM watchlist
		WHERE auction_id = ?
		ORDER BY id
	`, auctionID)
	return out, err
}

func (r *WatchlistRepo) Add(auctionID int64, sessionID string) error {
	_, err := r.db.Exec(`INSERT INTO watchlist(auction_id, session_id) VALUES(?, ?)`, auctionID, sessionID)
	return err
}

func (r *WatchlistRepo) CountForAuction(auctionID int64) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM watchlist WHERE auction_id = ?`, auctionID)
	return n, err
}
