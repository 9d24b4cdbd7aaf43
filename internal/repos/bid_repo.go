package repos

import (
	"github.com/jmoiron/sqlx"

	"stockyard/internal/domain"
)

type BidRepo struct{ db *sqlx.DB }

func NewBidRepo(db *sqlx.DB) *BidRepo { return &BidRepo{db: db} }

func (r *BidRepo) ListForAuction(auctionID int64) ([]domain.Bid, error) {
	var out []domain.Bid
	err := r.db.Select(&out, `
		SELECT id, auction_id, bidder, amount, created_at
		FROM bids
		WHERE auction_id = ?
		ORDER BY datetime(created_at) DESC, id DESC
	`, auctionID)
	return out, err
}

func (r *BidRepo) Add(auctionID int64, bidder string, amount float64) error {
	_, err := r.db.Exec(`INSERT INTO bids(auction_id, bidder, amount) VALUES(?, ?, ?)`, auctionID, bidder, amount)
	return err
}

func (r *BidRepo) CountForAuction(auctionID int64) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM bids WHERE auction_id = ?`, auctionID)
	return n, err
}
