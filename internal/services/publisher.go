package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"stockyard/internal/domain"
)

// Listing is what a sale channel hands back for a published auction.
type Listing struct {
	ID      string
	URL     string
	Payload string // channel submission snapshot, JSON
}

// ChannelPublisher creates a listing on an external sale channel. The
// default implementation fabricates one; a real marketplace client can be
// swapped in without touching the lifecycle state machine.
type ChannelPublisher interface {
	Publish(destination string, a domain.Auction, at time.Time) (Listing, error)
}

var listingURLTemplates = map[string]string{
	domain.DestEbay:   "https://www.ebay.com/itm/%s",
	domain.DestAmazon: "https://www.amazon.com/dp/%s",
}

// mockPublisher issues deterministic listings: a timestamp-based id and a
// fixed per-destination URL template. No network calls.
type mockPublisher struct{}

func NewMockPublisher() ChannelPublisher { return mockPublisher{} }

func (mockPublisher) Publish(destination string, a domain.Auction, at time.Time) (Listing, error) {
	tmpl, ok := listingURLTemplates[destination]
	if !ok {
		return Listing{}, &ValidationError{Msg: fmt.Sprintf("no listing channel for destination %q", destination)}
	}

	listingID := fmt.Sprintf("%s-%d", strings.ToUpper(destination), at.UnixMilli())

	payload, err := json.Marshal(struct {
		Platform    string  `json:"platform"`
		SubmittedAt string  `json:"submittedAt"`
		Title       string  `json:"title"`
		Price       float64 `json:"price"`
	}{
		Platform:    destination,
		SubmittedAt: at.Format(time.RFC3339),
		Title:       a.Title,
		Price:       a.RetailPrice,
	})
	if err != nil {
		return Listing{}, fmt.Errorf("encode listing payload: %w", err)
	}

	return Listing{
		ID:      listingID,
		URL:     fmt.Sprintf(tmpl, listingID),
		Payload: string(payload),
	}, nil
}
