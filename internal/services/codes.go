package services

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"stockyard/internal/repos"
)

const internalCodePrefix = "OA"

// CodeService derives the next unique internal auction code. Allocation is
// scan-then-derive with no reservation, so NextInternalCode holds a mutex
// for the scan and callers inserting the code must retry on a UNIQUE
// violation (see CreateAuction).
type CodeService struct {
	Auctions *repos.AuctionRepo

	mu sync.Mutex
}

func NewCodeService(auctions *repos.AuctionRepo) *CodeService {
	return &CodeService{Auctions: auctions}
}

// NextInternalCode returns the next code in the OA family: the maximum
// parsable suffix across all existing codes, plus one, zero-padded to nine
// digits. The first code ever issued is OA000000001.
func (s *CodeService) NextInternalCode() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deriveNext()
}

// PeekInternalCode computes the next code without any serialization; it is
// a read-only preview and reserves nothing.
func (s *CodeService) PeekInternalCode() (string, error) {
	return s.deriveNext()
}

func (s *CodeService) deriveNext() (string, error) {
	codes, err := s.Auctions.InternalCodes()
	if err != nil {
		return "", fmt.Errorf("scan internal codes: %w", err)
	}

	max := int64(0)
	for _, code := range codes {
		n, err := strconv.ParseInt(strings.TrimPrefix(code, internalCodePrefix), 10, 64)
		if err != nil {
			continue // malformed codes don't participate
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%09d", internalCodePrefix, max+1), nil
}

// isUniqueViolation matches sqlite constraint failures surfaced by the
// modernc driver.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
