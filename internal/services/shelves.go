package services

import (
	"fmt"
	"sync"

	"stockyard/internal/domain"
	"stockyard/internal/repos"
	"stockyard/internal/validate"
)

const (
	canonicalShelfCount = 32
	adHocShelfMax       = 99 // OAS codes are two digits; past this the family is full
)

// ShelfService provisions canonical storage shelves and creates ad-hoc ones.
type ShelfService struct {
	Shelves *repos.ShelfRepo

	mu sync.Mutex // serializes OAS code allocation
}

func NewShelfService(shelves *repos.ShelfRepo) *ShelfService {
	return &ShelfService{Shelves: shelves}
}

// EnsureCanonicalShelves seeds BIN01..BIN32 and THG01..THG32. Idempotent:
// codes already present (case-insensitively) are skipped.
func (s *ShelfService) EnsureCanonicalShelves() error {
	for i := 1; i <= canonicalShelfCount; i++ {
		pairs := []struct{ code, name string }{
			{fmt.Sprintf("BIN%02d", i), fmt.Sprintf("Bins Shelf %d", i)},
			{fmt.Sprintf("THG%02d", i), fmt.Sprintf("Things Shelf %d", i)},
		}
		for _, p := range pairs {
			exists, err := s.Shelves.CodeExists(p.code)
			if err != nil {
				return fmt.Errorf("check shelf code %s: %w", p.code, err)
			}
			if exists {
				continue
			}
			if _, err := s.Shelves.Insert(p.name, p.code); err != nil {
				if isUniqueViolation(err) {
					continue // provisioned concurrently
				}
				return fmt.Errorf("insert shelf %s: %w", p.code, err)
			}
		}
	}
	return nil
}

// List ensures the canonical shelves exist, then returns all shelves.
func (s *ShelfService) List() ([]domain.Shelf, error) {
	if err := s.EnsureCanonicalShelves(); err != nil {
		return nil, err
	}
	return s.Shelves.List()
}

// Create adds a shelf. An empty code allocates the next free OAS code.
func (s *ShelfService) Create(name, code string) (domain.Shelf, error) {
	name, ok := validate.ShelfName(name)
	if !ok {
		return domain.Shelf{}, &ValidationError{Msg: "shelf name is required"}
	}

	if code != "" {
		code, ok = validate.ShelfCode(code)
		if !ok {
			return domain.Shelf{}, &ValidationError{Msg: "invalid shelf code"}
		}
		exists, err := s.Shelves.CodeExists(code)
		if err != nil {
			return domain.Shelf{}, fmt.Errorf("check shelf code: %w", err)
		}
		if exists {
			return domain.Shelf{}, &ConflictError{Msg: fmt.Sprintf("shelf code %s already exists", code)}
		}
		shelf, err := s.Shelves.Insert(name, code)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.Shelf{}, &ConflictError{Msg: fmt.Sprintf("shelf code %s already exists", code)}
			}
			return domain.Shelf{}, fmt.Errorf("insert shelf: %w", err)
		}
		return shelf, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code, err := s.nextAdHocCode()
	if err != nil {
		return domain.Shelf{}, err
	}
	shelf, err := s.Shelves.Insert(name, code)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Shelf{}, &ConflictError{Msg: fmt.Sprintf("shelf code %s already exists", code)}
		}
		return domain.Shelf{}, fmt.Errorf("insert shelf: %w", err)
	}
	return shelf, nil
}

// nextAdHocCode starts at shelf count + 1 and walks forward until a free
// OAS code is found. Caller must hold s.mu.
func (s *ShelfService) nextAdHocCode() (string, error) {
	count, err := s.Shelves.Count()
	if err != nil {
		return "", fmt.Errorf("count shelves: %w", err)
	}
	for candidate := count + 1; candidate <= adHocShelfMax; candidate++ {
		code := fmt.Sprintf("OAS%02d", candidate)
		exists, err := s.Shelves.CodeExists(code)
		if err != nil {
			return "", fmt.Errorf("check shelf code %s: %w", code, err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", &ConflictError{Msg: "shelf code space exhausted"}
}
