package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/makaka119911-oss/Tatiana-Server/internal/models"
)

// MemoryStore is the ephemeral fallback used when the database is
// unreachable or when the memory driver is selected outright. Records live
// in process memory and vanish on restart. It honors the same contract as
// PostgresStore, including archive ordering and the not-found sentinel.
type MemoryStore struct {
	mu      sync.RWMutex
	regs    []*models.Registration // insertion order
	byID    map[string]*models.Registration
	results map[string][]*models.TestResult
}

var _ Store = (*MemoryStore)(nil)

func NewMemory() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[string]*models.Registration),
		results: make(map[string][]*models.TestResult),
	}
}

func (s *MemoryStore) SaveRegistration(ctx context.Context, reg *models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if reg.CreatedAt.IsZero() {
		reg.CreatedAt = time.Now().UTC()
	}
	if _, exists := s.byID[reg.RegistrationID]; exists {
		return fmt.Errorf("duplicate registration id %s", reg.RegistrationID)
	}

	stored := *reg // keep callers from mutating stored state later
	s.byID[stored.RegistrationID] = &stored
	s.regs = append(s.regs, &stored)
	return nil
}

func (s *MemoryStore) GetRegistration(ctx context.Context, registrationID string) (*models.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reg, ok := s.byID[registrationID]
	if !ok {
		return nil, ErrRegistrationNotFound
	}
	out := *reg
	return &out, nil
}

func (s *MemoryStore) SaveTestResult(ctx context.Context, res *models.TestResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now().UTC()
	}
	stored := *res
	s.results[stored.RegistrationID] = append(s.results[stored.RegistrationID], &stored)
	return nil
}

func (s *MemoryStore) ListArchive(ctx context.Context) ([]models.ArchiveRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ordered := make([]*models.Registration, len(s.regs))
	copy(ordered, s.regs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	records := make([]models.ArchiveRecord, 0, len(ordered))
	for _, reg := range ordered {
		results := s.results[reg.RegistrationID]
		if len(results) == 0 {
			records = append(records, models.ArchiveRecord{
				FIO:      reg.FullName(),
				Age:      reg.Age,
				Phone:    reg.Phone,
				Telegram: reg.Telegram,
				Date:     reg.CreatedAt,
			})
			continue
		}

		// Newest test first, matching the relational ordering.
		byTime := make([]*models.TestResult, len(results))
		copy(byTime, results)
		sort.SliceStable(byTime, func(i, j int) bool {
			return byTime[i].CreatedAt.After(byTime[j].CreatedAt)
		})
		for _, res := range byTime {
			level := res.Level
			score := res.Score
			records = append(records, models.ArchiveRecord{
				FIO:      reg.FullName(),
				Age:      reg.Age,
				Phone:    reg.Phone,
				Telegram: reg.Telegram,
				Level:    &level,
				Score:    &score,
				Date:     res.CreatedAt,
			})
		}
	}
	return records, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) Kind() string { return "memory" }
