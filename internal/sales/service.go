package sales

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/VictoriaMetrics/metrics"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// Service owns the sales collection and keeps its storage slot in sync.
// Every call reads the slot, so separate Services over the same Storage
// observe each other's writes.
type Service struct {
	mu      sync.Mutex
	storage Storage
	slot    string
	logger  *zap.Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithSlot overrides the storage key (DefaultSlot otherwise).
func WithSlot(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.slot = key
		}
	}
}

// NewService creates a new Service.
func NewService(storage Storage, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		storage: storage,
		slot:    DefaultSlot,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the persisted collection, seeding the slot when it is empty.
// Unreadable content falls back to the seed without reporting an error.
func (s *Service) Load() ([]Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sales, err := s.load()
	observe("load", err)
	return sales, err
}

// Get returns the sale with the given id.
func (s *Service) Get(id string) (Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sales, err := s.load()
	if err != nil {
		observe("get", err)
		return Sale{}, err
	}
	i := indexOf(sales, id)
	if i < 0 {
		observe("get", ErrNotFound)
		return Sale{}, ErrNotFound
	}
	observe("get", nil)
	return sales[i], nil
}

// Summary returns quantity and total value of the collection.
func (s *Service) Summary() (Summary, error) {
	sales, err := s.Load()
	if err != nil {
		return Summary{}, err
	}
	return Summarize(sales), nil
}

// CreateSale validates the form input and appends a new sale.
func (s *Service) CreateSale(name, rawValue string) ([]Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.create(name, rawValue)
	observe("create", err)
	return result, err
}

func (s *Service) create(name, rawValue string) ([]Sale, error) {
	name, value, err := validate(name, rawValue)
	if err != nil {
		s.logger.Warn("rejected sale input", zap.String("name", name), zap.String("value", rawValue), zap.Error(err))
		return nil, err
	}

	sales, err := s.load()
	if err != nil {
		return nil, err
	}

	sale := Sale{
		ID:    NextID(sales),
		Name:  name,
		Value: value,
	}
	sales = append(sales, sale)

	if err := s.persist(sales); err != nil {
		s.logger.Error("failed to save sale", zap.String("sale_id", sale.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("sale created", zap.String("sale_id", sale.ID), zap.Any("sale", sale), zap.Int("total", len(sales)))
	return sales, nil
}

// UpdateSale replaces name and value of an existing sale, keeping its id and
// position.
func (s *Service) UpdateSale(id, name, rawValue string) ([]Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.update(id, name, rawValue)
	observe("update", err)
	return result, err
}

func (s *Service) update(id, name, rawValue string) ([]Sale, error) {
	name, value, err := validate(name, rawValue)
	if err != nil {
		s.logger.Warn("rejected sale input", zap.String("sale_id", id), zap.Error(err))
		return nil, err
	}

	sales, err := s.load()
	if err != nil {
		return nil, err
	}

	i := indexOf(sales, id)
	if i < 0 {
		return nil, ErrNotFound
	}
	sales[i].Name = name
	sales[i].Value = value

	if err := s.persist(sales); err != nil {
		s.logger.Error("failed to update sale", zap.String("sale_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("sale updated", zap.String("sale_id", id), zap.Any("sale", sales[i]))
	return sales, nil
}

// DeleteSale removes the sale with the given id. Unknown ids are a no-op.
// The collection is persisted even when it ends up empty.
func (s *Service) DeleteSale(id string) ([]Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.delete(id)
	observe("delete", err)
	return result, err
}

func (s *Service) delete(id string) ([]Sale, error) {
	sales, err := s.load()
	if err != nil {
		return nil, err
	}

	kept := make([]Sale, 0, len(sales))
	for _, sale := range sales {
		if sale.ID != id {
			kept = append(kept, sale)
		}
	}

	if err := s.persist(kept); err != nil {
		s.logger.Error("failed to delete sale", zap.String("sale_id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("sale deleted", zap.String("sale_id", id), zap.Bool("removed", len(kept) < len(sales)))
	return kept, nil
}

// Reset overwrites the slot with the seed collection.
func (s *Service) Reset() ([]Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seed := SeedSales()
	err := s.persist(seed)
	observe("reset", err)
	if err != nil {
		return nil, err
	}
	s.logger.Info("sales reset to seed", zap.Int("total", len(seed)))
	return seed, nil
}

func (s *Service) load() ([]Sale, error) {
	raw, ok, err := s.storage.Get(s.slot)
	if err != nil {
		s.logger.Error("failed to read sales slot", zap.String("slot", s.slot), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	if !ok {
		seed := SeedSales()
		if err := s.persist(seed); err != nil {
			return nil, err
		}
		s.logger.Info("sales slot seeded", zap.String("slot", s.slot), zap.Int("total", len(seed)))
		return seed, nil
	}

	sales, err := decodeSales(raw)
	if err != nil {
		s.logger.Warn("unreadable sales slot, using seed data", zap.String("slot", s.slot), zap.Error(err))
		return SeedSales(), nil
	}
	return sales, nil
}

func (s *Service) persist(sales []Sale) error {
	if sales == nil {
		sales = []Sale{}
	}
	data, err := json.Marshal(sales)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if err := s.storage.Set(s.slot, string(data)); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// persistedSale mirrors Sale with pointer fields so missing keys are detected.
type persistedSale struct {
	ID    *string  `json:"id"`
	Name  *string  `json:"nome"`
	Value *float64 `json:"valor"`
}

func decodeSales(raw string) ([]Sale, error) {
	var records []*persistedSale
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, err
	}
	if records == nil {
		return nil, fmt.Errorf("slot holds no collection")
	}

	sales := make([]Sale, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		if r == nil || r.ID == nil || r.Name == nil || r.Value == nil {
			return nil, fmt.Errorf("record %d is missing fields", i)
		}
		if _, dup := seen[*r.ID]; dup {
			return nil, fmt.Errorf("duplicate id %q", *r.ID)
		}
		seen[*r.ID] = struct{}{}
		sales = append(sales, Sale{ID: *r.ID, Name: *r.Name, Value: *r.Value})
	}
	return sales, nil
}

// validate trims and normalizes the form input.
func validate(name, rawValue string) (string, float64, error) {
	name = norm.NFC.String(strings.TrimSpace(name))
	rawValue = strings.TrimSpace(rawValue)

	if name == "" {
		return name, 0, &ValidationError{Field: "nome", Reason: "must not be empty"}
	}
	if rawValue == "" {
		return name, 0, &ValidationError{Field: "valor", Reason: "must not be empty"}
	}

	d, err := decimal.NewFromString(rawValue)
	if err != nil {
		return name, 0, &ValidationError{Field: "valor", Reason: fmt.Sprintf("%q is not a number", rawValue)}
	}
	value := d.InexactFloat64()
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return name, 0, &ValidationError{Field: "valor", Reason: fmt.Sprintf("%q is out of range", rawValue)}
	}
	return name, value, nil
}

func indexOf(sales []Sale, id string) int {
	for i := range sales {
		if sales[i].ID == id {
			return i
		}
	}
	return -1
}

func observe(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.GetOrCreateCounter(fmt.Sprintf(`sales_operations_total{op=%q,outcome=%q}`, op, outcome)).Inc()
}
