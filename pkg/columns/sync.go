package columns

import "sync"

// SyncRegistry guards a Registry with a read/write lock held for the whole of
// each operation, so readers never see a Hide half way through renumbering.
type SyncRegistry struct {
	mu  sync.RWMutex
	reg *Registry
}

// NewSync returns an unconfigured registry that is safe for concurrent use.
func NewSync(opts ...Option) *SyncRegistry {
	return &SyncRegistry{reg: New(opts...)}
}

func (s *SyncRegistry) Configure(cols ...Column) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Configure(cols...)
}

func (s *SyncRegistry) Hide(c Column) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Hide(c)
}

func (s *SyncRegistry) Configured() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reg.Configured()
}

func (s *SyncRegistry) IsVisible(c Column) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reg.IsVisible(c)
}

func (s *SyncRegistry) Position(c Column) (int, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reg.Position(c)
}

func (s *SyncRegistry) VisibleColumnsInOrder() ([]Column, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reg.VisibleColumnsInOrder()
}

// Layout is the read/write surface shared by Registry and SyncRegistry.
type Layout interface {
	Configure(cols ...Column) error
	Hide(c Column) error
	Configured() bool
	IsVisible(c Column) (bool, error)
	Position(c Column) (int, bool, error)
	VisibleColumnsInOrder() ([]Column, error)
}

var (
	_ Layout = (*Registry)(nil)
	_ Layout = (*SyncRegistry)(nil)
)
