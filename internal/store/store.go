package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/medivisit/backend/internal/models"
)

var ErrNotFound = errors.New("record not found")

// Storage keys. The whole collection is re-serialized under its key after
// every mutation; there is no batching or write queue.
const (
	keyEmployees   = "employees"
	keyGroups      = "groups"
	keyVisits      = "visits"
	keyCurrentUser = "currentUser"
	widgetPrefix   = "dashboard_"
)

// Store owns the full in-memory state and persists it as whole-collection
// JSON values into a single key-value table. Single-writer: one mutex
// guards the state; concurrent processes sharing the file are unsupported
// (last writer wins). Mutations write the updated collection to storage
// first and commit it in memory only on success, so a failed write leaves
// the cached state matching what is on disk.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger

	mu        sync.RWMutex
	employees []models.Employee
	groups    []models.Group
	visits    []models.Visit
	session   *models.User
}

func Open(ctx context.Context, path string, logger zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db, logger: logger}
	if err := s.load(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// load reads the persisted collections. Malformed or absent state never
// propagates an error to the caller: the store logs the condition and
// falls back to the seed dataset.
func (s *Store) load(ctx context.Context) error {
	okEmployees, err := s.loadKey(ctx, keyEmployees, &s.employees)
	if err != nil {
		return err
	}
	okGroups, err := s.loadKey(ctx, keyGroups, &s.groups)
	if err != nil {
		return err
	}
	okVisits, err := s.loadKey(ctx, keyVisits, &s.visits)
	if err != nil {
		return err
	}
	if !okEmployees || !okGroups || !okVisits {
		s.logger.Warn().Msg("stored state missing or malformed, seeding default dataset")
		s.employees, s.groups, s.visits = seedDataset()
		if err := s.persistAll(ctx); err != nil {
			return err
		}
	}

	var u models.User
	if ok, err := s.loadKey(ctx, keyCurrentUser, &u); err != nil {
		return err
	} else if ok {
		s.session = &u
	}
	return nil
}

// loadKey returns (false, nil) when the key is absent or its JSON is
// malformed; only storage access itself is an error.
func (s *Store) loadKey(ctx context.Context, key string, dst any) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("malformed stored value, discarding")
		return false, nil
	}
	return true, nil
}

func (s *Store) saveKey(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(b))
	return err
}

func (s *Store) deleteKey(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}

func (s *Store) persistAll(ctx context.Context) error {
	if err := s.saveKey(ctx, keyEmployees, s.employees); err != nil {
		return err
	}
	if err := s.saveKey(ctx, keyGroups, s.groups); err != nil {
		return err
	}
	return s.saveKey(ctx, keyVisits, s.visits)
}

// Visits returns a copy of the visit collection in stored order.
func (s *Store) Visits() []models.Visit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Visit, len(s.visits))
	copy(out, s.visits)
	return out
}

func (s *Store) VisitByID(id string) (models.Visit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.visits {
		if v.ID == id {
			return v, true
		}
	}
	return models.Visit{}, false
}

func (s *Store) AddVisit(ctx context.Context, v models.Visit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.Visit, len(s.visits), len(s.visits)+1)
	copy(next, s.visits)
	next = append(next, v)
	if err := s.saveKey(ctx, keyVisits, next); err != nil {
		return err
	}
	s.visits = next
	return nil
}

func (s *Store) UpdateVisit(ctx context.Context, v models.Visit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.visits {
		if s.visits[i].ID == v.ID {
			next := make([]models.Visit, len(s.visits))
			copy(next, s.visits)
			next[i] = v
			if err := s.saveKey(ctx, keyVisits, next); err != nil {
				return err
			}
			s.visits = next
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) DeleteVisit(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.visits {
		if s.visits[i].ID == id {
			next := make([]models.Visit, 0, len(s.visits)-1)
			next = append(next, s.visits[:i]...)
			next = append(next, s.visits[i+1:]...)
			if err := s.saveKey(ctx, keyVisits, next); err != nil {
				return err
			}
			s.visits = next
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) Employees() []models.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Employee, len(s.employees))
	copy(out, s.employees)
	return out
}

func (s *Store) EmployeeByID(id string) (models.Employee, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.employees {
		if e.ID == id {
			return e, true
		}
	}
	return models.Employee{}, false
}

func (s *Store) AddEmployee(ctx context.Context, e models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.Employee, len(s.employees), len(s.employees)+1)
	copy(next, s.employees)
	next = append(next, e)
	if err := s.saveKey(ctx, keyEmployees, next); err != nil {
		return err
	}
	s.employees = next
	return nil
}

func (s *Store) UpdateEmployee(ctx context.Context, e models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.employees {
		if s.employees[i].ID == e.ID {
			next := make([]models.Employee, len(s.employees))
			copy(next, s.employees)
			next[i] = e
			if err := s.saveKey(ctx, keyEmployees, next); err != nil {
				return err
			}
			s.employees = next
			return nil
		}
	}
	return ErrNotFound
}

// DeleteEmployee removes the employee record only. Their visits remain,
// carrying the now-dangling employee id; aggregation skips them.
func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.employees {
		if s.employees[i].ID == id {
			next := make([]models.Employee, 0, len(s.employees)-1)
			next = append(next, s.employees[:i]...)
			next = append(next, s.employees[i+1:]...)
			if err := s.saveKey(ctx, keyEmployees, next); err != nil {
				return err
			}
			s.employees = next
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) Groups() []models.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Group, len(s.groups))
	copy(out, s.groups)
	return out
}

func (s *Store) GroupByID(id string) (models.Group, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.groups {
		if g.ID == id {
			return g, true
		}
	}
	return models.Group{}, false
}

func (s *Store) AddGroup(ctx context.Context, g models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]models.Group, len(s.groups), len(s.groups)+1)
	copy(next, s.groups)
	next = append(next, g)
	if err := s.saveKey(ctx, keyGroups, next); err != nil {
		return err
	}
	s.groups = next
	return nil
}

func (s *Store) UpdateGroup(ctx context.Context, g models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.groups {
		if s.groups[i].ID == g.ID {
			next := make([]models.Group, len(s.groups))
			copy(next, s.groups)
			next[i] = g
			if err := s.saveKey(ctx, keyGroups, next); err != nil {
				return err
			}
			s.groups = next
			return nil
		}
	}
	return ErrNotFound
}

// DeleteGroup removes the group and clears the group reference on its
// member employees so no stale ids survive the delete. Each collection is
// committed in memory only after its own write succeeds.
func (s *Store) DeleteGroup(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.groups {
		if s.groups[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	nextGroups := make([]models.Group, 0, len(s.groups)-1)
	nextGroups = append(nextGroups, s.groups[:idx]...)
	nextGroups = append(nextGroups, s.groups[idx+1:]...)
	if err := s.saveKey(ctx, keyGroups, nextGroups); err != nil {
		return err
	}
	s.groups = nextGroups

	cleared := false
	nextEmployees := make([]models.Employee, len(s.employees))
	copy(nextEmployees, s.employees)
	for i := range nextEmployees {
		if nextEmployees[i].GroupID == id {
			nextEmployees[i].GroupID = ""
			cleared = true
		}
	}
	if !cleared {
		return nil
	}
	if err := s.saveKey(ctx, keyEmployees, nextEmployees); err != nil {
		return err
	}
	s.employees = nextEmployees
	return nil
}

func (s *Store) Session() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	u := *s.session
	return &u
}

func (s *Store) SetSession(ctx context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.saveKey(ctx, keyCurrentUser, u); err != nil {
		return err
	}
	s.session = &u
	return nil
}

func (s *Store) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.deleteKey(ctx, keyCurrentUser); err != nil {
		return err
	}
	s.session = nil
	return nil
}

// Widgets loads the dashboard layout stored for a user. Absent or
// malformed layouts yield nil, never an error surfaced to the caller.
func (s *Store) Widgets(ctx context.Context, userID string) ([]models.WidgetConfig, error) {
	var widgets []models.WidgetConfig
	if _, err := s.loadKey(ctx, widgetPrefix+userID, &widgets); err != nil {
		return nil, err
	}
	return widgets, nil
}

func (s *Store) SaveWidgets(ctx context.Context, userID string, widgets []models.WidgetConfig) error {
	return s.saveKey(ctx, widgetPrefix+userID, widgets)
}
