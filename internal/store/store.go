package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sanchay/planner/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when an investment or goal id does not exist
	ErrNotFound = errors.New("not found")
	// ErrNoUser is returned by mutations that need a user profile first
	ErrNoUser = errors.New("no user profile")
	// ErrDuplicateID is returned when adding a record whose id is taken
	ErrDuplicateID = errors.New("duplicate id")
)

// Store is the single owner of the user's profile, portfolio and goals.
// Every mutation is applied to a copy, persisted, and only then published,
// so a failed save leaves the previous state in place.
type Store struct {
	mu        sync.RWMutex
	state     domain.UserState
	persister Persister
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the mutation logger. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l == nil {
			l = zap.NewNop()
		}
		s.logger = l
	}
}

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides how record ids are generated
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// New creates an empty store backed by p. A nil persister keeps state in memory.
func New(p Persister, opts ...Option) *Store {
	if p == nil {
		p = NewMemoryPersister()
	}
	s := &Store{
		persister: p,
		logger:    zap.NewNop(),
		now:       time.Now,
		newID:     uuid.NewString,
		state:     emptyState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a store and loads any previously persisted state
func Open(ctx context.Context, p Persister, opts ...Option) (*Store, error) {
	s := New(p, opts...)
	state, err := s.persister.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	if state != nil {
		if state.Goals == nil {
			state.Goals = []domain.Goal{}
		}
		if state.Portfolio.Investments == nil {
			state.Portfolio.Investments = []domain.Investment{}
		}
		s.state = *state
		s.logger.Debug("state loaded",
			zap.Int("investments", len(state.Portfolio.Investments)),
			zap.Int("goals", len(state.Goals)))
	}
	return s, nil
}

func emptyState() domain.UserState {
	return domain.UserState{
		Portfolio: domain.Portfolio{Investments: []domain.Investment{}},
		Goals:     []domain.Goal{},
	}
}

// mutate runs fn against a copy of the state, saves the copy and swaps it in
func (s *Store) mutate(ctx context.Context, op string, fn func(st *domain.UserState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := cloneState(s.state)
	if err := fn(&next); err != nil {
		s.logger.Debug("mutation rejected", zap.String("op", op), zap.Error(err))
		return err
	}
	if err := s.persister.Save(ctx, &next); err != nil {
		s.logger.Error("failed to persist state", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	s.state = next
	s.logger.Info("state updated", zap.String("op", op))
	return nil
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() domain.UserState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneState(s.state)
}

// User returns the current profile, or ErrNoUser
func (s *Store) User() (domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return domain.UserProfile{}, ErrNoUser
	}
	return *s.state.User, nil
}

// SetUser replaces the profile, assigning an id when it has none
func (s *Store) SetUser(ctx context.Context, user domain.UserProfile) (domain.UserProfile, error) {
	err := s.mutate(ctx, "set user", func(st *domain.UserState) error {
		now := s.now()
		if user.ID == "" {
			user.ID = s.newID()
		}
		if user.Language == "" {
			user.Language = "bn"
		}
		if user.CreatedAt.IsZero() {
			user.CreatedAt = now
		}
		user.UpdatedAt = now
		st.User = &user
		return nil
	})
	return user, err
}

// UpdateUser applies the non-nil fields of upd to the profile
func (s *Store) UpdateUser(ctx context.Context, upd domain.UserUpdate) (domain.UserProfile, error) {
	var out domain.UserProfile
	err := s.mutate(ctx, "update user", func(st *domain.UserState) error {
		if st.User == nil {
			return ErrNoUser
		}
		u := st.User
		if upd.Name != nil {
			u.Name = *upd.Name
		}
		if upd.Email != nil {
			u.Email = *upd.Email
		}
		if upd.Phone != nil {
			u.Phone = *upd.Phone
		}
		if upd.Language != nil {
			u.Language = *upd.Language
		}
		u.UpdatedAt = s.now()
		out = *u
		return nil
	})
	return out, err
}

// UpdateFinancialProfile stores the household cash flow and derives the
// user's monthly income and savings (income minus expenses) from it.
func (s *Store) UpdateFinancialProfile(ctx context.Context, fp domain.FinancialProfile) (domain.FinancialProfile, error) {
	err := s.mutate(ctx, "update financial profile", func(st *domain.UserState) error {
		if st.User == nil {
			return ErrNoUser
		}
		if fp.MonthlyIncome.IsNegative() || fp.MonthlyExpenses.IsNegative() {
			return fmt.Errorf("income and expenses cannot be negative")
		}
		if fp.Dependents < 0 {
			return fmt.Errorf("dependents cannot be negative")
		}
		now := s.now()
		fp.UpdatedAt = now
		st.FinancialProfile = &fp
		st.User.MonthlyIncome = fp.MonthlyIncome
		st.User.MonthlySavings = fp.MonthlyIncome.Sub(fp.MonthlyExpenses)
		st.User.UpdatedAt = now
		return nil
	})
	return fp, err
}

// SetRiskAssessment records the questionnaire outcome and copies the
// tolerance onto the user profile when one exists.
func (s *Store) SetRiskAssessment(ctx context.Context, ra domain.RiskAssessment) error {
	return s.mutate(ctx, "set risk assessment", func(st *domain.UserState) error {
		switch ra.Tolerance {
		case domain.ToleranceConservative, domain.ToleranceModerate, domain.ToleranceAggressive:
		default:
			return fmt.Errorf("unknown risk tolerance %q", ra.Tolerance)
		}
		if ra.AssessedAt.IsZero() {
			ra.AssessedAt = s.now()
		}
		st.RiskAssessment = &ra
		if st.User != nil {
			st.User.RiskTolerance = ra.Tolerance
			st.User.UpdatedAt = s.now()
		}
		return nil
	})
}

// Investments returns a copy of the held investments
func (s *Store) Investments() []domain.Investment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Investment{}, s.state.Portfolio.Investments...)
}

// Investment returns one investment by id
func (s *Store) Investment(id string) (domain.Investment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOfInvestment(s.state.Portfolio.Investments, id)
	if i < 0 {
		return domain.Investment{}, fmt.Errorf("investment %q: %w", id, ErrNotFound)
	}
	return s.state.Portfolio.Investments[i], nil
}

// Portfolio returns the investments with their recomputed totals
func (s *Store) Portfolio() domain.Portfolio {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneState(s.state).Portfolio
}

// AddInvestment appends inv to the portfolio. A missing id is generated,
// a zero current value defaults to the amount and status defaults to active.
func (s *Store) AddInvestment(ctx context.Context, inv domain.Investment) (domain.Investment, error) {
	err := s.mutate(ctx, "add investment", func(st *domain.UserState) error {
		if err := validateInvestment(inv); err != nil {
			return err
		}
		if inv.ID == "" {
			inv.ID = s.newID()
		}
		if indexOfInvestment(st.Portfolio.Investments, inv.ID) >= 0 {
			return fmt.Errorf("investment %q: %w", inv.ID, ErrDuplicateID)
		}
		now := s.now()
		if inv.CurrentValue.IsZero() {
			inv.CurrentValue = inv.Amount
		}
		if inv.Status == "" {
			inv.Status = domain.StatusActive
		}
		if inv.StartDate.IsZero() {
			inv.StartDate = now
		}
		inv.CreatedAt = now
		inv.UpdatedAt = now
		st.Portfolio.Investments = append(st.Portfolio.Investments, inv)
		recomputeTotals(&st.Portfolio, now)
		return nil
	})
	return inv, err
}

// UpdateInvestment applies the non-nil fields of upd to investment id
func (s *Store) UpdateInvestment(ctx context.Context, id string, upd domain.InvestmentUpdate) (domain.Investment, error) {
	var out domain.Investment
	err := s.mutate(ctx, "update investment", func(st *domain.UserState) error {
		i := indexOfInvestment(st.Portfolio.Investments, id)
		if i < 0 {
			return fmt.Errorf("investment %q: %w", id, ErrNotFound)
		}
		inv := st.Portfolio.Investments[i]
		if upd.Name != nil {
			inv.Name = *upd.Name
		}
		if upd.Amount != nil {
			inv.Amount = *upd.Amount
		}
		if upd.CurrentValue != nil {
			inv.CurrentValue = *upd.CurrentValue
		}
		if upd.ExpectedReturnPercent != nil {
			inv.ExpectedReturnPercent = *upd.ExpectedReturnPercent
		}
		if upd.MonthlyContribution != nil {
			inv.MonthlyContribution = *upd.MonthlyContribution
		}
		if upd.Institution != nil {
			inv.Institution = *upd.Institution
		}
		if upd.MaturityDate != nil {
			inv.MaturityDate = *upd.MaturityDate
		}
		if upd.Status != nil {
			inv.Status = *upd.Status
		}
		if upd.Notes != nil {
			inv.Notes = *upd.Notes
		}
		if err := validateInvestment(inv); err != nil {
			return err
		}
		now := s.now()
		inv.UpdatedAt = now
		st.Portfolio.Investments[i] = inv
		recomputeTotals(&st.Portfolio, now)
		out = inv
		return nil
	})
	return out, err
}

// DeleteInvestment removes investment id from the portfolio
func (s *Store) DeleteInvestment(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete investment", func(st *domain.UserState) error {
		i := indexOfInvestment(st.Portfolio.Investments, id)
		if i < 0 {
			return fmt.Errorf("investment %q: %w", id, ErrNotFound)
		}
		st.Portfolio.Investments = append(st.Portfolio.Investments[:i], st.Portfolio.Investments[i+1:]...)
		recomputeTotals(&st.Portfolio, s.now())
		return nil
	})
}

// Goals returns a copy of the savings goals
func (s *Store) Goals() []domain.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Goal{}, s.state.Goals...)
}

// AddGoal creates an active goal with nothing saved yet. Requires a user.
func (s *Store) AddGoal(ctx context.Context, g domain.Goal) (domain.Goal, error) {
	err := s.mutate(ctx, "add goal", func(st *domain.UserState) error {
		if st.User == nil {
			return ErrNoUser
		}
		if g.Title == "" {
			return fmt.Errorf("goal title is required")
		}
		if !g.TargetAmount.IsPositive() {
			return fmt.Errorf("goal target must be positive")
		}
		if g.ID == "" {
			g.ID = s.newID()
		}
		for _, existing := range st.Goals {
			if existing.ID == g.ID {
				return fmt.Errorf("goal %q: %w", g.ID, ErrDuplicateID)
			}
		}
		g.CurrentAmount = decimal.Zero
		g.Active = true
		g.CreatedAt = s.now()
		st.Goals = append(st.Goals, g)
		return nil
	})
	return g, err
}

// UpdateGoal applies the non-nil fields of upd to goal id
func (s *Store) UpdateGoal(ctx context.Context, id string, upd domain.GoalUpdate) (domain.Goal, error) {
	var out domain.Goal
	err := s.mutate(ctx, "update goal", func(st *domain.UserState) error {
		for i := range st.Goals {
			if st.Goals[i].ID != id {
				continue
			}
			g := &st.Goals[i]
			if upd.Title != nil {
				if *upd.Title == "" {
					return fmt.Errorf("goal title is required")
				}
				g.Title = *upd.Title
			}
			if upd.TargetAmount != nil {
				if !upd.TargetAmount.IsPositive() {
					return fmt.Errorf("goal target must be positive")
				}
				g.TargetAmount = *upd.TargetAmount
			}
			if upd.CurrentAmount != nil {
				if upd.CurrentAmount.IsNegative() {
					return fmt.Errorf("goal current amount cannot be negative")
				}
				g.CurrentAmount = *upd.CurrentAmount
			}
			if upd.TargetDate != nil {
				g.TargetDate = *upd.TargetDate
			}
			if upd.Active != nil {
				g.Active = *upd.Active
			}
			out = *g
			return nil
		}
		return fmt.Errorf("goal %q: %w", id, ErrNotFound)
	})
	return out, err
}

// DeleteGoal removes goal id
func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete goal", func(st *domain.UserState) error {
		for i := range st.Goals {
			if st.Goals[i].ID == id {
				st.Goals = append(st.Goals[:i], st.Goals[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("goal %q: %w", id, ErrNotFound)
	})
}

// Reset clears everything, including the persisted copy
func (s *Store) Reset(ctx context.Context) error {
	return s.mutate(ctx, "reset", func(st *domain.UserState) error {
		*st = emptyState()
		return nil
	})
}

func validateInvestment(inv domain.Investment) error {
	if inv.Name == "" {
		return fmt.Errorf("investment name is required")
	}
	if inv.Amount.IsNegative() {
		return fmt.Errorf("investment amount cannot be negative")
	}
	if inv.CurrentValue.IsNegative() {
		return fmt.Errorf("investment current value cannot be negative")
	}
	if inv.MonthlyContribution.IsNegative() {
		return fmt.Errorf("monthly contribution cannot be negative")
	}
	switch inv.Status {
	case "", domain.StatusActive, domain.StatusMatured, domain.StatusClosed:
	default:
		return fmt.Errorf("unknown investment status %q", inv.Status)
	}
	return nil
}

func indexOfInvestment(invs []domain.Investment, id string) int {
	for i := range invs {
		if invs[i].ID == id {
			return i
		}
	}
	return -1
}

// recomputeTotals derives the portfolio totals from its investments
func recomputeTotals(p *domain.Portfolio, now time.Time) {
	total := decimal.Zero
	value := decimal.Zero
	for _, inv := range p.Investments {
		total = total.Add(inv.Amount)
		value = value.Add(inv.CurrentValue)
	}
	p.TotalInvestment = total
	p.TotalValue = value
	p.LastUpdated = now
}

// cloneState deep-copies slices and pointers so callers never share memory with the store
func cloneState(in domain.UserState) domain.UserState {
	out := in
	if in.User != nil {
		u := *in.User
		out.User = &u
	}
	if in.FinancialProfile != nil {
		fp := *in.FinancialProfile
		out.FinancialProfile = &fp
	}
	if in.RiskAssessment != nil {
		ra := *in.RiskAssessment
		out.RiskAssessment = &ra
	}
	out.Portfolio.Investments = append([]domain.Investment{}, in.Portfolio.Investments...)
	out.Goals = append([]domain.Goal{}, in.Goals...)
	return out
}
