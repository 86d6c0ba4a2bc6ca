package test

import (
	"context"
	"strconv"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless email already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Name: name, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	s.Next++
	s.Users[email] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[email]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub keeps orders in memory and mirrors the store contract:
// ids are assigned once, payloads are issued inside Create and paid never reverts.
type OrderRepositoryStub struct {
	CreateFn     func(context.Context, int64, []model.OrderLine, int64, repository.PayloadIssuer) (*model.Order, error)
	GetByIDFn    func(context.Context, int64) (*model.Order, error)
	ListByUserFn func(context.Context, int64) ([]model.Order, error)
	MarkPaidFn   func(context.Context, int64) (bool, error)

	mu          sync.Mutex
	Orders      map[int64]*model.Order
	Next        int64
	CreateCalls int
}

// Create stores the order and payload, or nothing when the issuer fails.
func (s *OrderRepositoryStub) Create(ctx context.Context, userID int64, lines []model.OrderLine, total int64, issue repository.PayloadIssuer) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CreateCalls++
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, lines, total, issue)
	}
	if s.Orders == nil {
		s.Orders = make(map[int64]*model.Order)
	}
	s.Next++
	id := s.Next
	payload, err := issue(id)
	if err != nil {
		return nil, err
	}
	order := &model.Order{ID: id, UserID: userID, Lines: lines, TotalPrice: total, QRPayload: payload, CreatedAt: time.Now()}
	s.Orders[id] = order
	copied := *order
	return &copied, nil
}

// GetByID returns stored order copy.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	order, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

// ListByUser returns stored orders of the user, newest first.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	result := make([]model.Order, 0)
	for id := s.Next; id > 0; id-- {
		if o, ok := s.Orders[id]; ok && o.UserID == userID {
			result = append(result, *o)
		}
	}
	return result, nil
}

// MarkPaid flips the paid flag once.
func (s *OrderRepositoryStub) MarkPaid(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.MarkPaidFn != nil {
		return s.MarkPaidFn(ctx, id)
	}
	order, ok := s.Orders[id]
	if !ok {
		return false, domainErrors.ErrNotFound
	}
	if order.IsPaid {
		return false, nil
	}
	now := time.Now()
	order.IsPaid = true
	order.PaidAt = &now
	return true, nil
}

var _ repository.OrderRepository = (*OrderRepositoryStub)(nil)
var _ repository.UserRepository = (*UserRepositoryStub)(nil)
