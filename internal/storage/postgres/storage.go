package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

const uniqueViolation = "23505"

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            password TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL,
            lines JSONB NOT NULL DEFAULT '[]'::jsonb,
            total_price BIGINT NOT NULL CHECK (total_price >= 0),
            is_paid BOOLEAN NOT NULL DEFAULT FALSE,
            qr_code TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            paid_at TIMESTAMPTZ
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	s.logger.Debug("database schema ready")
	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (name, email, password) VALUES ($1, $2, $3) RETURNING id, created_at`
	u := model.User{Name: name, Email: email, PasswordHash: passwordHash}
	err := r.storage.pool.QueryRow(ctx, query, name, email, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, domainErrors.NewStoreError("create user", err)
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, name, email, password, created_at FROM users WHERE email=$1`
	return r.get(ctx, "get user by email", query, email)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, name, email, password, created_at FROM users WHERE id=$1`
	return r.get(ctx, "get user by id", query, id)
}

func (r *userRepository) get(ctx context.Context, op, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.NewStoreError(op, err)
	}
	return &u, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, user_id, lines, total_price, is_paid, COALESCE(qr_code, ''), created_at, paid_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o     model.Order
		lines []byte
	)
	if err := row.Scan(&o.ID, &o.UserID, &lines, &o.TotalPrice, &o.IsPaid, &o.QRPayload, &o.CreatedAt, &o.PaidAt); err != nil {
		return nil, err
	}
	if len(lines) > 0 {
		if err := json.Unmarshal(lines, &o.Lines); err != nil {
			return nil, fmt.Errorf("decode order %d lines: %w", o.ID, err)
		}
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, userID int64, lines []model.OrderLine, total int64, issue repository.PayloadIssuer) (*model.Order, error) {
	encoded, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("encode order lines: %w", err)
	}

	order := model.Order{UserID: userID, Lines: lines, TotalPrice: total}
	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertQuery = `INSERT INTO orders (user_id, lines, total_price, is_paid)
                             VALUES ($1, $2, $3, FALSE)
                             RETURNING id, created_at`
		if err := tx.QueryRow(ctx, insertQuery, userID, encoded, total).Scan(&order.ID, &order.CreatedAt); err != nil {
			return err
		}

		payload, err := issue(order.ID)
		if err != nil {
			return err
		}

		const qrQuery = `UPDATE orders SET qr_code=$1 WHERE id=$2 AND qr_code IS NULL`
		if _, err := tx.Exec(ctx, qrQuery, payload, order.ID); err != nil {
			return err
		}
		order.QRPayload = payload
		return nil
	})
	if err != nil {
		return nil, domainErrors.NewStoreError("create order", err)
	}

	r.storage.logger.Debug("order stored", slog.Int64("order_id", order.ID), slog.Int64("user_id", userID))
	return &order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, domainErrors.NewStoreError("get order", err)
	}
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + `
                   FROM orders WHERE user_id=$1 ORDER BY created_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, domainErrors.NewStoreError("list orders", err)
	}
	defer rows.Close()

	result := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, domainErrors.NewStoreError("list orders", err)
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, domainErrors.NewStoreError("list orders", err)
	}
	return result, nil
}

// MarkPaid performs the false->true flip in one statement; the follow-up probe
// only runs when nothing was updated.
func (r *orderRepository) MarkPaid(ctx context.Context, id int64) (bool, error) {
	const updateQuery = `UPDATE orders SET is_paid=TRUE, paid_at=NOW() WHERE id=$1 AND NOT is_paid`
	tag, err := r.storage.pool.Exec(ctx, updateQuery, id)
	if err != nil {
		return false, domainErrors.NewStoreError("mark paid", err)
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}

	const existsQuery = `SELECT EXISTS (SELECT 1 FROM orders WHERE id=$1)`
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, existsQuery, id).Scan(&exists); err != nil {
		return false, domainErrors.NewStoreError("mark paid", err)
	}
	if !exists {
		return false, domainErrors.ErrNotFound
	}
	return false, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

var _ repository.Factory = (*Storage)(nil)
