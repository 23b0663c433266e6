package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

type Store struct {
	pool       *pgxpool.Pool
	merchants  *MerchantRepo
	products   *ProductRepo
	categories *CategoryRepo
	favorites  *FavoriteRepo
	visits     *VisitRepo
	audit      *AuditRepo
	payments   *PaymentSettingsRepo
}

func New(ctx context.Context, dsn string, maxConns int32, stmtTimeout time.Duration) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns
	cfg.ConnConfig.ConnectTimeout = 5 * time.Second
	if stmtTimeout > 0 {
		cfg.ConnConfig.RuntimeParams["statement_timeout"] = fmt.Sprintf("%d", stmtTimeout.Milliseconds())
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	return &Store{
		pool:       pool,
		merchants:  NewMerchantRepo(pool),
		products:   NewProductRepo(pool),
		categories: NewCategoryRepo(pool),
		favorites:  NewFavoriteRepo(pool),
		visits:     NewVisitRepo(pool),
		audit:      NewAuditRepo(pool),
		payments:   NewPaymentSettingsRepo(pool),
	}, nil
}

// Bootstrap creates tables and seeds the category reference set. Every
// statement is idempotent, so running it on each start is safe.
func (s *Store) Bootstrap(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schemaSQL)
	if err != nil {
		return fmt.Errorf("postgres.Bootstrap: %w", err)
	}
	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Merchants() domain.MerchantRepository              { return s.merchants }
func (s *Store) Products() domain.ProductRepository                { return s.products }
func (s *Store) Categories() domain.CategoryRepository             { return s.categories }
func (s *Store) Favorites() domain.FavoriteRepository              { return s.favorites }
func (s *Store) Visits() domain.VisitRepository                    { return s.visits }
func (s *Store) Audit() domain.AuditRepository                     { return s.audit }
func (s *Store) PaymentSettings() domain.PaymentSettingsRepository { return s.payments }

// pgUniqueViolation and pgForeignKeyViolation are the SQLSTATE codes the
// repos care about; everything else passes through wrapped.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps driver-level failures onto domain sentinels so raw pg
// errors never reach the API boundary.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", domain.ErrInvalid, pgErr.ConstraintName)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}

	return err
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
