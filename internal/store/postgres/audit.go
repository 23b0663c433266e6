package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
)

type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

// Record inserts synchronously; the row is durable when this returns.
func (r *AuditRepo) Record(ctx context.Context, e *domain.AuditEntry) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO admin_logs (actor_id, action, details, ip, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		e.ActorID, e.Action, e.Details, e.IP, e.CreatedAt,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("auditRepo.Record: %w", translate(err))
	}

	return nil
}

func (r *AuditRepo) ListPaginated(ctx context.Context, limit, offset int) ([]*domain.AuditEntry, int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM admin_logs`).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("auditRepo.ListPaginated: count: %w", translate(err))
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, actor_id, action, details, ip, created_at
		 FROM admin_logs
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("auditRepo.ListPaginated: %w", translate(err))
	}
	defer rows.Close()

	var entries []*domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		err = rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.Details, &e.IP, &e.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("auditRepo.ListPaginated: scan: %w", err)
		}
		entries = append(entries, &e)
	}
	err = rows.Err()
	if err != nil {
		return nil, 0, fmt.Errorf("auditRepo.ListPaginated: rows: %w", translate(err))
	}

	return entries, total, nil
}
