package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
)

type VisitRepo struct {
	pool *pgxpool.Pool
}

func NewVisitRepo(pool *pgxpool.Pool) *VisitRepo {
	return &VisitRepo{pool: pool}
}

func (r *VisitRepo) Record(ctx context.Context, v *domain.SiteVisit) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO site_visits (session_id, path, ip, user_agent, referrer, device, duration_seconds, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		v.SessionID, v.Path, v.IP, v.UserAgent, v.Referrer, v.Device, v.Duration, v.CreatedAt,
	).Scan(&v.ID)
	if err != nil {
		return fmt.Errorf("visitRepo.Record: %w", translate(err))
	}

	return nil
}

func (r *VisitRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM site_visits`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("visitRepo.Count: %w", translate(err))
	}

	return n, nil
}

func (r *VisitRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM site_visits WHERE created_at >= $1`, since,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("visitRepo.CountSince: %w", translate(err))
	}

	return n, nil
}

func (r *VisitRepo) CountByDay(ctx context.Context, since time.Time) ([]domain.DailyVisitCount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT date_trunc('day', created_at) AS day, count(*)
		 FROM site_visits WHERE created_at >= $1
		 GROUP BY day ORDER BY day`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("visitRepo.CountByDay: %w", translate(err))
	}
	defer rows.Close()

	var counts []domain.DailyVisitCount
	for rows.Next() {
		var c domain.DailyVisitCount
		err = rows.Scan(&c.Day, &c.Visits)
		if err != nil {
			return nil, fmt.Errorf("visitRepo.CountByDay: scan: %w", err)
		}
		counts = append(counts, c)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("visitRepo.CountByDay: rows: %w", translate(err))
	}

	return counts, nil
}

func (r *VisitRepo) CountByDevice(ctx context.Context, since time.Time) ([]domain.DeviceVisitCount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT device, count(*)
		 FROM site_visits WHERE created_at >= $1
		 GROUP BY device ORDER BY device`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("visitRepo.CountByDevice: %w", translate(err))
	}
	defer rows.Close()

	var counts []domain.DeviceVisitCount
	for rows.Next() {
		var c domain.DeviceVisitCount
		err = rows.Scan(&c.Device, &c.Visits)
		if err != nil {
			return nil, fmt.Errorf("visitRepo.CountByDevice: scan: %w", err)
		}
		counts = append(counts, c)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("visitRepo.CountByDevice: rows: %w", translate(err))
	}

	return counts, nil
}
