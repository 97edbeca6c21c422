package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/staff-roster/internal/domain"
)

// postgresStore keeps one row per member; sales and discounts ride along
// as JSONB documents since the roster always moves as a whole aggregate.
type postgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore instantiates the Postgres driver.
func NewPostgresStore(pool *pgxpool.Pool) RosterStore {
	return &postgresStore{pool: pool}
}

func (s *postgresStore) Load(ctx context.Context) ([]*domain.StaffMember, error) {
	const query = `
        SELECT id, name, code, email, phone, role, sales, discounts, created_at, updated_at
        FROM staff_members ORDER BY created_at, id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roster []*domain.StaffMember
	for rows.Next() {
		var (
			member    domain.StaffMember
			sales     []byte
			discounts []byte
		)
		if err := rows.Scan(
			&member.ID,
			&member.Name,
			&member.Code,
			&member.Email,
			&member.Phone,
			&member.Role,
			&sales,
			&discounts,
			&member.CreatedAt,
			&member.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(sales, &member.Sales); err != nil {
			return nil, fmt.Errorf("%w: member %s sales: %v", ErrMalformed, member.ID, err)
		}
		if err := json.Unmarshal(discounts, &member.Discounts); err != nil {
			return nil, fmt.Errorf("%w: member %s discounts: %v", ErrMalformed, member.ID, err)
		}
		roster = append(roster, &member)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if roster == nil {
		return nil, ErrNotFound
	}
	return roster, nil
}

func (s *postgresStore) Save(ctx context.Context, roster []*domain.StaffMember) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM staff_members`); err != nil {
		return err
	}

	const insert = `
        INSERT INTO staff_members (id, name, code, email, phone, role, sales, discounts, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`

	for _, member := range roster {
		sales, err := json.Marshal(member.Sales)
		if err != nil {
			return err
		}
		discounts, err := json.Marshal(member.Discounts)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, insert,
			member.ID,
			member.Name,
			member.Code,
			member.Email,
			member.Phone,
			member.Role,
			sales,
			discounts,
			member.CreatedAt,
			member.UpdatedAt,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
