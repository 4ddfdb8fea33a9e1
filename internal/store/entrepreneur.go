package store

import (
	"context"
	"fmt"
	"time"

	"entrepreneurawards/internal/utils"
	"entrepreneurawards/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	entrepreneurTableName = "entrepreneurs"

	entrepreneurNominationKey = "entrepreneurs_nomination_id_key"
)

var entrepreneurColumns = utils.StructTagValues(types.Entrepreneur{})

type EntrepreneurRepository struct {
	pool *pgxpool.Pool
}

func NewEntrepreneurRepository(pool *pgxpool.Pool) *EntrepreneurRepository {
	return &EntrepreneurRepository{pool: pool}
}

// entrepreneursQuery lists pinned entrepreneurs first, newest first within
// each group.
func entrepreneursQuery() sq.SelectBuilder {
	return psql().
		Select(entrepreneurColumns...).
		From(entrepreneurTableName).
		OrderBy("pinned DESC", "created_at DESC")
}

func (r *EntrepreneurRepository) Entrepreneurs(ctx context.Context) ([]*types.Entrepreneur, error) {
	query, args, err := entrepreneursQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate entrepreneurs query: %w", err)
	}

	entrepreneurs := make([]*types.Entrepreneur, 0)
	err = pgxscan.Select(ctx, r.pool, &entrepreneurs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entrepreneurs: %w", err)
	}

	return entrepreneurs, nil
}

func (r *EntrepreneurRepository) Entrepreneur(ctx context.Context, id string) (*types.Entrepreneur, error) {
	query, args, err := psql().
		Select(entrepreneurColumns...).
		From(entrepreneurTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate entrepreneur query: %w", err)
	}

	var entrepreneur = new(types.Entrepreneur)
	err = pgxscan.Get(ctx, r.pool, entrepreneur, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrEntrepreneurNotFound
		}
		return nil, fmt.Errorf("failed to fetch entrepreneur %s: %w", id, err)
	}

	return entrepreneur, nil
}

// EntrepreneurByNominationID returns nil without error when no entrepreneur
// was promoted from the nomination yet.
func (r *EntrepreneurRepository) EntrepreneurByNominationID(ctx context.Context, nominationID string) (*types.Entrepreneur, error) {
	query, args, err := psql().
		Select(entrepreneurColumns...).
		From(entrepreneurTableName).
		Where(sq.Eq{"nomination_id": nominationID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate entrepreneur by nomination query: %w", err)
	}

	var entrepreneur types.Entrepreneur
	err = pgxscan.Get(ctx, r.pool, &entrepreneur, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch entrepreneur for nomination %s: %w", nominationID, err)
	}

	return &entrepreneur, nil
}

// CreateEntrepreneur assigns the identifier and timestamps, inserts the row
// and refreshes the struct from what was stored.
func (r *EntrepreneurRepository) CreateEntrepreneur(ctx context.Context, entrepreneur *types.Entrepreneur) error {
	now := time.Now()
	entrepreneur.ID = utils.NanoID()
	entrepreneur.CreatedAt = now
	entrepreneur.UpdatedAt = now

	query, args, err := psql().
		Insert(entrepreneurTableName).
		SetMap(utils.StructToMap(entrepreneur)).
		Suffix(returning(entrepreneurColumns)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert entrepreneur query: %w", err)
	}

	err = pgxscan.Get(ctx, r.pool, entrepreneur, query, args...)
	if isUniqueViolation(err, entrepreneurNominationKey) {
		return fmt.Errorf("%w: %s", types.ErrEntrepreneurExists, utils.PtrString(entrepreneur.NominationID))
	}
	return utils.ErrorWrapOrNil(err, "failed to create entrepreneur")
}

// UpdateEntrepreneur overwrites the mutable fields. The identifier,
// created_at and the nomination back-reference are never rewritten.
func (r *EntrepreneurRepository) UpdateEntrepreneur(ctx context.Context, entrepreneur *types.Entrepreneur) error {
	query, args, err := updateEntrepreneurQuery(entrepreneur).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update entrepreneur query for entrepreneur %s: %w", entrepreneur.ID, err)
	}

	err = pgxscan.Get(ctx, r.pool, entrepreneur, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return types.ErrEntrepreneurNotFound
		}
		return fmt.Errorf("failed to update entrepreneur %s: %w", entrepreneur.ID, err)
	}

	return nil
}

func updateEntrepreneurQuery(entrepreneur *types.Entrepreneur) sq.UpdateBuilder {
	entrepreneur.UpdatedAt = time.Now()

	entrepreneurMap := utils.StructToMap(entrepreneur)
	delete(entrepreneurMap, "id")
	delete(entrepreneurMap, "created_at")
	delete(entrepreneurMap, "nomination_id")

	return psql().
		Update(entrepreneurTableName).
		SetMap(entrepreneurMap).
		Where(sq.Eq{"id": entrepreneur.ID}).
		Suffix(returning(entrepreneurColumns))
}

func (r *EntrepreneurRepository) TogglePinned(ctx context.Context, id string) (*types.Entrepreneur, error) {
	query, args, err := psql().
		Update(entrepreneurTableName).
		Set("pinned", sq.Expr("NOT pinned")).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		Suffix(returning(entrepreneurColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate toggle pinned query for entrepreneur %s: %w", id, err)
	}

	var entrepreneur = new(types.Entrepreneur)
	err = pgxscan.Get(ctx, r.pool, entrepreneur, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrEntrepreneurNotFound
		}
		return nil, fmt.Errorf("failed to toggle pinned for entrepreneur %s: %w", id, err)
	}

	return entrepreneur, nil
}

func (r *EntrepreneurRepository) DeleteEntrepreneur(ctx context.Context, id string) error {
	query, args, err := psql().
		Delete(entrepreneurTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete entrepreneur query for entrepreneur %s: %w", id, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete entrepreneur %s: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrEntrepreneurNotFound
	}

	return nil
}
