package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"entrepreneurawards/internal/utils"
	"entrepreneurawards/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const nominationTableName = "nominations"

var nominationColumns = utils.StructTagValues(types.Nomination{})

type NominationRepository struct {
	pool *pgxpool.Pool
}

func NewNominationRepository(pool *pgxpool.Pool) *NominationRepository {
	return &NominationRepository{pool: pool}
}

func nominationsQuery() sq.SelectBuilder {
	return psql().
		Select(nominationColumns...).
		From(nominationTableName).
		OrderBy("created_at DESC")
}

func (r *NominationRepository) Nominations(ctx context.Context) ([]*types.Nomination, error) {
	query, args, err := nominationsQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate nominations query: %w", err)
	}

	nominations := make([]*types.Nomination, 0)
	err = pgxscan.Select(ctx, r.pool, &nominations, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch nominations: %w", err)
	}

	return nominations, nil
}

func (r *NominationRepository) Nomination(ctx context.Context, id string) (*types.Nomination, error) {
	query, args, err := psql().
		Select(nominationColumns...).
		From(nominationTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate nomination query: %w", err)
	}

	var nomination = new(types.Nomination)
	err = pgxscan.Get(ctx, r.pool, nomination, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrNominationNotFound
		}
		return nil, fmt.Errorf("failed to fetch nomination %s: %w", id, err)
	}

	return nomination, nil
}

// CreateNomination inserts a new pending nomination and refreshes the
// struct from the stored row.
func (r *NominationRepository) CreateNomination(ctx context.Context, nomination *types.Nomination) error {
	nomination.ID = utils.NanoID()
	nomination.Status = types.NominationStatusPending
	nomination.CreatedAt = time.Now()

	query, args, err := insertNominationQuery(nomination).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert nomination query: %w", err)
	}

	err = pgxscan.Get(ctx, r.pool, nomination, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create nomination")
}

func insertNominationQuery(nomination *types.Nomination) sq.InsertBuilder {
	return psql().
		Insert(nominationTableName).
		SetMap(utils.StructToMap(nomination)).
		Suffix(returning(nominationColumns))
}

// UpdateNominationStatus writes status, and notes when notes is non-nil.
// A blank notes string clears the stored notes.
func (r *NominationRepository) UpdateNominationStatus(ctx context.Context, id string, status types.NominationStatus, notes *string) (*types.Nomination, error) {
	query, args, err := updateNominationStatusQuery(id, status, notes).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate update nomination query for nomination %s: %w", id, err)
	}

	var nomination = new(types.Nomination)
	err = pgxscan.Get(ctx, r.pool, nomination, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrNominationNotFound
		}
		return nil, fmt.Errorf("failed to update nomination %s: %w", id, err)
	}

	return nomination, nil
}

func updateNominationStatusQuery(id string, status types.NominationStatus, notes *string) sq.UpdateBuilder {
	builder := psql().
		Update(nominationTableName).
		Set("status", status).
		Where(sq.Eq{"id": id}).
		Suffix(returning(nominationColumns))

	if notes != nil {
		builder = builder.Set("notes", nullable(strings.TrimSpace(*notes)))
	}

	return builder
}
