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

const categoryTableName = "industry_categories"

var categoryColumns = utils.StructTagValues(types.IndustryCategory{})

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) Categories(ctx context.Context) ([]*types.IndustryCategory, error) {
	query, args, err := psql().
		Select(categoryColumns...).
		From(categoryTableName).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate categories query: %w", err)
	}

	categories := make([]*types.IndustryCategory, 0)
	err = pgxscan.Select(ctx, r.pool, &categories, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	return categories, nil
}

// CategoryByName matches case-insensitively and returns nil without error
// when nothing matches.
func (r *CategoryRepository) CategoryByName(ctx context.Context, name string) (*types.IndustryCategory, error) {
	query, args, err := categoryByNameQuery(name).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate category query: %w", err)
	}

	var category types.IndustryCategory
	err = pgxscan.Get(ctx, r.pool, &category, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}

	return &category, nil
}

func categoryByNameQuery(name string) sq.SelectBuilder {
	return psql().
		Select(categoryColumns...).
		From(categoryTableName).
		Where(sq.Expr("lower(name) = ?", strings.ToLower(strings.TrimSpace(name)))).
		Limit(1)
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, category *types.IndustryCategory) error {
	now := time.Now()
	category.ID = utils.NanoID()
	category.CreatedAt = now
	category.UpdatedAt = now

	query, args, err := psql().
		Insert(categoryTableName).
		SetMap(utils.StructToMap(category)).
		Suffix(returning(categoryColumns)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert query: %w", err)
	}

	err = pgxscan.Get(ctx, r.pool, category, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}

	return nil
}

// UpsertCategory is used by the seeder, where IDs are fixed in source.
func (r *CategoryRepository) UpsertCategory(ctx context.Context, category *types.IndustryCategory) error {
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	categoryMap := utils.StructToMap(category)

	// Exclude id and created_at from updates
	updateMap := make(map[string]any)
	for k, v := range categoryMap {
		if k != "id" && k != "created_at" {
			updateMap[k] = v
		}
	}

	query, args, err := psql().
		Insert(categoryTableName).
		SetMap(categoryMap).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + buildUpdateClause(updateMap)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to upsert category: %w", err)
	}

	return nil
}
