package store

import (
	"fmt"
	"strings"
	"testing"

	"entrepreneurawards/internal/utils"
	"entrepreneurawards/pkg/types"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntrepreneursQuery_PinnedFirstThenNewest(t *testing.T) {
	query, args, err := entrepreneursQuery().ToSql()
	require.NoError(t, err)

	assert.Empty(t, args)
	assert.True(t, strings.HasPrefix(query, "SELECT id, name, "))
	assert.True(t, strings.HasSuffix(query, "FROM entrepreneurs ORDER BY pinned DESC, created_at DESC"))
}

func TestNominationsQuery_NewestFirst(t *testing.T) {
	query, _, err := nominationsQuery().ToSql()
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(query, "FROM nominations ORDER BY created_at DESC"))
}

func TestUpdateNominationStatusQuery(t *testing.T) {
	t.Run("with notes", func(t *testing.T) {
		notes := "  strong local impact "
		query, args, err := updateNominationStatusQuery("nom-1", types.NominationStatusApproved, &notes).ToSql()
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(query, "UPDATE nominations SET status = $1, notes = $2 WHERE id = $3 RETURNING "))
		assert.Equal(t, []any{types.NominationStatusApproved, "strong local impact", "nom-1"}, args)
	})

	t.Run("without notes keeps stored notes", func(t *testing.T) {
		query, args, err := updateNominationStatusQuery("nom-1", types.NominationStatusRejected, nil).ToSql()
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(query, "UPDATE nominations SET status = $1 WHERE id = $2 RETURNING "))
		assert.Equal(t, []any{types.NominationStatusRejected, "nom-1"}, args)
	})

	t.Run("blank notes clear the column", func(t *testing.T) {
		notes := "   "
		_, args, err := updateNominationStatusQuery("nom-1", types.NominationStatusPending, &notes).ToSql()
		require.NoError(t, err)

		require.Len(t, args, 3)
		assert.Nil(t, args[1])
	})
}

func TestInsertNominationQuery_ReturnsStoredRow(t *testing.T) {
	nomination := &types.Nomination{ID: "nom-1", EntrepreneurName: "Jane Doe", Status: types.NominationStatusPending}

	query, args, err := insertNominationQuery(nomination).ToSql()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "INSERT INTO nominations "))
	assert.Contains(t, query, "RETURNING "+strings.Join(nominationColumns, ", "))
	assert.Contains(t, args, "Jane Doe")
	assert.Len(t, args, len(nominationColumns))
}

func TestUpdateEntrepreneurQuery_SkipsImmutableColumns(t *testing.T) {
	nominationID := "nom-1"
	entrepreneur := &types.Entrepreneur{
		ID:           "ent-1",
		Name:         "Jane Doe",
		Industry:     "Food & Beverage",
		NominationID: &nominationID,
	}

	query, args, err := updateEntrepreneurQuery(entrepreneur).ToSql()
	require.NoError(t, err)

	setClause := strings.SplitN(query, " WHERE ", 2)[0]
	assert.NotContains(t, setClause, "nomination_id")
	assert.NotContains(t, setClause, "created_at")
	assert.NotContains(t, setClause, "id =")
	assert.Contains(t, setClause, "updated_at = ")
	assert.False(t, entrepreneur.UpdatedAt.IsZero())

	// every mutable column plus the id in the WHERE clause
	assert.Len(t, args, len(entrepreneurColumns)-3+1)
	assert.Equal(t, "ent-1", args[len(args)-1])
}

func TestCategoryByNameQuery_CaseInsensitive(t *testing.T) {
	query, args, err := categoryByNameQuery("  Food & Beverage ").ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE lower(name) = $1")
	assert.Equal(t, []any{"food & beverage"}, args)
}

func TestColumnsFollowDBTags(t *testing.T) {
	assert.Equal(t, utils.StructTagValues(types.IndustryCategory{}), []string{"id", "name", "created_at", "updated_at"})
	assert.Contains(t, entrepreneurColumns, "badge_photo_url")
	assert.Contains(t, nominationColumns, "nominator_phone")
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: entrepreneurNominationKey}

	assert.True(t, isUniqueViolation(dup, entrepreneurNominationKey))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", dup), entrepreneurNominationKey))
	assert.False(t, isUniqueViolation(dup, "industry_categories_name_key"))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503", ConstraintName: entrepreneurNominationKey}, entrepreneurNominationKey))
	assert.False(t, isUniqueViolation(nil, entrepreneurNominationKey))
}
