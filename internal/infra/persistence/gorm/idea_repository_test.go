package gormpersistence_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gormpersistence "yen-network/internal/infra/persistence/gorm"
	"yen-network/internal/repository"
)

func TestAddFunding_ClampsInsideLockedUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := gormpersistence.NewGormIdeaRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT `id`,`current_funding` FROM `ideas` WHERE id = \\?.*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "current_funding"}).AddRow("idea-1", 900.0))
	mock.ExpectExec("UPDATE `ideas` SET `current_funding`=LEAST\\(current_funding \\+ \\?, funding_goal\\)").
		WithArgs(500.0, sqlmock.AnyArg(), "idea-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT \\* FROM `ideas` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "funding_goal", "current_funding"}).
			AddRow("idea-1", "amaka", "Solar cold storage", 1000.0, 1000.0))
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("amaka", "Amaka"))
	mock.ExpectCommit()

	idea, previous, err := repo.AddFunding(context.Background(), "idea-1", 500)

	require.NoError(t, err)
	assert.Equal(t, 900.0, previous)
	assert.Equal(t, 1000.0, idea.CurrentFunding)
	assert.True(t, idea.FullyFunded())
	assert.Equal(t, "Amaka", idea.Owner.Name)
}

func TestAddFunding_UnknownIdea(t *testing.T) {
	db, mock := newMockDB(t)
	repo := gormpersistence.NewGormIdeaRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT `id`,`current_funding` FROM `ideas`.*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "current_funding"}))
	mock.ExpectRollback()

	_, _, err := repo.AddFunding(context.Background(), "missing", 10)
	assert.ErrorIs(t, err, repository.ErrIdeaNotFound)
}

func TestToggleLike_AddsAndRecounts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := gormpersistence.NewGormIdeaRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT `id` FROM `ideas` WHERE id = \\?.*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("idea-1"))
	mock.ExpectExec("DELETE FROM `idea_likes` WHERE .*idea_id = \\? AND user_id = \\?").
		WithArgs("idea-1", "kofi").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO `idea_likes`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `idea_likes` WHERE idea_id = \\?").
		WithArgs("idea-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectExec("UPDATE `ideas` SET `likes`=\\? WHERE id = \\?").
		WithArgs(3, "idea-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	likes, liked, err := repo.ToggleLike(context.Background(), "idea-1", "kofi")

	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 3, likes)
}

func TestToggleLike_RemovesExistingLike(t *testing.T) {
	db, mock := newMockDB(t)
	repo := gormpersistence.NewGormIdeaRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT `id` FROM `ideas`.*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("idea-1"))
	mock.ExpectExec("DELETE FROM `idea_likes`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `idea_likes`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("UPDATE `ideas` SET `likes`=\\?").
		WithArgs(0, "idea-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	likes, liked, err := repo.ToggleLike(context.Background(), "idea-1", "kofi")

	require.NoError(t, err)
	assert.False(t, liked)
	assert.Zero(t, likes)
}

func TestToggleLike_UnknownIdea(t *testing.T) {
	db, mock := newMockDB(t)
	repo := gormpersistence.NewGormIdeaRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT `id` FROM `ideas`.*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, _, err := repo.ToggleLike(context.Background(), "missing", "kofi")
	assert.ErrorIs(t, err, repository.ErrIdeaNotFound)
}
