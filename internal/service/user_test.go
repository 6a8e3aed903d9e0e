package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"yen-network/internal/domain"
	"yen-network/internal/repository"
	"yen-network/internal/repository/mocks"
	"yen-network/internal/service"
)

func TestUserService_ListMentors_ScrubsPasswords(t *testing.T) {
	repo := mocks.NewUserRepository(t)
	ctx := context.Background()
	repo.On("ListByRole", ctx, domain.RoleMentor).
		Return([]domain.User{{ID: "m1", Password: "hash"}, {ID: "m2", Password: "hash"}}, nil).Once()

	users, err := service.NewUserService(repo).ListMentors(ctx)

	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.Password)
	}
}

func TestUserService_UpdateProfile_OnlyProvidedFields(t *testing.T) {
	repo := mocks.NewUserRepository(t)
	ctx := context.Background()

	location := "  Nairobi "
	expertise := []string{" agritech ", "", "fintech"}
	repo.On("UpdateProfile", ctx, "user-1", mock.MatchedBy(func(c repository.ProfileChanges) bool {
		return c.Bio == nil &&
			c.Location != nil && *c.Location == "Nairobi" &&
			c.Expertise != nil && assert.ObjectsAreEqual([]string{"agritech", "fintech"}, *c.Expertise)
	})).Return(&domain.User{ID: "user-1", Location: "Nairobi", Password: "hash"}, nil).Once()

	user, err := service.NewUserService(repo).UpdateProfile(ctx, "user-1", repository.ProfileChanges{
		Location:  &location,
		Expertise: &expertise,
	})

	require.NoError(t, err)
	assert.Equal(t, "Nairobi", user.Location)
	assert.Empty(t, user.Password)
}

func TestUserService_UpdateProfile_NothingToChange(t *testing.T) {
	repo := mocks.NewUserRepository(t)
	ctx := context.Background()
	repo.On("FindByID", ctx, "user-1").Return(&domain.User{ID: "user-1"}, nil).Once()

	user, err := service.NewUserService(repo).UpdateProfile(ctx, "user-1", repository.ProfileChanges{})

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	repo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_Get_NotFound(t *testing.T) {
	repo := mocks.NewUserRepository(t)
	ctx := context.Background()
	repo.On("FindByID", ctx, "ghost").Return(nil, repository.ErrUserNotFound).Once()

	_, err := service.NewUserService(repo).Get(ctx, "ghost")

	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
