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
	svcmocks "yen-network/internal/service/mocks"
)

type connFixture struct {
	conns    *mocks.ConnectionRepository
	users    *mocks.UserRepository
	notifier *svcmocks.Notifier
}

func newConnFixture(t *testing.T) *connFixture {
	return &connFixture{
		conns:    mocks.NewConnectionRepository(t),
		users:    mocks.NewUserRepository(t),
		notifier: svcmocks.NewNotifier(t),
	}
}

func (f *connFixture) service(policy service.ResolvePolicy) *service.ConnectionService {
	return service.NewConnectionService(f.conns, f.users, f.notifier, policy)
}

func TestConnectionService_Create_Self(t *testing.T) {
	f := newConnFixture(t)

	_, err := f.service(service.ResolveError).Create(context.Background(), "a", "a", domain.ConnectionMentor, "")

	assert.ErrorIs(t, err, service.ErrInvalidOperation)
	assert.Equal(t, "You cannot connect with yourself", err.Error())
}

func TestConnectionService_Create_ReceiverMissing(t *testing.T) {
	f := newConnFixture(t)
	ctx := context.Background()
	f.users.On("FindByID", ctx, "b").Return(nil, repository.ErrUserNotFound).Once()

	_, err := f.service(service.ResolveError).Create(ctx, "a", "b", domain.ConnectionMentor, "")

	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestConnectionService_Create_Success(t *testing.T) {
	f := newConnFixture(t)
	ctx := context.Background()

	f.users.On("FindByID", ctx, "b").Return(&domain.User{ID: "b", Name: "Bola"}, nil).Once()
	f.conns.On("FindBetween", ctx, "a", "b").Return(nil, repository.ErrConnectionNotFound).Once()
	f.conns.On("Create", ctx, mock.MatchedBy(func(c *domain.Connection) bool {
		return c.SenderID == "a" && c.ReceiverID == "b" && c.Status == domain.StatusPending && c.Message == "hi"
	})).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Connection).ID = "conn-1" }).
		Return(nil).Once()
	f.notifier.On("Notify", ctx, mock.MatchedBy(func(n domain.Notification) bool {
		return n.UserID == "b" && n.Kind == domain.NotifyConnectionRequested && n.Subject == "conn-1"
	})).Return(nil).Once()

	conn, err := f.service(service.ResolveError).Create(ctx, "a", "b", domain.ConnectionInvestor, " hi ")

	require.NoError(t, err)
	assert.Equal(t, "conn-1", conn.ID)
	assert.Equal(t, domain.StatusPending, conn.Status)
}

func TestConnectionService_Create_ExistsInEitherDirection(t *testing.T) {
	for name, existing := range map[string]*domain.Connection{
		"same direction":    {ID: "conn-1", SenderID: "a", ReceiverID: "b"},
		"reverse direction": {ID: "conn-1", SenderID: "b", ReceiverID: "a"},
	} {
		t.Run(name, func(t *testing.T) {
			f := newConnFixture(t)
			ctx := context.Background()
			f.users.On("FindByID", ctx, "b").Return(&domain.User{ID: "b"}, nil).Once()
			f.conns.On("FindBetween", ctx, "a", "b").Return(existing, nil).Once()

			_, err := f.service(service.ResolveError).Create(ctx, "a", "b", domain.ConnectionPartner, "")

			assert.ErrorIs(t, err, service.ErrConnectionExists)
			f.conns.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestConnectionService_Create_RaceCaughtByUniqueIndex(t *testing.T) {
	f := newConnFixture(t)
	ctx := context.Background()
	f.users.On("FindByID", ctx, "a").Return(&domain.User{ID: "a"}, nil).Once()
	f.conns.On("FindBetween", ctx, "b", "a").Return(nil, repository.ErrConnectionNotFound).Once()
	f.conns.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateEntry).Once()

	_, err := f.service(service.ResolveError).Create(ctx, "b", "a", domain.ConnectionMentor, "")

	assert.ErrorIs(t, err, service.ErrConnectionExists)
}

func TestConnectionService_Accept_OnlyReceiver(t *testing.T) {
	f := newConnFixture(t)
	ctx := context.Background()
	pending := &domain.Connection{ID: "conn-1", SenderID: "a", ReceiverID: "b", Status: domain.StatusPending}
	f.conns.On("FindByID", ctx, "conn-1").Return(pending, nil).Twice()

	svc := f.service(service.ResolveError)
	_, err := svc.Accept(ctx, "conn-1", "a")
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = svc.Reject(ctx, "conn-1", "stranger")
	assert.ErrorIs(t, err, service.ErrForbidden)
	f.conns.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
}

func TestConnectionService_Accept_NotFound(t *testing.T) {
	f := newConnFixture(t)
	ctx := context.Background()
	f.conns.On("FindByID", ctx, "missing").Return(nil, repository.ErrConnectionNotFound).Once()

	_, err := f.service(service.ResolveError).Accept(ctx, "missing", "b")

	assert.ErrorIs(t, err, service.ErrConnectionNotFound)
}

func TestConnectionService_Resolve_Transitions(t *testing.T) {
	tests := []struct {
		name   string
		to     domain.ConnectionStatus
		kind   domain.NotificationKind
		invoke func(*service.ConnectionService, context.Context) (*domain.Connection, error)
	}{
		{"accept", domain.StatusAccepted, domain.NotifyConnectionAccepted,
			func(s *service.ConnectionService, ctx context.Context) (*domain.Connection, error) {
				return s.Accept(ctx, "conn-1", "b")
			}},
		{"reject", domain.StatusRejected, domain.NotifyConnectionRejected,
			func(s *service.ConnectionService, ctx context.Context) (*domain.Connection, error) {
				return s.Reject(ctx, "conn-1", "b")
			}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newConnFixture(t)
			ctx := context.Background()
			pending := &domain.Connection{ID: "conn-1", SenderID: "a", ReceiverID: "b", Status: domain.StatusPending}
			f.conns.On("FindByID", ctx, "conn-1").Return(pending, nil).Once()
			f.conns.On("Resolve", ctx, "conn-1", tc.to).Return(nil).Once()
			f.notifier.On("Notify", ctx, mock.MatchedBy(func(n domain.Notification) bool {
				return n.UserID == "a" && n.Kind == tc.kind
			})).Return(nil).Once()

			conn, err := tc.invoke(f.service(service.ResolveError), ctx)

			require.NoError(t, err)
			assert.Equal(t, tc.to, conn.Status)
		})
	}
}

func TestConnectionService_AlreadyResolved_ErrorPolicy(t *testing.T) {
	f := newConnFixture(t)
	ctx := context.Background()
	accepted := &domain.Connection{ID: "conn-1", SenderID: "a", ReceiverID: "b", Status: domain.StatusAccepted}
	f.conns.On("FindByID", ctx, "conn-1").Return(accepted, nil).Once()

	_, err := f.service(service.ResolveError).Reject(ctx, "conn-1", "b")

	assert.ErrorIs(t, err, service.ErrConnectionResolved)
	f.conns.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
}

func TestConnectionService_AlreadyResolved_NoopPolicy(t *testing.T) {
	f := newConnFixture(t)
	ctx := context.Background()
	accepted := &domain.Connection{ID: "conn-1", SenderID: "a", ReceiverID: "b", Status: domain.StatusAccepted}
	f.conns.On("FindByID", ctx, "conn-1").Return(accepted, nil).Once()

	conn, err := f.service(service.ResolveNoop).Reject(ctx, "conn-1", "b")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, conn.Status, "noop keeps the first resolution")
	f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestConnectionService_ConcurrentResolveLoses(t *testing.T) {
	f := newConnFixture(t)
	ctx := context.Background()
	pending := &domain.Connection{ID: "conn-1", SenderID: "a", ReceiverID: "b", Status: domain.StatusPending}
	rejected := &domain.Connection{ID: "conn-1", SenderID: "a", ReceiverID: "b", Status: domain.StatusRejected}
	f.conns.On("FindByID", ctx, "conn-1").Return(pending, nil).Once()
	f.conns.On("Resolve", ctx, "conn-1", domain.StatusAccepted).Return(repository.ErrConflict).Once()
	f.conns.On("FindByID", ctx, "conn-1").Return(rejected, nil).Once()

	_, err := f.service(service.ResolveError).Accept(ctx, "conn-1", "b")

	assert.ErrorIs(t, err, service.ErrConnectionResolved)
}

func TestParseResolvePolicy(t *testing.T) {
	p, err := service.ParseResolvePolicy("")
	require.NoError(t, err)
	assert.Equal(t, service.ResolveError, p)

	p, err = service.ParseResolvePolicy(" NOOP ")
	require.NoError(t, err)
	assert.Equal(t, service.ResolveNoop, p)

	_, err = service.ParseResolvePolicy("ignore")
	assert.Error(t, err)
}
