package user

import (
	"context"
	"sync"
	"testing"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []domain.NotificationInput
}

func (n *recordingNotifier) Notify(ctx context.Context, in domain.NotificationInput) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, in)
}

func (n *recordingNotifier) ofType(t string) []domain.NotificationInput {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []domain.NotificationInput
	for _, in := range n.sent {
		if in.Type == t {
			out = append(out, in)
		}
	}
	return out
}

type managerFixture struct {
	repo     *fakeUserRepository
	notifier *recordingNotifier
	service  ManagerService
	admin    domain.Actor
}

func newManagerFixture(t *testing.T) *managerFixture {
	t.Helper()
	repo := newFakeUserRepository()
	notifier := &recordingNotifier{}
	fx := &managerFixture{
		repo:     repo,
		notifier: notifier,
		service:  NewManagerService(repo, notifier, zap.NewNop()),
	}
	fx.admin = fx.addUser(t, "Root", domain.RoleAdmin)
	return fx
}

func (fx *managerFixture) addUser(t *testing.T, name string, role domain.Role) domain.Actor {
	t.Helper()
	u := &entities.User{ID: uuid.New(), Name: name, Email: uuid.NewString() + "@example.com", Role: string(role), IsActive: true}
	require.NoError(t, fx.repo.CreateUser(context.Background(), u))
	return domain.Actor{ID: u.ID.String(), Name: name, Role: role}
}

func TestManagerApplication_ApproveGrantsManagerRole(t *testing.T) {
	fx := newManagerFixture(t)
	ctx := context.Background()
	vol := fx.addUser(t, "Vera", domain.RoleVolunteer)

	applied, err := fx.service.Apply(ctx, vol, domain.ManagerApplicationRequest{Reason: " I run the local food bank "})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleVolunteer, applied.Role)
	assert.Equal(t, domain.RoleManager, applied.RequestedRole)
	assert.NotNil(t, applied.RoleRequestedAt)
	assert.Equal(t, "I run the local food bank", fx.repo.users[uuid.MustParse(vol.ID)].RoleRequestReason)

	sent := fx.notifier.ofType(domain.NotificationManagerApplication)
	require.Len(t, sent, 1)
	assert.Equal(t, fx.admin.ID, sent[0].RecipientID)

	_, err = fx.service.Apply(ctx, vol, domain.ManagerApplicationRequest{})
	assert.ErrorIs(t, err, domain.ErrApplicationPending)

	pending, err := fx.service.ListApplications(ctx, domain.PageQuery{})
	require.NoError(t, err)
	require.Len(t, pending.Users, 1)
	assert.Equal(t, vol.ID, pending.Users[0].ID)
	assert.EqualValues(t, 1, pending.Pagination.Total)

	approved, err := fx.service.Approve(ctx, fx.admin, vol.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, approved.Role)
	assert.Empty(t, approved.RequestedRole)
	assert.Nil(t, approved.RoleRequestedAt)

	decided := fx.notifier.ofType(domain.NotificationManagerApproved)
	require.Len(t, decided, 1)
	assert.Equal(t, vol.ID, decided[0].RecipientID)

	pending, err = fx.service.ListApplications(ctx, domain.PageQuery{})
	require.NoError(t, err)
	assert.Empty(t, pending.Users)

	_, err = fx.service.Apply(ctx, domain.Actor{ID: vol.ID, Name: vol.Name, Role: domain.RoleManager}, domain.ManagerApplicationRequest{})
	assert.ErrorIs(t, err, domain.ErrNotVolunteer)
}

func TestManagerApplication_RejectKeepsVolunteer(t *testing.T) {
	fx := newManagerFixture(t)
	ctx := context.Background()
	vol := fx.addUser(t, "Wes", domain.RoleVolunteer)

	_, err := fx.service.Reject(ctx, fx.admin, vol.ID)
	assert.ErrorIs(t, err, domain.ErrNoPendingApplication)

	_, err = fx.service.Apply(ctx, vol, domain.ManagerApplicationRequest{})
	require.NoError(t, err)

	rejected, err := fx.service.Reject(ctx, fx.admin, vol.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleVolunteer, rejected.Role)
	assert.Empty(t, rejected.RequestedRole)
	assert.Len(t, fx.notifier.ofType(domain.NotificationManagerRejected), 1)

	// a rejected volunteer may apply again
	_, err = fx.service.Apply(ctx, vol, domain.ManagerApplicationRequest{})
	assert.NoError(t, err)

	_, err = fx.service.Approve(ctx, fx.admin, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateRole(t *testing.T) {
	fx := newManagerFixture(t)
	ctx := context.Background()
	vol := fx.addUser(t, "Xia", domain.RoleVolunteer)

	updated, err := fx.service.UpdateRole(ctx, fx.admin, vol.ID, domain.UpdateRoleRequest{Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
	sent := fx.notifier.ofType(domain.NotificationRoleUpdated)
	require.Len(t, sent, 1)
	assert.Equal(t, vol.ID, sent[0].RecipientID)

	_, err = fx.service.UpdateRole(ctx, fx.admin, vol.ID, domain.UpdateRoleRequest{Role: "owner"})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	_, err = fx.service.UpdateRole(ctx, fx.admin, fx.admin.ID, domain.UpdateRoleRequest{Role: "volunteer"})
	assert.ErrorIs(t, err, domain.ErrChangeOwnRole)

	_, err = fx.service.UpdateRole(ctx, fx.admin, "not-a-uuid", domain.UpdateRoleRequest{Role: "manager"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestEnsureAdmin(t *testing.T) {
	repo := newFakeUserRepository()
	svc := NewManagerService(repo, &recordingNotifier{}, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "", "secret1", ""))
	assert.Empty(t, repo.users)

	require.NoError(t, svc.EnsureAdmin(ctx, "nopass@example.com", "", ""))
	assert.Empty(t, repo.users)

	require.NoError(t, svc.EnsureAdmin(ctx, " Boss@Example.com ", "secret1", ""))
	created, err := repo.GetUserByEmail(ctx, "boss@example.com")
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleAdmin), created.Role)
	assert.Equal(t, "Administrator", created.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret1")))

	// idempotent on restart
	require.NoError(t, svc.EnsureAdmin(ctx, "boss@example.com", "other", "Boss"))
	assert.Len(t, repo.users, 1)

	users := newTestUserService(repo)
	res, err := users.Register(ctx, domain.RegisterRequest{Name: "Yan", Email: "yan@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, svc.EnsureAdmin(ctx, "yan@example.com", "", ""))
	promoted, err := repo.GetUserByID(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleAdmin), promoted.Role)
}
