package membership

import (
	"context"
	"sync"
	"testing"
	"time"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/entities"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeMembershipRepository struct {
	mu          sync.Mutex
	memberships []*entities.Membership
}

func (f *fakeMembershipRepository) CreateMembership(ctx context.Context, m *entities.Membership) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.memberships {
		if existing.Email == m.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	f.memberships = append(f.memberships, m)
	return nil
}

func (f *fakeMembershipRepository) find(match func(*entities.Membership) bool) (*entities.Membership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.memberships {
		if match(m) {
			out := *m
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMembershipRepository) GetMembershipByID(ctx context.Context, id string) (*entities.Membership, error) {
	return f.find(func(m *entities.Membership) bool { return m.ID.String() == id })
}

func (f *fakeMembershipRepository) GetMembershipByEmail(ctx context.Context, email string) (*entities.Membership, error) {
	return f.find(func(m *entities.Membership) bool { return m.Email == email })
}

func (f *fakeMembershipRepository) ListMemberships(ctx context.Context, filter domain.MembershipFilter) ([]*entities.Membership, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Membership
	for _, m := range f.memberships {
		if (filter.Status == "" || m.Status == filter.Status) && (filter.MembershipType == "" || m.MembershipType == filter.MembershipType) {
			out = append(out, m)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeMembershipRepository) UpdateMembership(ctx context.Context, id string, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.memberships {
		if m.ID.String() != id {
			continue
		}
		for column, value := range updates {
			switch column {
			case "status":
				m.Status = value.(string)
			case "verification_status":
				m.VerificationStatus = value.(bool)
			case "full_name":
				m.FullName = value.(string)
			case "membership_type":
				m.MembershipType = value.(string)
			case "interests":
				m.Interests = value.(pq.StringArray)
			}
		}
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeMembershipRepository) countBy(key func(*entities.Membership) string) []Count {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := map[string]int64{}
	for _, m := range f.memberships {
		counts[key(m)]++
	}
	var rows []Count
	for k, c := range counts {
		rows = append(rows, Count{Key: k, Count: c})
	}
	return rows
}

func (f *fakeMembershipRepository) CountByStatus(ctx context.Context) ([]Count, error) {
	return f.countBy(func(m *entities.Membership) string { return m.Status }), nil
}

func (f *fakeMembershipRepository) CountByType(ctx context.Context) ([]Count, error) {
	return f.countBy(func(m *entities.Membership) string { return m.MembershipType }), nil
}

type fakeMailer struct {
	sent []string
}

func (m *fakeMailer) Send(toEmail string, subject string, body string) error {
	m.sent = append(m.sent, toEmail)
	return nil
}

func membershipRequest(email string) domain.RegisterMembershipRequest {
	return domain.RegisterMembershipRequest{
		FullName:    "Dewi Lestari",
		Email:       email,
		Phone:       "0812-3456",
		Address:     "Jl. Merdeka 1",
		AcceptTerms: true,
	}
}

func TestRegister_Defaults(t *testing.T) {
	mailer := &fakeMailer{}
	service := NewMembershipService(&fakeMembershipRepository{}, mailer, zap.NewNop())

	res, err := service.Register(context.Background(), membershipRequest("Dewi@Example.com"))
	require.NoError(t, err)
	assert.Equal(t, domain.MembershipTypeBasic, res.MembershipType)
	assert.Equal(t, domain.MembershipStatusPending, res.Status)
	assert.False(t, res.VerificationStatus)
	assert.Equal(t, []string{}, res.Interests)
	assert.Equal(t, "dewi@example.com", res.Email)
	assert.Equal(t, []string{"dewi@example.com"}, mailer.sent)
}

func TestRegister_TermsRequired(t *testing.T) {
	service := NewMembershipService(&fakeMembershipRepository{}, &fakeMailer{}, zap.NewNop())
	req := membershipRequest("dewi@example.com")
	req.AcceptTerms = false

	_, err := service.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrTermsNotAccepted)
}

func TestRegister_DuplicateAndReopen(t *testing.T) {
	repo := &fakeMembershipRepository{}
	service := NewMembershipService(repo, &fakeMailer{}, zap.NewNop())
	ctx := context.Background()

	first, err := service.Register(ctx, membershipRequest("dewi@example.com"))
	require.NoError(t, err)

	_, err = service.Register(ctx, membershipRequest("dewi@example.com"))
	assert.ErrorIs(t, err, domain.ErrMembershipRegistered)

	_, err = service.Reject(ctx, first.ID)
	require.NoError(t, err)

	req := membershipRequest("dewi@example.com")
	req.MembershipType = "vip"
	reopened, err := service.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, reopened.ID)
	assert.Equal(t, domain.MembershipStatusPending, reopened.Status)
	assert.Equal(t, "vip", reopened.MembershipType)
	assert.Len(t, repo.memberships, 1)
}

func TestApproveAndReject(t *testing.T) {
	service := NewMembershipService(&fakeMembershipRepository{}, &fakeMailer{}, zap.NewNop())
	ctx := context.Background()
	created, err := service.Register(ctx, membershipRequest("dewi@example.com"))
	require.NoError(t, err)

	approved, err := service.Approve(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MembershipStatusActive, approved.Status)
	assert.True(t, approved.VerificationStatus)

	rejected, err := service.Reject(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MembershipStatusInactive, rejected.Status)

	_, err = service.Approve(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrMembershipNotFound)
	_, err = service.Reject(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrMembershipNotFound)
}

func TestStatistics(t *testing.T) {
	service := NewMembershipService(&fakeMembershipRepository{}, &fakeMailer{}, zap.NewNop())
	ctx := context.Background()

	a, err := service.Register(ctx, membershipRequest("a@example.com"))
	require.NoError(t, err)
	req := membershipRequest("b@example.com")
	req.MembershipType = "premium"
	_, err = service.Register(ctx, req)
	require.NoError(t, err)
	_, err = service.Approve(ctx, a.ID)
	require.NoError(t, err)

	stats, err := service.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.MembershipCounts{Total: 2, Active: 1, Pending: 1}, stats.Stats)
	assert.Equal(t, []domain.MembershipTypeStatistic{
		{MembershipType: "basic", Count: 1},
		{MembershipType: "premium", Count: 1},
	}, stats.TypeStats)
}

func TestListMemberships_Filter(t *testing.T) {
	service := NewMembershipService(&fakeMembershipRepository{}, &fakeMailer{}, zap.NewNop())
	ctx := context.Background()
	for _, email := range []string{"a@example.com", "b@example.com"} {
		_, err := service.Register(ctx, membershipRequest(email))
		require.NoError(t, err)
	}

	res, err := service.ListMemberships(ctx, domain.MembershipFilter{Status: domain.MembershipStatusPending})
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Pagination.Total)
	assert.Equal(t, 10, res.Pagination.Limit)

	res, err = service.ListMemberships(ctx, domain.MembershipFilter{Status: domain.MembershipStatusActive})
	require.NoError(t, err)
	assert.Empty(t, res.Memberships)
}
