package blooddonation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"volunteerhub-backend/domain"
	"volunteerhub-backend/entities"
	"volunteerhub-backend/internal/utils/mailing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeBloodDonationRepository struct {
	mu        sync.Mutex
	donations []*entities.BloodDonation
}

func (f *fakeBloodDonationRepository) CreateDonation(ctx context.Context, donation *entities.BloodDonation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	donation.ID = uuid.New()
	donation.CreatedAt = time.Now()
	f.donations = append(f.donations, donation)
	return nil
}

func (f *fakeBloodDonationRepository) GetDonationByID(ctx context.Context, id string) (*entities.BloodDonation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.donations {
		if d.ID.String() == id {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBloodDonationRepository) GetOpenDonationByEmail(ctx context.Context, email string) (*entities.BloodDonation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.donations {
		if d.DonorEmail == email && d.Status != domain.DonationStatusCancelled {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBloodDonationRepository) ListDonations(ctx context.Context, filter domain.DonationFilter) ([]*entities.BloodDonation, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.BloodDonation
	for _, d := range f.donations {
		if (filter.Status == "" || d.Status == filter.Status) && (filter.BloodType == "" || d.BloodType == filter.BloodType) {
			out = append(out, d)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeBloodDonationRepository) UpdateDonation(ctx context.Context, id string, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.donations {
		if d.ID.String() == id {
			if v, ok := updates["status"]; ok {
				d.Status = v.(string)
			}
			if v, ok := updates["notes"]; ok {
				d.Notes = v.(string)
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeBloodDonationRepository) CountByBloodTypeAndStatus(ctx context.Context) ([]StatusCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	buckets := map[[2]string]int64{}
	for _, d := range f.donations {
		buckets[[2]string{d.BloodType, d.Status}]++
	}
	var rows []StatusCount
	for key, count := range buckets {
		rows = append(rows, StatusCount{BloodType: key[0], Status: key[1], Count: count})
	}
	return rows, nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (m *fakeMailer) Send(toEmail string, subject string, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, toEmail)
	return nil
}

func donationRequest(email, bloodType string) domain.RegisterDonationRequest {
	return domain.RegisterDonationRequest{
		DonorName:          "Rina",
		DonorEmail:         email,
		DonorPhone:         "+62 812 0000",
		BloodType:          bloodType,
		PreferredEventDate: "2026-11-01",
	}
}

func TestRegister_DuplicateEmailRejectedUntilCancelled(t *testing.T) {
	repo := &fakeBloodDonationRepository{}
	mailer := &fakeMailer{}
	service := NewBloodDonationService(repo, mailer, zap.NewNop())
	ctx := context.Background()

	first, err := service.Register(ctx, "", donationRequest("Rina@Example.com", "O+"))
	require.NoError(t, err)
	assert.Equal(t, domain.DonationStatusPending, first.Status)
	assert.Equal(t, "rina@example.com", first.DonorEmail)
	assert.Empty(t, first.UserID)
	assert.Equal(t, []string{"rina@example.com"}, mailer.sent)

	_, err = service.Register(ctx, "", donationRequest("rina@example.com", "O+"))
	assert.ErrorIs(t, err, domain.ErrDonationAlreadyPending)

	_, err = service.UpdateStatus(ctx, first.ID, domain.UpdateDonationStatusRequest{Status: domain.DonationStatusCancelled})
	require.NoError(t, err)

	_, err = service.Register(ctx, "", donationRequest("rina@example.com", "O+"))
	assert.NoError(t, err)
}

func TestRegister_AttachesUserAndParsesLastDonation(t *testing.T) {
	service := NewBloodDonationService(&fakeBloodDonationRepository{}, &fakeMailer{}, zap.NewNop())
	userID := uuid.NewString()

	req := donationRequest("budi@example.com", "AB-")
	req.LastDonationDate = "2026-03-15"
	res, err := service.Register(context.Background(), userID, req)
	require.NoError(t, err)
	assert.Equal(t, userID, res.UserID)
	require.NotNil(t, res.LastDonationDate)
	assert.Equal(t, time.March, res.LastDonationDate.Month())

	req = donationRequest("sari@example.com", "A+")
	req.LastDonationDate = "last spring"
	_, err = service.Register(context.Background(), "", req)
	assert.ErrorIs(t, err, domain.ErrInvalidDonationDate)
}

func TestRegister_MailFailureDoesNotFailRegistration(t *testing.T) {
	for _, mailErr := range []error{mailing.ErrMailNotConfigured, errors.New("connection refused")} {
		service := NewBloodDonationService(&fakeBloodDonationRepository{}, &fakeMailer{err: mailErr}, zap.NewNop())

		_, err := service.Register(context.Background(), "", donationRequest("rina@example.com", "O+"))
		assert.NoError(t, err)
	}
}

func TestUpdateStatus(t *testing.T) {
	service := NewBloodDonationService(&fakeBloodDonationRepository{}, &fakeMailer{}, zap.NewNop())
	ctx := context.Background()
	created, err := service.Register(ctx, "", donationRequest("rina@example.com", "O+"))
	require.NoError(t, err)

	notes := "Bring ID"
	updated, err := service.UpdateStatus(ctx, created.ID, domain.UpdateDonationStatusRequest{Status: domain.DonationStatusConfirmed, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, domain.DonationStatusConfirmed, updated.Status)
	assert.Equal(t, "Bring ID", updated.Notes)

	empty := ""
	updated, err = service.UpdateStatus(ctx, created.ID, domain.UpdateDonationStatusRequest{Status: domain.DonationStatusCompleted, Notes: &empty})
	require.NoError(t, err)
	assert.Equal(t, "Bring ID", updated.Notes, "empty notes keep the previous value")

	_, err = service.UpdateStatus(ctx, uuid.NewString(), domain.UpdateDonationStatusRequest{Status: domain.DonationStatusCompleted})
	assert.ErrorIs(t, err, domain.ErrDonationNotFound)
}

func TestStatistics(t *testing.T) {
	repo := &fakeBloodDonationRepository{}
	service := NewBloodDonationService(repo, &fakeMailer{}, zap.NewNop())
	ctx := context.Background()

	for i, bloodType := range []string{"O+", "O+", "A-"} {
		res, err := service.Register(ctx, "", donationRequest(string(rune('a'+i))+"@example.com", bloodType))
		require.NoError(t, err)
		if i == 0 {
			_, err = service.UpdateStatus(ctx, res.ID, domain.UpdateDonationStatusRequest{Status: domain.DonationStatusCompleted})
			require.NoError(t, err)
		}
	}

	stats, err := service.Statistics(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalDonors)
	assert.EqualValues(t, 1, stats.CompletedDonations)
	require.Len(t, stats.Statistics, 2)
	assert.Equal(t, "O+", stats.Statistics[0].BloodType)
	assert.EqualValues(t, 2, stats.Statistics[0].Count)
	assert.Equal(t, map[string]int64{"completed": 1, "pending": 1}, stats.Statistics[0].Statuses)
	assert.Equal(t, "A-", stats.Statistics[1].BloodType)
}
