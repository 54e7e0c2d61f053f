package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vitalrec/health-api/internal/model"
	"github.com/vitalrec/health-api/pkg/auth"
	apperrors "github.com/vitalrec/health-api/pkg/errors"
	"github.com/vitalrec/health-api/pkg/security"
)

type stubUserRepo struct {
	user *model.User
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if s.user == nil || s.user.Username != username {
		return nil, errors.New("sql: no rows in result set")
	}
	return s.user, nil
}
func (s *stubUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, errors.New("sql: no rows in result set")
	}
	return s.user, nil
}
func (s *stubUserRepo) ExistsUsername(ctx context.Context, username string) (bool, error) {
	return s.user != nil && s.user.Username == username, nil
}

type stubPatientRepo struct{}

func (stubPatientRepo) CreateWithUser(ctx context.Context, user *model.User, patient *model.Patient) error {
	return nil
}
func (stubPatientRepo) GetByUID(ctx context.Context, uid string) (*model.Patient, error) {
	return nil, errors.New("sql: no rows in result set")
}
func (stubPatientRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Patient, error) {
	return nil, errors.New("sql: no rows in result set")
}
func (stubPatientRepo) Update(ctx context.Context, patient *model.Patient) error { return nil }
func (stubPatientRepo) ExistsUID(ctx context.Context, uid string) (bool, error)  { return false, nil }

type stubDoctorRepo struct{}

func (stubDoctorRepo) CreateWithUser(ctx context.Context, user *model.User, doctor *model.Doctor) error {
	return nil
}
func (stubDoctorRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Doctor, error) {
	return nil, errors.New("sql: no rows in result set")
}
func (stubDoctorRepo) ExistsLicense(ctx context.Context, licenseNumber string) (bool, error) {
	return false, nil
}

type stubTokenRepo struct {
	savedToken  string
	savedExpiry time.Duration
	revoked     bool
}

func (s *stubTokenRepo) Save(ctx context.Context, userID uuid.UUID, token string, expiry time.Duration) error {
	s.savedToken = token
	s.savedExpiry = expiry
	s.revoked = false
	return nil
}
func (s *stubTokenRepo) IsValid(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	return !s.revoked && token == s.savedToken, nil
}
func (s *stubTokenRepo) Revoke(ctx context.Context, userID uuid.UUID) error {
	s.revoked = true
	return nil
}

const (
	testAccessTTL  = 2 * time.Hour
	testRefreshTTL = 48 * time.Hour
)

func newTestService(t *testing.T, tokens *stubTokenRepo) (*Service, *model.User) {
	t.Helper()

	hash, err := security.NewBcryptHasher(bcrypt.MinCost).Hash("password123")
	require.NoError(t, err)

	user := &model.User{
		Base:         model.Base{ID: uuid.New()},
		Username:     "jo.doe",
		PasswordHash: hash,
		Role:         model.RolePatient,
	}

	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
		Expiry:        testAccessTTL,
		RefreshExpiry: testRefreshTTL,
	})

	svc := NewService(&stubUserRepo{user: user}, stubPatientRepo{}, stubDoctorRepo{}, tokens, jwtSvc, Config{
		AccessTokenTTL:  testAccessTTL,
		RefreshTokenTTL: testRefreshTTL,
	})
	return svc, user
}

// ExpiresAt must track the configured lifetime, the same one signed into
// the JWT exp claim.
func TestLoginExpiryFollowsConfig(t *testing.T) {
	tokens := &stubTokenRepo{}
	svc, _ := newTestService(t, tokens)

	resp, err := svc.Login(context.Background(), "jo.doe", "password123")
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now().Add(testAccessTTL), resp.ExpiresAt, 5*time.Second)
	assert.Equal(t, testRefreshTTL, tokens.savedExpiry)
	assert.Equal(t, model.RolePatient, resp.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t, &stubTokenRepo{})

	_, err := svc.Login(context.Background(), "jo.doe", "not-the-password")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}

func TestRefreshAfterLogoutRejected(t *testing.T) {
	tokens := &stubTokenRepo{}
	svc, user := newTestService(t, tokens)

	resp, err := svc.Login(context.Background(), "jo.doe", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), user.ID))

	_, err = svc.Refresh(context.Background(), resp.RefreshToken)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}
