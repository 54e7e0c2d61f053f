package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vitalrec/health-api/internal/model"
	"github.com/vitalrec/health-api/internal/repository"
	"github.com/vitalrec/health-api/pkg/auth"
	apperrors "github.com/vitalrec/health-api/pkg/errors"
	"github.com/vitalrec/health-api/pkg/security"
)

const bcryptCost = 12

// Config carries the token lifetimes. They must match what the JWT service
// signs into the exp claim, so both are built from the same source in main.
type Config struct {
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type Service struct {
	userRepo    repository.UserRepository
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
	tokenRepo   repository.TokenRepository
	jwtSvc      auth.JWTService
	hasher      security.PasswordHasher
	cfg         Config
}

func NewService(
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	tokenRepo repository.TokenRepository,
	jwtSvc auth.JWTService,
	cfg Config,
) *Service {
	return &Service{
		userRepo:    userRepo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		tokenRepo:   tokenRepo,
		jwtSvc:      jwtSvc,
		hasher:      security.NewBcryptHasher(bcryptCost),
		cfg:         cfg,
	}
}

// Register creates a user account plus its role profile atomically. Patients
// get a generated UID; doctors must present an unused license number.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) error {
	exists, err := s.userRepo.ExistsUsername(ctx, req.Username)
	if err != nil {
		return apperrors.Internal(err)
	}
	if exists {
		return apperrors.Conflict("username already exists", nil)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return apperrors.BadRequest("invalid password", err)
	}

	user := &model.User{
		Base:         model.Base{ID: uuid.New()},
		Username:     req.Username,
		PasswordHash: hash,
		Role:         req.Role,
	}

	switch req.Role {
	case model.RolePatient:
		patient := &model.Patient{
			Base:                         model.Base{ID: uuid.New()},
			UserID:                       user.ID,
			UID:                          uuid.NewString(),
			Name:                         req.Name,
			DateOfBirth:                  req.DateOfBirth,
			Gender:                       req.Gender,
			ContactInfo:                  req.ContactInfo,
			EmergencyContactName:         req.EmergencyContactName,
			EmergencyContactRelationship: req.EmergencyContactRelationship,
			EmergencyContactPhone:        req.EmergencyContactPhone,
		}
		if err := s.patientRepo.CreateWithUser(ctx, user, patient); err != nil {
			return apperrors.Internal(err)
		}
	case model.RoleDoctor:
		taken, err := s.doctorRepo.ExistsLicense(ctx, req.LicenseNumber)
		if err != nil {
			return apperrors.Internal(err)
		}
		if taken {
			return apperrors.Conflict("medical license number already registered", nil)
		}
		doctor := &model.Doctor{
			Base:           model.Base{ID: uuid.New()},
			UserID:         user.ID,
			Name:           req.Name,
			Specialization: req.Specialization,
			LicenseNumber:  req.LicenseNumber,
			ContactInfo:    req.ContactInfo,
		}
		if err := s.doctorRepo.CreateWithUser(ctx, user, doctor); err != nil {
			return apperrors.Internal(err)
		}
	default:
		return apperrors.BadRequest("invalid registration role", nil)
	}

	return nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.Unauthorized(fmt.Errorf("invalid credentials"))
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, apperrors.Unauthorized(fmt.Errorf("invalid credentials"))
	}

	return s.issueTokens(ctx, user)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	valid, err := s.tokenRepo.IsValid(ctx, claims.UserID, refreshToken)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if !valid {
		return nil, apperrors.Unauthorized(fmt.Errorf("refresh token revoked"))
	}

	user, err := s.userRepo.Get(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized(fmt.Errorf("user not found"))
	}

	return s.issueTokens(ctx, user)
}

func (s *Service) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.tokenRepo.Revoke(ctx, userID); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) ValidateToken(token string) (*auth.Claims, error) {
	return s.jwtSvc.ValidateToken(token)
}

func (s *Service) issueTokens(ctx context.Context, user *model.User) (*model.TokenResponse, error) {
	access, err := s.jwtSvc.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to generate token: %w", err))
	}

	refresh, err := s.jwtSvc.GenerateRefreshToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to generate token: %w", err))
	}

	if err := s.tokenRepo.Save(ctx, user.ID, refresh, s.cfg.RefreshTokenTTL); err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(s.cfg.AccessTokenTTL),
		Role:         user.Role,
	}, nil
}
