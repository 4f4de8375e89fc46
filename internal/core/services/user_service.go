package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/farm_ledger_app/internal/apperrors"
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/SscSPs/farm_ledger_app/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Categories every new editor starts with, in display order.
var (
	defaultIncomeCategories  = []string{"Bán cá", "Khác"}
	defaultExpenseCategories = []string{"Thức ăn", "Con giống", "Thuốc", "Điện", "Nhân công"}
)

type userService struct {
	BaseService
	userRepo     portsrepo.UserRepositoryWithTx
	categoryRepo portsrepo.CategoryWriter
	now          func() time.Time
}

// NewUserService creates the account service. categoryRepo seeds the
// default categories of newly registered editors.
func NewUserService(userRepo portsrepo.UserRepositoryWithTx, categoryRepo portsrepo.CategoryWriter) portssvc.UserSvcFacade {
	return &userService{
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		now:          time.Now,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListViewers(ctx context.Context, session domain.Session) ([]domain.User, error) {
	viewers, err := s.userRepo.ListViewers(ctx, session.OwnerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list viewers", slog.String("owner_id", session.OwnerID))
		return nil, err
	}
	return viewers, nil
}

// Register creates an editor owning its own data and seeds the default
// categories in the same transaction.
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	user, err := s.newUser(req.Email, req.Password, req.FullName, domain.RoleEditor, nil)
	if err != nil {
		return nil, err
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	categories := defaultCategories(domain.NewSession(*user), s.now)

	err = runInTx(ctx, s.userRepo, func(tx pgx.Tx) error {
		if err := s.userRepo.SaveUserInTx(ctx, tx, *user); err != nil {
			return err
		}
		return s.categoryRepo.SaveCategoriesInTx(ctx, tx, categories)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to register user")
		}
		return nil, err
	}

	s.LogInfo(ctx, "User registered",
		slog.String("user_id", user.UserID),
		slog.Int("seeded_categories", len(categories)))
	return user, nil
}

// CreateViewer adds a read-only login whose owner is the session's owner.
func (s *userService) CreateViewer(ctx context.Context, session domain.Session, req dto.CreateViewerRequest) (*domain.User, error) {
	if err := s.AuthorizeWrite(ctx, session); err != nil {
		return nil, err
	}

	viewer, err := s.newUser(req.Email, req.Password, req.FullName, domain.RoleViewer, strPtr(session.OwnerID))
	if err != nil {
		return nil, err
	}
	viewer.CreatedBy = session.UserID
	viewer.LastUpdatedBy = session.UserID

	err = runInTx(ctx, s.userRepo, func(tx pgx.Tx) error {
		return s.userRepo.SaveUserInTx(ctx, tx, *viewer)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to create viewer", slog.String("owner_id", session.OwnerID))
		}
		return nil, err
	}
	return viewer, nil
}

func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, refreshTokenExpiryTime); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", slog.String("user_id", userID))
		return err
	}
	return nil
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to clear refresh token", slog.String("user_id", userID))
		return err
	}
	return nil
}

// AuthenticateUser checks a password login. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}
	return user, nil
}

func (s *userService) ResolveSession(ctx context.Context, userID string) (domain.Session, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.Session{}, fmt.Errorf("%w: user no longer exists", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to resolve session", slog.String("user_id", userID))
		return domain.Session{}, err
	}
	return domain.NewSession(*user), nil
}

func (s *userService) newUser(email, password, fullName string, role domain.UserRole, parentID *string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	id := uuid.NewString()
	ts := s.now().UTC()
	return &domain.User{
		UserID:       id,
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: hash,
		Role:         role,
		ParentID:     parentID,
		AuditFields: domain.AuditFields{
			CreatedAt:     ts,
			LastUpdatedAt: ts,
			Version:       1,
		},
	}, nil
}

func defaultCategories(session domain.Session, now func() time.Time) []domain.Category {
	out := make([]domain.Category, 0, len(defaultIncomeCategories)+len(defaultExpenseCategories))
	add := func(flow domain.Flow, names []string) {
		for i, name := range names {
			out = append(out, domain.Category{
				CategoryID:  uuid.NewString(),
				OwnerID:     session.OwnerID,
				Name:        name,
				Flow:        flow,
				SortOrder:   i,
				IsActive:    true,
				AuditFields: newAuditFields(session, now),
			})
		}
	}
	add(domain.FlowIncome, defaultIncomeCategories)
	add(domain.FlowExpense, defaultExpenseCategories)
	return out
}
