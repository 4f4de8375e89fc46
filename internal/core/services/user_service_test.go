package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/farm_ledger_app/internal/apperrors"
	"github.com/SscSPs/farm_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/farm_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger_app/internal/core/services"
	"github.com/SscSPs/farm_ledger_app/internal/dto"
	"github.com/SscSPs/farm_ledger_app/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo     *MockUserRepository
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewUserService(suite.mockUserRepo, suite.mockCategoryRepo)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (suite *UserServiceTestSuite) TestRegister_SeedsDefaultCategories() {
	ctx := context.Background()
	req := dto.RegisterRequest{Email: " Tu@Farm.VN ", Password: "supersecret", FullName: "Anh Tư"}

	var saved domain.User
	suite.mockUserRepo.On("SaveUserInTx", ctx, mock.Anything, mock.AnythingOfType("domain.User")).Run(func(args mock.Arguments) {
		saved = args.Get(2).(domain.User)
	}).Return(nil).Once()

	var seeded []domain.Category
	suite.mockCategoryRepo.On("SaveCategoriesInTx", ctx, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		seeded = args.Get(2).([]domain.Category)
	}).Return(nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("tu@farm.vn", user.Email)
	suite.Equal(domain.RoleEditor, user.Role)
	suite.Nil(user.ParentID)
	suite.NotEqual("supersecret", saved.PasswordHash)
	suite.True(utils.CheckPasswordHash("supersecret", saved.PasswordHash))

	suite.Require().Len(seeded, 7)
	names := make(map[domain.Flow][]string)
	for _, c := range seeded {
		suite.Equal(user.UserID, c.OwnerID)
		names[c.Flow] = append(names[c.Flow], c.Name)
	}
	suite.Equal([]string{"Bán cá", "Khác"}, names[domain.FlowIncome])
	suite.Equal([]string{"Thức ăn", "Con giống", "Thuốc", "Điện", "Nhân công"}, names[domain.FlowExpense])
	suite.Equal(1, suite.mockUserRepo.commits)
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateEmailRollsBack() {
	ctx := context.Background()
	suite.mockUserRepo.On("SaveUserInTx", ctx, mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.Register(ctx, dto.RegisterRequest{Email: "tu@farm.vn", Password: "supersecret"})

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Equal(1, suite.mockUserRepo.rollbacks)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "SaveCategoriesInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateViewer_BoundToOwner() {
	ctx := context.Background()
	suite.mockUserRepo.On("SaveUserInTx", ctx, mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleViewer && u.ParentID != nil && *u.ParentID == "owner-1" && u.CreatedBy == "owner-1"
	})).Return(nil).Once()

	viewer, err := suite.service.CreateViewer(ctx, editorSession, dto.CreateViewerRequest{Email: "ba@farm.vn", Password: "readonly1"})

	suite.Require().NoError(err)
	suite.Equal("owner-1", viewer.OwnerID())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateViewer_ViewerForbidden() {
	_, err := suite.service.CreateViewer(context.Background(), viewerSession, dto.CreateViewerRequest{Email: "x@farm.vn", Password: "readonly1"})

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser() {
	ctx := context.Background()
	hash, err := utils.HashPassword("supersecret")
	suite.Require().NoError(err)
	stored := &domain.User{UserID: "u1", Email: "tu@farm.vn", PasswordHash: hash, Role: domain.RoleEditor}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "tu@farm.vn").Return(stored, nil)
	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@farm.vn").Return(nil, apperrors.ErrNotFound)

	user, err := suite.service.AuthenticateUser(ctx, "tu@farm.vn", "supersecret")
	suite.Require().NoError(err)
	suite.Equal("u1", user.UserID)

	_, err = suite.service.AuthenticateUser(ctx, "tu@farm.vn", "wrong")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)

	_, err = suite.service.AuthenticateUser(ctx, "ghost@farm.vn", "supersecret")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestResolveSession() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, "viewer-1").Return(&domain.User{
		UserID: "viewer-1", Email: "ba@farm.vn", Role: domain.RoleViewer, ParentID: strPtr("owner-1"),
	}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, "gone").Return(nil, apperrors.ErrNotFound).Once()

	session, err := suite.service.ResolveSession(ctx, "viewer-1")
	suite.Require().NoError(err)
	suite.Equal(domain.Session{UserID: "viewer-1", OwnerID: "owner-1", Role: domain.RoleViewer, Actor: "ba@farm.vn"}, session)
	suite.False(session.CanWrite())

	_, err = suite.service.ResolveSession(ctx, "gone")
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, "missing")

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}
