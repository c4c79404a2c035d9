package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tesorapp/tesoreria_backend/internal/apperrors"
	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	"github.com/tesorapp/tesoreria_backend/internal/core/services"
	"github.com/tesorapp/tesoreria_backend/internal/dto"
)

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      *services.UserService
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

func (suite *UserServiceTestSuite) adminUser(userID string) *domain.User {
	return &domain.User{UserID: userID, Role: domain.RoleAdministrator, IsActive: true}
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestListUsers_AdminOnly() {
	ctx := context.Background()
	actorID := uuid.NewString()
	treasurer := &domain.User{UserID: actorID, Role: domain.RoleTreasurer, IsActive: true}

	suite.mockUserRepo.On("GetUserByID", ctx, actorID).Return(treasurer, nil).Once()

	users, err := suite.service.ListUsers(ctx, actorID)

	suite.Require().Error(err)
	suite.Nil(users)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "ListUsers", mock.Anything)
}

func (suite *UserServiceTestSuite) TestListUsers_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	members := []domain.User{
		{UserID: actorID, Role: domain.RoleAdministrator},
		{UserID: uuid.NewString(), Role: domain.RolePurchaseManager},
	}

	suite.mockUserRepo.On("GetUserByID", ctx, actorID).Return(suite.adminUser(actorID), nil).Once()
	suite.mockUserRepo.On("ListUsers", ctx).Return(members, nil).Once()

	users, err := suite.service.ListUsers(ctx, actorID)

	suite.Require().NoError(err)
	suite.Len(users, 2)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUserRole_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	targetID := uuid.NewString()
	promoted := &domain.User{UserID: targetID, Role: domain.RoleTreasurer, IsActive: true}

	suite.mockUserRepo.On("GetUserByID", ctx, actorID).Return(suite.adminUser(actorID), nil).Once()
	suite.mockUserRepo.On("UpdateUserRole", ctx, targetID, domain.RoleTreasurer).Return(promoted, nil).Once()

	user, err := suite.service.UpdateUserRole(ctx, actorID, targetID, dto.UpdateUserRoleRequest{Role: "treasurer"})

	suite.Require().NoError(err)
	suite.Equal(domain.RoleTreasurer, user.Role)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUserRole_SelfDemotionBlocked() {
	ctx := context.Background()
	actorID := uuid.NewString()

	suite.mockUserRepo.On("GetUserByID", ctx, actorID).Return(suite.adminUser(actorID), nil).Once()

	user, err := suite.service.UpdateUserRole(ctx, actorID, actorID, dto.UpdateUserRoleRequest{Role: "purchase_manager"})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUserRole", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUserRole_UnknownRole() {
	ctx := context.Background()
	actorID := uuid.NewString()

	suite.mockUserRepo.On("GetUserByID", ctx, actorID).Return(suite.adminUser(actorID), nil).Once()

	user, err := suite.service.UpdateUserRole(ctx, actorID, uuid.NewString(), dto.UpdateUserRoleRequest{Role: "superuser"})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUserRole", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestSetUserActive_SelfDeactivationBlocked() {
	ctx := context.Background()
	actorID := uuid.NewString()

	suite.mockUserRepo.On("GetUserByID", ctx, actorID).Return(suite.adminUser(actorID), nil).Once()

	user, err := suite.service.SetUserActive(ctx, actorID, actorID, false)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SetUserActive", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestSetUserActive_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	targetID := uuid.NewString()
	deactivated := &domain.User{UserID: targetID, Role: domain.RolePurchaseManager, IsActive: false}

	suite.mockUserRepo.On("GetUserByID", ctx, actorID).Return(suite.adminUser(actorID), nil).Once()
	suite.mockUserRepo.On("SetUserActive", ctx, targetID, false).Return(deactivated, nil).Once()

	user, err := suite.service.SetUserActive(ctx, actorID, targetID, false)

	suite.Require().NoError(err)
	suite.False(user.IsActive)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
