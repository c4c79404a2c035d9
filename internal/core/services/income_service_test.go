package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tesorapp/tesoreria_backend/internal/apperrors"
	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/tesorapp/tesoreria_backend/internal/core/ports/repositories"
	"github.com/tesorapp/tesoreria_backend/internal/core/services"
	"github.com/tesorapp/tesoreria_backend/internal/dto"
	"github.com/tesorapp/tesoreria_backend/internal/viewstate"
)

// MockIncomeRepository is a mock type for the IncomeRepository interface
type MockIncomeRepository struct {
	mock.Mock
}

func (m *MockIncomeRepository) CreateIncome(ctx context.Context, income *domain.Income) error {
	args := m.Called(ctx, income)
	return args.Error(0)
}

func (m *MockIncomeRepository) GetIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error) {
	args := m.Called(ctx, incomeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Income), args.Error(1)
}

func (m *MockIncomeRepository) ListIncomes(ctx context.Context, filter portsrepo.IncomeListFilter) ([]domain.Income, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Income), args.Error(1)
}

func (m *MockIncomeRepository) UpdateIncome(ctx context.Context, income *domain.Income) error {
	args := m.Called(ctx, income)
	return args.Error(0)
}

func (m *MockIncomeRepository) DeleteIncome(ctx context.Context, incomeID string) error {
	args := m.Called(ctx, incomeID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type IncomeServiceTestSuite struct {
	suite.Suite
	mockIncomeRepo   *MockIncomeRepository
	mockUserRepo     *MockUserRepository
	mockCategoryRepo *MockCategoryRepository
	mockAccountRepo  *MockAccountRepository
	cache            *viewstate.Collection[domain.Income]
	service          *services.IncomeService
}

func (suite *IncomeServiceTestSuite) SetupTest() {
	suite.mockIncomeRepo = new(MockIncomeRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.cache = viewstate.NewCollection(func(in domain.Income) string { return in.IncomeID })

	repos := portsrepo.RepositoryProvider{
		IncomeRepo:   suite.mockIncomeRepo,
		UserRepo:     suite.mockUserRepo,
		CategoryRepo: suite.mockCategoryRepo,
		AccountRepo:  suite.mockAccountRepo,
	}
	suite.service = services.NewIncomeService(repos, nil, "income-receipts", suite.cache)
}

func (suite *IncomeServiceTestSuite) incomeCategory(categoryID string) *domain.Category {
	return &domain.Category{
		CategoryID: categoryID,
		Kind:       domain.CategoryIncome,
		Name:       "Donations",
		IsActive:   true,
	}
}

// --- Test Cases ---

func (suite *IncomeServiceTestSuite) TestRecordIncome_Success() {
	ctx := context.Background()
	treasurerID := uuid.NewString()
	categoryID := uuid.NewString()
	accountID := uuid.NewString()
	treasurer := &domain.User{UserID: treasurerID, Role: domain.RoleTreasurer, IsActive: true}
	account := &domain.Account{AccountID: accountID, Name: "Cash box", Type: domain.AccountCash, IsActive: true}
	req := dto.CreateIncomeRequest{
		Description: "Sunday collection",
		Amount:      decimal.NewFromFloat(480.25),
		CategoryID:  categoryID,
		AccountID:   accountID,
		DepositDate: time.Now(),
	}

	suite.mockUserRepo.On("GetUserByID", ctx, treasurerID).Return(treasurer, nil).Once()
	suite.mockCategoryRepo.On("GetCategoryByID", ctx, categoryID).Return(suite.incomeCategory(categoryID), nil).Once()
	suite.mockAccountRepo.On("GetAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockIncomeRepo.On("CreateIncome", ctx, mock.AnythingOfType("*domain.Income")).
		Run(func(args mock.Arguments) {
			in := args.Get(1).(*domain.Income)
			stored := *in
			suite.mockIncomeRepo.On("GetIncomeByID", ctx, in.IncomeID).Return(&stored, nil).Once()
		}).Return(nil).Once()

	income, err := suite.service.RecordIncome(ctx, treasurerID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(income)
	suite.Equal(treasurerID, income.SubmittedBy)
	suite.True(income.Amount.Equal(decimal.NewFromFloat(480.25)))

	_, ok := suite.cache.Get(income.IncomeID)
	suite.True(ok)

	suite.mockIncomeRepo.AssertExpectations(suite.T())
}

func (suite *IncomeServiceTestSuite) TestRecordIncome_PurchaseManagerForbidden() {
	ctx := context.Background()
	actorID := uuid.NewString()
	actor := &domain.User{UserID: actorID, Role: domain.RolePurchaseManager, IsActive: true}
	req := dto.CreateIncomeRequest{
		Description: "Not allowed",
		Amount:      decimal.NewFromInt(100),
		CategoryID:  uuid.NewString(),
		AccountID:   uuid.NewString(),
		DepositDate: time.Now(),
	}

	suite.mockUserRepo.On("GetUserByID", ctx, actorID).Return(actor, nil).Once()

	income, err := suite.service.RecordIncome(ctx, actorID, req)

	suite.Require().Error(err)
	suite.Nil(income)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockIncomeRepo.AssertNotCalled(suite.T(), "CreateIncome", mock.Anything, mock.Anything)
}

func (suite *IncomeServiceTestSuite) TestRecordIncome_WrongCategoryKind() {
	ctx := context.Background()
	treasurerID := uuid.NewString()
	categoryID := uuid.NewString()
	treasurer := &domain.User{UserID: treasurerID, Role: domain.RoleTreasurer, IsActive: true}
	purchaseCategory := &domain.Category{
		CategoryID: categoryID,
		Kind:       domain.CategoryPurchase,
		Name:       "Supplies",
		IsActive:   true,
	}
	req := dto.CreateIncomeRequest{
		Description: "Mislabeled",
		Amount:      decimal.NewFromInt(100),
		CategoryID:  categoryID,
		AccountID:   uuid.NewString(),
		DepositDate: time.Now(),
	}

	suite.mockUserRepo.On("GetUserByID", ctx, treasurerID).Return(treasurer, nil).Once()
	suite.mockCategoryRepo.On("GetCategoryByID", ctx, categoryID).Return(purchaseCategory, nil).Once()

	income, err := suite.service.RecordIncome(ctx, treasurerID, req)

	suite.Require().Error(err)
	suite.Nil(income)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockIncomeRepo.AssertNotCalled(suite.T(), "CreateIncome", mock.Anything, mock.Anything)
}

func (suite *IncomeServiceTestSuite) TestUpdateIncome_PartialPatch() {
	ctx := context.Background()
	treasurerID := uuid.NewString()
	incomeID := uuid.NewString()
	treasurer := &domain.User{UserID: treasurerID, Role: domain.RoleAdministrator, IsActive: true}
	existing := &domain.Income{
		IncomeID:    incomeID,
		Description: "Old description",
		Amount:      decimal.NewFromInt(50),
		CategoryID:  uuid.NewString(),
		AccountID:   uuid.NewString(),
		DepositDate: time.Now().Add(-24 * time.Hour),
		SubmittedBy: treasurerID,
	}
	newDescription := "Corrected description"

	suite.mockUserRepo.On("GetUserByID", ctx, treasurerID).Return(treasurer, nil).Once()
	suite.mockIncomeRepo.On("GetIncomeByID", ctx, incomeID).Return(existing, nil).Once()
	suite.mockIncomeRepo.On("UpdateIncome", ctx, mock.MatchedBy(func(in *domain.Income) bool {
		return in.Description == newDescription && in.Amount.Equal(decimal.NewFromInt(50))
	})).Run(func(args mock.Arguments) {
		stored := *args.Get(1).(*domain.Income)
		suite.mockIncomeRepo.On("GetIncomeByID", ctx, incomeID).Return(&stored, nil).Once()
	}).Return(nil).Once()

	updated, err := suite.service.UpdateIncome(ctx, treasurerID, incomeID, dto.UpdateIncomeRequest{
		Description: &newDescription,
	})

	suite.Require().NoError(err)
	suite.Equal(newDescription, updated.Description)
	suite.mockIncomeRepo.AssertExpectations(suite.T())
}

func (suite *IncomeServiceTestSuite) TestDeleteIncome_Success() {
	ctx := context.Background()
	treasurerID := uuid.NewString()
	incomeID := uuid.NewString()
	treasurer := &domain.User{UserID: treasurerID, Role: domain.RoleTreasurer, IsActive: true}
	suite.cache.Replace([]domain.Income{{IncomeID: incomeID}})

	suite.mockUserRepo.On("GetUserByID", ctx, treasurerID).Return(treasurer, nil).Once()
	suite.mockIncomeRepo.On("DeleteIncome", ctx, incomeID).Return(nil).Once()

	err := suite.service.DeleteIncome(ctx, treasurerID, incomeID)

	suite.Require().NoError(err)
	_, ok := suite.cache.Get(incomeID)
	suite.False(ok)
	suite.mockIncomeRepo.AssertExpectations(suite.T())
}

func (suite *IncomeServiceTestSuite) TestListIncomes_UnfilteredRefreshesCache() {
	ctx := context.Background()
	incomes := []domain.Income{
		{IncomeID: uuid.NewString(), Amount: decimal.NewFromInt(100)},
		{IncomeID: uuid.NewString(), Amount: decimal.NewFromInt(200)},
	}

	suite.mockIncomeRepo.On("ListIncomes", ctx, portsrepo.IncomeListFilter{}).Return(incomes, nil).Once()

	listed, err := suite.service.ListIncomes(ctx, dto.ListIncomesParams{})

	suite.Require().NoError(err)
	suite.Len(listed, 2)
	suite.Equal(2, suite.cache.Len())
	suite.mockIncomeRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestIncomeService(t *testing.T) {
	suite.Run(t, new(IncomeServiceTestSuite))
}
