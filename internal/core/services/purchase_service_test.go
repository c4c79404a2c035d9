package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/tesorapp/tesoreria_backend/internal/apperrors"
	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/tesorapp/tesoreria_backend/internal/core/ports/repositories"
	"github.com/tesorapp/tesoreria_backend/internal/core/services"
	"github.com/tesorapp/tesoreria_backend/internal/dto"
	"github.com/tesorapp/tesoreria_backend/internal/platform/storage"
	"github.com/tesorapp/tesoreria_backend/internal/viewstate"
)

// MockPurchaseRepository is a mock type for the PurchaseRepository interface
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) CreatePurchase(ctx context.Context, purchase *domain.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) GetPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	args := m.Called(ctx, purchaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) ListPurchases(ctx context.Context, filter portsrepo.PurchaseListFilter) ([]domain.Purchase, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) UpdatePurchase(ctx context.Context, purchase *domain.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) DeletePurchase(ctx context.Context, purchaseID string) error {
	args := m.Called(ctx, purchaseID)
	return args.Error(0)
}

func (m *MockPurchaseRepository) CountPurchasesByStatus(ctx context.Context, status domain.PurchaseStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

// MockUserRepository is a mock type for the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUserRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error) {
	args := m.Called(ctx, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SetUserActive(ctx context.Context, userID string, active bool) (*domain.User, error) {
	args := m.Called(ctx, userID, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash *string, expiresAt *time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiresAt)
	return args.Error(0)
}

// MockCategoryRepository is a mock type for the CategoryRepository interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, kind domain.CategoryKind, includeInactive bool) ([]domain.Category, error) {
	args := m.Called(ctx, kind, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) SetCategoryActive(ctx context.Context, categoryID string, active bool) (*domain.Category, error) {
	args := m.Called(ctx, categoryID, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

// MockAccountRepository is a mock type for the AccountRepository interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SetAccountActive(ctx context.Context, accountID string, active bool) (*domain.Account, error) {
	args := m.Called(ctx, accountID, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// MockSettingsRepository is a mock type for the SettingsRepository interface
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetSettings(ctx context.Context) (*domain.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockSettingsRepository) UpdateSettings(ctx context.Context, settings *domain.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// MockBlobStore is a mock type for the storage.BlobStore interface
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	args := m.Called(ctx, bucket, path, data, contentType)
	return args.Error(0)
}

func (m *MockBlobStore) PublicURL(bucket, path string) string {
	args := m.Called(bucket, path)
	return args.String(0)
}

// MockNotifier is a mock type for the notify.Notifier interface
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, message string) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

// --- Test Suite Setup ---

type PurchaseServiceTestSuite struct {
	suite.Suite
	mockPurchaseRepo *MockPurchaseRepository
	mockUserRepo     *MockUserRepository
	mockCategoryRepo *MockCategoryRepository
	mockAccountRepo  *MockAccountRepository
	mockSettingsRepo *MockSettingsRepository
	mockBlobStore    *MockBlobStore
	mockNotifier     *MockNotifier
	cache            *viewstate.Collection[domain.Purchase]
	service          *services.PurchaseService
}

func (suite *PurchaseServiceTestSuite) SetupTest() {
	suite.mockPurchaseRepo = new(MockPurchaseRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockSettingsRepo = new(MockSettingsRepository)
	suite.mockBlobStore = new(MockBlobStore)
	suite.mockNotifier = new(MockNotifier)
	suite.cache = viewstate.NewCollection(func(p domain.Purchase) string { return p.PurchaseID })

	repos := portsrepo.RepositoryProvider{
		PurchaseRepo: suite.mockPurchaseRepo,
		UserRepo:     suite.mockUserRepo,
		CategoryRepo: suite.mockCategoryRepo,
		AccountRepo:  suite.mockAccountRepo,
		SettingsRepo: suite.mockSettingsRepo,
	}
	suite.service = services.NewPurchaseService(repos, suite.mockBlobStore, "receipts", suite.mockNotifier, nil, suite.cache)
}

func (suite *PurchaseServiceTestSuite) purchaseCategory(categoryID string) *domain.Category {
	return &domain.Category{
		CategoryID: categoryID,
		Kind:       domain.CategoryPurchase,
		Name:       "Supplies",
		IsActive:   true,
	}
}

// --- SubmitPurchase ---

func (suite *PurchaseServiceTestSuite) TestSubmitPurchase_Success() {
	ctx := context.Background()
	submitterID := uuid.NewString()
	categoryID := uuid.NewString()
	req := dto.CreatePurchaseRequest{
		Description:  "Cleaning supplies",
		Amount:       decimal.NewFromFloat(123.45),
		CategoryID:   categoryID,
		PurchaseDate: time.Now(),
	}

	suite.mockCategoryRepo.On("GetCategoryByID", ctx, categoryID).Return(suite.purchaseCategory(categoryID), nil).Once()

	var savedID string
	suite.mockPurchaseRepo.On("CreatePurchase", ctx, mock.AnythingOfType("*domain.Purchase")).
		Run(func(args mock.Arguments) {
			p := args.Get(1).(*domain.Purchase)
			savedID = p.PurchaseID
			stored := *p
			suite.mockPurchaseRepo.On("GetPurchaseByID", ctx, p.PurchaseID).Return(&stored, nil).Once()
		}).Return(nil).Once()

	purchase, err := suite.service.SubmitPurchase(ctx, submitterID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(purchase)
	suite.Equal(savedID, purchase.PurchaseID)
	suite.Equal(domain.PurchasePending, purchase.Status)
	suite.Equal(submitterID, purchase.SubmittedBy)
	suite.True(purchase.Amount.Equal(decimal.NewFromFloat(123.45)))
	suite.Nil(purchase.AccountID)
	suite.Nil(purchase.ReceiptURL)

	// The new purchase lands at the front of the cached listing.
	cached, ok := suite.cache.Get(purchase.PurchaseID)
	suite.True(ok)
	suite.Equal(domain.PurchasePending, cached.Status)

	suite.mockPurchaseRepo.AssertExpectations(suite.T())
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestSubmitPurchase_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreatePurchaseRequest{
		Description:  "Free stuff",
		Amount:       decimal.Zero,
		CategoryID:   uuid.NewString(),
		PurchaseDate: time.Now(),
	}

	purchase, err := suite.service.SubmitPurchase(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(purchase)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "CreatePurchase", mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestSubmitPurchase_WrongCategoryKind() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	incomeCategory := &domain.Category{
		CategoryID: categoryID,
		Kind:       domain.CategoryIncome,
		Name:       "Donations",
		IsActive:   true,
	}
	req := dto.CreatePurchaseRequest{
		Description:  "Mislabeled",
		Amount:       decimal.NewFromInt(10),
		CategoryID:   categoryID,
		PurchaseDate: time.Now(),
	}

	suite.mockCategoryRepo.On("GetCategoryByID", ctx, categoryID).Return(incomeCategory, nil).Once()

	purchase, err := suite.service.SubmitPurchase(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(purchase)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "CreatePurchase", mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestSubmitPurchase_BucketMissingDegrades() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	req := dto.CreatePurchaseRequest{
		Description:  "With receipt",
		Amount:       decimal.NewFromInt(50),
		CategoryID:   categoryID,
		PurchaseDate: time.Now(),
		Receipt: &dto.ReceiptUpload{
			FileName:    "receipt.pdf",
			ContentType: "application/pdf",
			Data:        []byte("pdf bytes"),
		},
	}

	suite.mockCategoryRepo.On("GetCategoryByID", ctx, categoryID).Return(suite.purchaseCategory(categoryID), nil).Once()
	suite.mockBlobStore.On("Upload", ctx, "receipts", mock.AnythingOfType("string"), req.Receipt.Data, "application/pdf").
		Return(storage.ErrBucketNotFound).Once()
	suite.mockPurchaseRepo.On("CreatePurchase", ctx, mock.MatchedBy(func(p *domain.Purchase) bool {
		return p.ReceiptURL == nil
	})).Run(func(args mock.Arguments) {
		p := args.Get(1).(*domain.Purchase)
		stored := *p
		suite.mockPurchaseRepo.On("GetPurchaseByID", ctx, p.PurchaseID).Return(&stored, nil).Once()
	}).Return(nil).Once()

	purchase, err := suite.service.SubmitPurchase(ctx, uuid.NewString(), req)

	suite.Require().NoError(err)
	suite.Require().NotNil(purchase)
	suite.Nil(purchase.ReceiptURL)
	suite.Equal(domain.PurchasePending, purchase.Status)

	suite.mockBlobStore.AssertExpectations(suite.T())
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestSubmitPurchase_UploadErrorAborts() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	req := dto.CreatePurchaseRequest{
		Description:  "With receipt",
		Amount:       decimal.NewFromInt(50),
		CategoryID:   categoryID,
		PurchaseDate: time.Now(),
		Receipt: &dto.ReceiptUpload{
			FileName: "receipt.jpg",
			Data:     []byte("jpg bytes"),
		},
	}
	expectedErr := assert.AnError

	suite.mockCategoryRepo.On("GetCategoryByID", ctx, categoryID).Return(suite.purchaseCategory(categoryID), nil).Once()
	suite.mockBlobStore.On("Upload", ctx, "receipts", mock.AnythingOfType("string"), req.Receipt.Data, "").
		Return(expectedErr).Once()

	purchase, err := suite.service.SubmitPurchase(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(purchase)
	suite.ErrorIs(err, expectedErr)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "CreatePurchase", mock.Anything, mock.Anything)
}

// --- ApprovePurchase ---

func (suite *PurchaseServiceTestSuite) TestApprovePurchase_Success() {
	ctx := context.Background()
	reviewerID := uuid.NewString()
	purchaseID := uuid.NewString()
	accountID := uuid.NewString()

	reviewer := &domain.User{UserID: reviewerID, Role: domain.RoleTreasurer, IsActive: true}
	pending := &domain.Purchase{
		PurchaseID:  purchaseID,
		Description: "Pending purchase",
		Amount:      decimal.NewFromInt(75),
		Status:      domain.PurchasePending,
		SubmittedBy: uuid.NewString(),
	}
	account := &domain.Account{AccountID: accountID, Name: "Main", Type: domain.AccountBank, IsActive: true}

	suite.mockUserRepo.On("GetUserByID", ctx, reviewerID).Return(reviewer, nil).Once()
	suite.mockPurchaseRepo.On("GetPurchaseByID", ctx, purchaseID).Return(pending, nil).Once()
	suite.mockAccountRepo.On("GetAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockPurchaseRepo.On("UpdatePurchase", ctx, mock.MatchedBy(func(p *domain.Purchase) bool {
		return p.Status == domain.PurchaseApproved &&
			p.AccountID != nil && *p.AccountID == accountID &&
			p.ReviewedBy != nil && *p.ReviewedBy == reviewerID &&
			p.ReviewedAt != nil && p.RejectReason == nil
	})).Run(func(args mock.Arguments) {
		stored := *args.Get(1).(*domain.Purchase)
		suite.mockPurchaseRepo.On("GetPurchaseByID", ctx, purchaseID).Return(&stored, nil).Once()
	}).Return(nil).Once()

	approved, err := suite.service.ApprovePurchase(ctx, reviewerID, purchaseID, dto.ApprovePurchaseRequest{AccountID: accountID})

	suite.Require().NoError(err)
	suite.Require().NotNil(approved)
	suite.Equal(domain.PurchaseApproved, approved.Status)
	suite.Equal(accountID, *approved.AccountID)
	suite.Equal(reviewerID, *approved.ReviewedBy)

	cached, ok := suite.cache.Get(purchaseID)
	suite.True(ok)
	suite.Equal(domain.PurchaseApproved, cached.Status)

	suite.mockPurchaseRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestApprovePurchase_MissingAccount() {
	ctx := context.Background()
	reviewerID := uuid.NewString()
	reviewer := &domain.User{UserID: reviewerID, Role: domain.RoleAdministrator, IsActive: true}

	suite.mockUserRepo.On("GetUserByID", ctx, reviewerID).Return(reviewer, nil).Once()

	approved, err := suite.service.ApprovePurchase(ctx, reviewerID, uuid.NewString(), dto.ApprovePurchaseRequest{})

	suite.Require().Error(err)
	suite.Nil(approved)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "GetPurchaseByID", mock.Anything, mock.Anything)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "UpdatePurchase", mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestApprovePurchase_SubmitterRoleForbidden() {
	ctx := context.Background()
	actorID := uuid.NewString()
	actor := &domain.User{UserID: actorID, Role: domain.RolePurchaseManager, IsActive: true}

	suite.mockUserRepo.On("GetUserByID", ctx, actorID).Return(actor, nil).Once()

	approved, err := suite.service.ApprovePurchase(ctx, actorID, uuid.NewString(), dto.ApprovePurchaseRequest{AccountID: uuid.NewString()})

	suite.Require().Error(err)
	suite.Nil(approved)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "UpdatePurchase", mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestApprovePurchase_AlreadyApproved() {
	ctx := context.Background()
	reviewerID := uuid.NewString()
	purchaseID := uuid.NewString()
	reviewer := &domain.User{UserID: reviewerID, Role: domain.RoleTreasurer, IsActive: true}
	alreadyApproved := &domain.Purchase{
		PurchaseID: purchaseID,
		Status:     domain.PurchaseApproved,
	}

	suite.mockUserRepo.On("GetUserByID", ctx, reviewerID).Return(reviewer, nil).Once()
	suite.mockPurchaseRepo.On("GetPurchaseByID", ctx, purchaseID).Return(alreadyApproved, nil).Once()

	approved, err := suite.service.ApprovePurchase(ctx, reviewerID, purchaseID, dto.ApprovePurchaseRequest{AccountID: uuid.NewString()})

	suite.Require().Error(err)
	suite.Nil(approved)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "UpdatePurchase", mock.Anything, mock.Anything)
}

// --- RejectPurchase ---

func (suite *PurchaseServiceTestSuite) TestRejectPurchase_Success() {
	ctx := context.Background()
	reviewerID := uuid.NewString()
	purchaseID := uuid.NewString()
	reviewer := &domain.User{UserID: reviewerID, Role: domain.RoleTreasurer, IsActive: true}
	pending := &domain.Purchase{
		PurchaseID:  purchaseID,
		Description: "Too expensive",
		Amount:      decimal.NewFromInt(900),
		Status:      domain.PurchasePending,
		SubmittedBy: uuid.NewString(),
		Submitter:   &domain.User{FirstName: "Ana", LastName: "Lopez"},
	}
	settings := &domain.Settings{CurrencySymbol: "$"}

	suite.mockUserRepo.On("GetUserByID", ctx, reviewerID).Return(reviewer, nil).Once()
	suite.mockPurchaseRepo.On("GetPurchaseByID", ctx, purchaseID).Return(pending, nil).Once()
	suite.mockPurchaseRepo.On("UpdatePurchase", ctx, mock.MatchedBy(func(p *domain.Purchase) bool {
		return p.Status == domain.PurchaseRejected &&
			p.RejectReason != nil && *p.RejectReason == "Over budget" &&
			p.ReviewedBy != nil && *p.ReviewedBy == reviewerID
	})).Run(func(args mock.Arguments) {
		stored := *args.Get(1).(*domain.Purchase)
		suite.mockPurchaseRepo.On("GetPurchaseByID", ctx, purchaseID).Return(&stored, nil).Once()
	}).Return(nil).Once()
	suite.mockSettingsRepo.On("GetSettings", ctx).Return(settings, nil).Once()
	suite.mockNotifier.On("Notify", ctx, mock.MatchedBy(func(msg string) bool {
		return len(msg) > 0
	})).Return(nil).Once()

	rejected, err := suite.service.RejectPurchase(ctx, reviewerID, purchaseID, dto.RejectPurchaseRequest{Reason: "Over budget"})

	suite.Require().NoError(err)
	suite.Require().NotNil(rejected)
	suite.Equal(domain.PurchaseRejected, rejected.Status)
	suite.Equal("Over budget", *rejected.RejectReason)
	suite.NotNil(rejected.ReviewedAt)

	suite.mockNotifier.AssertExpectations(suite.T())
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestRejectPurchase_MissingReason() {
	ctx := context.Background()
	reviewerID := uuid.NewString()
	reviewer := &domain.User{UserID: reviewerID, Role: domain.RoleAdministrator, IsActive: true}

	suite.mockUserRepo.On("GetUserByID", ctx, reviewerID).Return(reviewer, nil).Once()

	rejected, err := suite.service.RejectPurchase(ctx, reviewerID, uuid.NewString(), dto.RejectPurchaseRequest{})

	suite.Require().Error(err)
	suite.Nil(rejected)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "UpdatePurchase", mock.Anything, mock.Anything)
	suite.mockNotifier.AssertNotCalled(suite.T(), "Notify", mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestRejectPurchase_NotifierFailureIsSwallowed() {
	ctx := context.Background()
	reviewerID := uuid.NewString()
	purchaseID := uuid.NewString()
	reviewer := &domain.User{UserID: reviewerID, Role: domain.RoleTreasurer, IsActive: true}
	pending := &domain.Purchase{
		PurchaseID:  purchaseID,
		Amount:      decimal.NewFromInt(20),
		Status:      domain.PurchasePending,
		SubmittedBy: uuid.NewString(),
	}

	suite.mockUserRepo.On("GetUserByID", ctx, reviewerID).Return(reviewer, nil).Once()
	suite.mockPurchaseRepo.On("GetPurchaseByID", ctx, purchaseID).Return(pending, nil).Once()
	suite.mockPurchaseRepo.On("UpdatePurchase", ctx, mock.AnythingOfType("*domain.Purchase")).
		Run(func(args mock.Arguments) {
			stored := *args.Get(1).(*domain.Purchase)
			suite.mockPurchaseRepo.On("GetPurchaseByID", ctx, purchaseID).Return(&stored, nil).Once()
		}).Return(nil).Once()
	suite.mockSettingsRepo.On("GetSettings", ctx).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockNotifier.On("Notify", ctx, mock.AnythingOfType("string")).Return(assert.AnError).Once()

	rejected, err := suite.service.RejectPurchase(ctx, reviewerID, purchaseID, dto.RejectPurchaseRequest{Reason: "No receipt"})

	suite.Require().NoError(err)
	suite.Equal(domain.PurchaseRejected, rejected.Status)
	suite.mockNotifier.AssertExpectations(suite.T())
}

// --- ResubmitPurchase ---

func (suite *PurchaseServiceTestSuite) TestEditRejectedPurchase_KeepsVerdict() {
	ctx := context.Background()
	submitterID := uuid.NewString()
	purchaseID := uuid.NewString()
	reviewerID := uuid.NewString()
	reviewedAt := time.Now().Add(-time.Hour)
	reason := "Missing receipt"
	rejected := &domain.Purchase{
		PurchaseID:   purchaseID,
		Description:  "Projector bulb",
		Amount:       decimal.NewFromInt(80),
		Status:       domain.PurchaseRejected,
		SubmittedBy:  submitterID,
		ReviewedBy:   &reviewerID,
		ReviewedAt:   &reviewedAt,
		RejectReason: &reason,
	}
	newDescription := "Projector replacement bulb"

	suite.mockPurchaseRepo.On("GetPurchaseByID", ctx, purchaseID).Return(rejected, nil).Once()
	suite.mockPurchaseRepo.On("UpdatePurchase", ctx, mock.MatchedBy(func(p *domain.Purchase) bool {
		return p.Status == domain.PurchaseRejected &&
			p.ReviewedBy != nil && *p.ReviewedBy == reviewerID &&
			p.ReviewedAt != nil &&
			p.RejectReason != nil && *p.RejectReason == reason &&
			p.Description == newDescription
	})).Run(func(args mock.Arguments) {
		stored := *args.Get(1).(*domain.Purchase)
		suite.mockPurchaseRepo.On("GetPurchaseByID", ctx, purchaseID).Return(&stored, nil).Once()
	}).Return(nil).Once()

	edited, err := suite.service.EditRejectedPurchase(ctx, submitterID, purchaseID, dto.UpdateRejectedPurchaseRequest{
		Description: &newDescription,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.PurchaseRejected, edited.Status)
	suite.Require().NotNil(edited.RejectReason)
	suite.Equal(reason, *edited.RejectReason)
	suite.Require().NotNil(edited.ReviewedBy)
	suite.Equal(reviewerID, *edited.ReviewedBy)

	cached, ok := suite.cache.Get(purchaseID)
	suite.Require().True(ok)
	suite.Equal(newDescription, cached.Description)
	suite.Equal(domain.PurchaseRejected, cached.Status)

	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestEditRejectedPurchase_NotSubmitter() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	rejected := &domain.Purchase{
		PurchaseID:  purchaseID,
		Status:      domain.PurchaseRejected,
		SubmittedBy: uuid.NewString(),
	}

	suite.mockPurchaseRepo.On("GetPurchaseByID", ctx, purchaseID).Return(rejected, nil).Once()

	edited, err := suite.service.EditRejectedPurchase(ctx, uuid.NewString(), purchaseID, dto.UpdateRejectedPurchaseRequest{})

	suite.Require().Error(err)
	suite.Nil(edited)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "UpdatePurchase", mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestEditRejectedPurchase_NotRejected() {
	ctx := context.Background()
	submitterID := uuid.NewString()
	purchaseID := uuid.NewString()
	pending := &domain.Purchase{
		PurchaseID:  purchaseID,
		Status:      domain.PurchasePending,
		SubmittedBy: submitterID,
	}

	suite.mockPurchaseRepo.On("GetPurchaseByID", ctx, purchaseID).Return(pending, nil).Once()

	edited, err := suite.service.EditRejectedPurchase(ctx, submitterID, purchaseID, dto.UpdateRejectedPurchaseRequest{})

	suite.Require().Error(err)
	suite.Nil(edited)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "UpdatePurchase", mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestResubmitPurchase_ClearsVerdict() {
	ctx := context.Background()
	submitterID := uuid.NewString()
	purchaseID := uuid.NewString()
	reviewerID := uuid.NewString()
	reviewedAt := time.Now().Add(-time.Hour)
	reason := "Wrong amount"
	rejected := &domain.Purchase{
		PurchaseID:   purchaseID,
		Description:  "Office chairs",
		Amount:       decimal.NewFromInt(300),
		Status:       domain.PurchaseRejected,
		SubmittedBy:  submitterID,
		ReviewedBy:   &reviewerID,
		ReviewedAt:   &reviewedAt,
		RejectReason: &reason,
	}
	newAmount := decimal.NewFromFloat(250.50)

	suite.mockPurchaseRepo.On("GetPurchaseByID", ctx, purchaseID).Return(rejected, nil).Once()
	suite.mockPurchaseRepo.On("UpdatePurchase", ctx, mock.MatchedBy(func(p *domain.Purchase) bool {
		return p.Status == domain.PurchasePending &&
			p.ReviewedBy == nil && p.ReviewedAt == nil && p.RejectReason == nil &&
			p.Amount.Equal(newAmount) &&
			p.Description == "Office chairs" // untouched field keeps its value
	})).Run(func(args mock.Arguments) {
		stored := *args.Get(1).(*domain.Purchase)
		suite.mockPurchaseRepo.On("GetPurchaseByID", ctx, purchaseID).Return(&stored, nil).Once()
	}).Return(nil).Once()

	resubmitted, err := suite.service.ResubmitPurchase(ctx, submitterID, purchaseID, dto.UpdateRejectedPurchaseRequest{
		Amount: &newAmount,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.PurchasePending, resubmitted.Status)
	suite.Nil(resubmitted.ReviewedBy)
	suite.Nil(resubmitted.ReviewedAt)
	suite.Nil(resubmitted.RejectReason)

	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestResubmitPurchase_NotSubmitter() {
	ctx := context.Background()
	purchaseID := uuid.NewString()
	rejected := &domain.Purchase{
		PurchaseID:  purchaseID,
		Status:      domain.PurchaseRejected,
		SubmittedBy: uuid.NewString(),
	}

	suite.mockPurchaseRepo.On("GetPurchaseByID", ctx, purchaseID).Return(rejected, nil).Once()

	resubmitted, err := suite.service.ResubmitPurchase(ctx, uuid.NewString(), purchaseID, dto.UpdateRejectedPurchaseRequest{})

	suite.Require().Error(err)
	suite.Nil(resubmitted)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "UpdatePurchase", mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestResubmitPurchase_NotRejected() {
	ctx := context.Background()
	submitterID := uuid.NewString()
	purchaseID := uuid.NewString()
	pending := &domain.Purchase{
		PurchaseID:  purchaseID,
		Status:      domain.PurchasePending,
		SubmittedBy: submitterID,
	}

	suite.mockPurchaseRepo.On("GetPurchaseByID", ctx, purchaseID).Return(pending, nil).Once()

	resubmitted, err := suite.service.ResubmitPurchase(ctx, submitterID, purchaseID, dto.UpdateRejectedPurchaseRequest{})

	suite.Require().Error(err)
	suite.Nil(resubmitted)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "UpdatePurchase", mock.Anything, mock.Anything)
}

// --- DeletePurchase ---

func (suite *PurchaseServiceTestSuite) TestDeletePurchase_ApprovedIsImmutable() {
	ctx := context.Background()
	actorID := uuid.NewString()
	purchaseID := uuid.NewString()
	actor := &domain.User{UserID: actorID, Role: domain.RoleAdministrator, IsActive: true}
	approved := &domain.Purchase{
		PurchaseID:  purchaseID,
		Status:      domain.PurchaseApproved,
		SubmittedBy: actorID,
	}

	suite.mockUserRepo.On("GetUserByID", ctx, actorID).Return(actor, nil).Once()
	suite.mockPurchaseRepo.On("GetPurchaseByID", ctx, purchaseID).Return(approved, nil).Once()

	err := suite.service.DeletePurchase(ctx, actorID, purchaseID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "DeletePurchase", mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestDeletePurchase_SubmitterDeletesOwnPending() {
	ctx := context.Background()
	actorID := uuid.NewString()
	purchaseID := uuid.NewString()
	actor := &domain.User{UserID: actorID, Role: domain.RolePurchaseManager, IsActive: true}
	pending := &domain.Purchase{
		PurchaseID:  purchaseID,
		Status:      domain.PurchasePending,
		SubmittedBy: actorID,
	}
	suite.cache.Replace([]domain.Purchase{*pending})

	suite.mockUserRepo.On("GetUserByID", ctx, actorID).Return(actor, nil).Once()
	suite.mockPurchaseRepo.On("GetPurchaseByID", ctx, purchaseID).Return(pending, nil).Once()
	suite.mockPurchaseRepo.On("DeletePurchase", ctx, purchaseID).Return(nil).Once()

	err := suite.service.DeletePurchase(ctx, actorID, purchaseID)

	suite.Require().NoError(err)
	_, ok := suite.cache.Get(purchaseID)
	suite.False(ok)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestDeletePurchase_OtherSubmitterForbidden() {
	ctx := context.Background()
	actorID := uuid.NewString()
	purchaseID := uuid.NewString()
	actor := &domain.User{UserID: actorID, Role: domain.RolePurchaseManager, IsActive: true}
	pending := &domain.Purchase{
		PurchaseID:  purchaseID,
		Status:      domain.PurchasePending,
		SubmittedBy: uuid.NewString(),
	}

	suite.mockUserRepo.On("GetUserByID", ctx, actorID).Return(actor, nil).Once()
	suite.mockPurchaseRepo.On("GetPurchaseByID", ctx, purchaseID).Return(pending, nil).Once()

	err := suite.service.DeletePurchase(ctx, actorID, purchaseID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "DeletePurchase", mock.Anything, mock.Anything)
}

// --- ListPurchases ---

func (suite *PurchaseServiceTestSuite) TestListPurchases_UnfilteredRefreshesCache() {
	ctx := context.Background()
	actorID := uuid.NewString()
	purchases := []domain.Purchase{
		{PurchaseID: uuid.NewString(), Status: domain.PurchasePending, Amount: decimal.NewFromInt(10)},
		{PurchaseID: uuid.NewString(), Status: domain.PurchaseApproved, Amount: decimal.NewFromInt(20)},
	}

	suite.mockPurchaseRepo.On("ListPurchases", ctx, portsrepo.PurchaseListFilter{}).Return(purchases, nil).Once()

	listed, err := suite.service.ListPurchases(ctx, actorID, dto.ListPurchasesParams{})

	suite.Require().NoError(err)
	suite.Len(listed, 2)
	suite.Equal(2, suite.cache.Len())
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestListPurchases_FilteredLeavesCacheAlone() {
	ctx := context.Background()
	actorID := uuid.NewString()
	existing := domain.Purchase{PurchaseID: uuid.NewString(), Status: domain.PurchasePending}
	suite.cache.Replace([]domain.Purchase{existing})

	filter := portsrepo.PurchaseListFilter{Status: domain.PurchaseApproved}
	suite.mockPurchaseRepo.On("ListPurchases", ctx, filter).Return([]domain.Purchase{}, nil).Once()

	listed, err := suite.service.ListPurchases(ctx, actorID, dto.ListPurchasesParams{Status: "approved"})

	suite.Require().NoError(err)
	suite.Empty(listed)
	suite.Equal(1, suite.cache.Len())
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

func (suite *PurchaseServiceTestSuite) TestListPurchases_UnknownStatus() {
	ctx := context.Background()

	listed, err := suite.service.ListPurchases(ctx, uuid.NewString(), dto.ListPurchasesParams{Status: "archived"})

	suite.Require().Error(err)
	suite.Nil(listed)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPurchaseRepo.AssertNotCalled(suite.T(), "ListPurchases", mock.Anything, mock.Anything)
}

func (suite *PurchaseServiceTestSuite) TestListPurchases_OnlyMineScopesToActor() {
	ctx := context.Background()
	actorID := uuid.NewString()
	filter := portsrepo.PurchaseListFilter{SubmittedBy: actorID}

	suite.mockPurchaseRepo.On("ListPurchases", ctx, filter).Return([]domain.Purchase{}, nil).Once()

	listed, err := suite.service.ListPurchases(ctx, actorID, dto.ListPurchasesParams{OnlyMine: true})

	suite.Require().NoError(err)
	suite.NotNil(listed)
	suite.mockPurchaseRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestPurchaseService(t *testing.T) {
	suite.Run(t, new(PurchaseServiceTestSuite))
}
