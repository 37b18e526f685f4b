package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finly-app/finly_backend/internal/apperrors"
	"github.com/finly-app/finly_backend/internal/core/domain"
	portssvc "github.com/finly-app/finly_backend/internal/core/ports/services"
	"github.com/finly-app/finly_backend/internal/core/services"
	"github.com/finly-app/finly_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type RecurringServiceTestSuite struct {
	suite.Suite
	mockRecurringRepo *MockRecurringRepository
	mockEntryRepo     *MockEntryRepository
	service           portssvc.RecurringSvcFacade
	ownerID           string
}

func (suite *RecurringServiceTestSuite) SetupTest() {
	suite.mockRecurringRepo = new(MockRecurringRepository)
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.service = services.NewRecurringService(suite.mockRecurringRepo, suite.mockEntryRepo)
	suite.ownerID = uuid.NewString()
}

func (suite *RecurringServiceTestSuite) definition(name string, dayOfMonth int) domain.RecurringDefinition {
	return domain.RecurringDefinition{
		RecurringID:     uuid.NewString(),
		OwnerID:         suite.ownerID,
		Name:            name,
		Action:          domain.Expense,
		Type:            "Vivienda",
		PaymentPlatform: "Banco",
		Amount:          decimal.NewFromInt(800),
		Frequency:       domain.Monthly,
		DayOfMonth:      dayOfMonth,
		Active:          true,
	}
}

// --- CRUD ---

func (suite *RecurringServiceTestSuite) TestCreateDefinition_Success() {
	ctx := context.Background()
	req := dto.CreateRecurringRequest{
		Name:       "Alquiler",
		Action:     domain.Expense,
		Type:       "Vivienda",
		Amount:     decimal.NewFromInt(800),
		Frequency:  domain.Monthly,
		DayOfMonth: 1,
	}

	suite.mockRecurringRepo.On("SaveDefinition", ctx, mock.MatchedBy(func(d domain.RecurringDefinition) bool {
		return d.OwnerID == suite.ownerID && d.Name == "Alquiler" && d.Active && d.RecurringID != ""
	})).Return(nil).Once()

	def, err := suite.service.CreateDefinition(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(def)
	suite.True(def.Active, "active defaults to true when omitted")
	suite.mockRecurringRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestCreateDefinition_InvalidDayOfMonth() {
	ctx := context.Background()
	req := dto.CreateRecurringRequest{
		Name:       "Alquiler",
		Action:     domain.Expense,
		Type:       "Vivienda",
		Amount:     decimal.NewFromInt(800),
		Frequency:  domain.Monthly,
		DayOfMonth: 32,
	}

	def, err := suite.service.CreateDefinition(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(def)
	suite.mockRecurringRepo.AssertNotCalled(suite.T(), "SaveDefinition", mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestUpdateDefinition_NotFoundIsNoOp() {
	ctx := context.Background()
	recurringID := uuid.NewString()
	name := "Renamed"
	req := dto.UpdateRecurringRequest{Name: &name}

	suite.mockRecurringRepo.On("UpdateDefinition", ctx, recurringID, suite.ownerID, mock.AnythingOfType("domain.RecurringPatch"), mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrNotFound).Once()

	err := suite.service.UpdateDefinition(ctx, recurringID, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.mockRecurringRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestDeleteDefinition_NotFoundIsNoOp() {
	ctx := context.Background()
	recurringID := uuid.NewString()

	suite.mockRecurringRepo.On("DeleteDefinition", ctx, recurringID, suite.ownerID).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteDefinition(ctx, recurringID, suite.ownerID)

	suite.Require().NoError(err)
	suite.mockRecurringRepo.AssertExpectations(suite.T())
}

// --- Generation ---

func (suite *RecurringServiceTestSuite) TestGenerateForDate_GeneratesDueDefinition() {
	ctx := context.Background()
	target := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	def := suite.definition("Alquiler", 1)

	suite.mockRecurringRepo.On("FindActiveDefinitions", ctx, suite.ownerID).
		Return([]domain.RecurringDefinition{def}, nil).Once()
	suite.mockEntryRepo.On("FindEntriesByDate", ctx, suite.ownerID, target).
		Return([]domain.Entry{}, nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.Entry) bool {
		return e.OwnerID == suite.ownerID &&
			e.Description == "Alquiler" &&
			e.Type == "Vivienda" &&
			e.Action == domain.Expense &&
			e.Amount.Equal(decimal.NewFromInt(800)) &&
			e.EntryDate.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()

	resp, err := suite.service.GenerateForDate(ctx, suite.ownerID, target)

	suite.Require().NoError(err)
	suite.Equal(1, resp.Generated)
	suite.mockRecurringRepo.AssertExpectations(suite.T())
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestGenerateForDate_SecondRunGeneratesNothing() {
	ctx := context.Background()
	target := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	def := suite.definition("Alquiler", 1)

	suite.mockRecurringRepo.On("FindActiveDefinitions", ctx, suite.ownerID).
		Return([]domain.RecurringDefinition{def}, nil).Once()
	suite.mockEntryRepo.On("FindEntriesByDate", ctx, suite.ownerID, target).
		Return([]domain.Entry{{Description: "Alquiler", EntryDate: target}}, nil).Once()

	resp, err := suite.service.GenerateForDate(ctx, suite.ownerID, target)

	suite.Require().NoError(err)
	suite.Equal(0, resp.Generated)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestGenerateForDate_MatchesByNameOnly() {
	ctx := context.Background()
	target := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	def := suite.definition("Alquiler", 1)

	suite.mockRecurringRepo.On("FindActiveDefinitions", ctx, suite.ownerID).
		Return([]domain.RecurringDefinition{def}, nil).Once()
	// An existing entry with the same name but a different amount still
	// counts as generated.
	suite.mockEntryRepo.On("FindEntriesByDate", ctx, suite.ownerID, target).
		Return([]domain.Entry{{Description: "Alquiler", Amount: decimal.NewFromInt(999)}}, nil).Once()

	resp, err := suite.service.GenerateForDate(ctx, suite.ownerID, target)

	suite.Require().NoError(err)
	suite.Equal(0, resp.Generated)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestGenerateForDate_ClampsDayToMonthEnd() {
	ctx := context.Background()
	target := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	def := suite.definition("Suscripcion", 31)

	suite.mockRecurringRepo.On("FindActiveDefinitions", ctx, suite.ownerID).
		Return([]domain.RecurringDefinition{def}, nil).Once()
	suite.mockEntryRepo.On("FindEntriesByDate", ctx, suite.ownerID, target).
		Return([]domain.Entry{}, nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.Entry) bool {
		// February 2024 is a leap month; day 31 clamps to the 29th.
		return e.EntryDate.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()

	resp, err := suite.service.GenerateForDate(ctx, suite.ownerID, target)

	suite.Require().NoError(err)
	suite.Equal(1, resp.Generated)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestGenerateForDate_NormalizesTimeOfDay() {
	ctx := context.Background()
	target := time.Date(2024, 3, 1, 15, 42, 7, 0, time.UTC)
	midnight := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	def := suite.definition("Alquiler", 1)

	suite.mockRecurringRepo.On("FindActiveDefinitions", ctx, suite.ownerID).
		Return([]domain.RecurringDefinition{def}, nil).Once()
	suite.mockEntryRepo.On("FindEntriesByDate", ctx, suite.ownerID, midnight).
		Return([]domain.Entry{}, nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.Entry")).Return(nil).Once()

	resp, err := suite.service.GenerateForDate(ctx, suite.ownerID, target)

	suite.Require().NoError(err)
	suite.Equal(1, resp.Generated)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestGenerateForDate_ZeroDate() {
	ctx := context.Background()

	resp, err := suite.service.GenerateForDate(ctx, suite.ownerID, time.Time{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(resp)
	suite.mockRecurringRepo.AssertNotCalled(suite.T(), "FindActiveDefinitions", mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestGenerateForDate_NoActiveDefinitions() {
	ctx := context.Background()
	target := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	suite.mockRecurringRepo.On("FindActiveDefinitions", ctx, suite.ownerID).
		Return([]domain.RecurringDefinition{}, nil).Once()

	resp, err := suite.service.GenerateForDate(ctx, suite.ownerID, target)

	suite.Require().NoError(err)
	suite.Equal(0, resp.Generated)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "FindEntriesByDate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RecurringServiceTestSuite) TestGenerateForDate_DuplicateInsertTreatedAsGenerated() {
	ctx := context.Background()
	target := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	def := suite.definition("Alquiler", 1)

	suite.mockRecurringRepo.On("FindActiveDefinitions", ctx, suite.ownerID).
		Return([]domain.RecurringDefinition{def}, nil).Once()
	suite.mockEntryRepo.On("FindEntriesByDate", ctx, suite.ownerID, target).
		Return([]domain.Entry{}, nil).Once()
	// A concurrent run inserted the same occurrence between the dedup
	// read and this write.
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.Entry")).
		Return(apperrors.ErrDuplicate).Once()

	resp, err := suite.service.GenerateForDate(ctx, suite.ownerID, target)

	suite.Require().NoError(err)
	suite.Equal(0, resp.Generated)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestGenerateForDate_PartialFailureReportsInsertedCount() {
	ctx := context.Background()
	target := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	failing := suite.definition("Gimnasio", 5)
	succeeding := suite.definition("Alquiler", 1)
	expectedErr := assert.AnError

	suite.mockRecurringRepo.On("FindActiveDefinitions", ctx, suite.ownerID).
		Return([]domain.RecurringDefinition{succeeding, failing}, nil).Once()
	suite.mockEntryRepo.On("FindEntriesByDate", ctx, suite.ownerID, target).
		Return([]domain.Entry{}, nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.Entry) bool {
		return e.Description == "Alquiler"
	})).Return(nil).Once()
	suite.mockEntryRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.Entry) bool {
		return e.Description == "Gimnasio"
	})).Return(expectedErr).Once()

	resp, err := suite.service.GenerateForDate(ctx, suite.ownerID, target)

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
	suite.Require().NotNil(resp)
	suite.Equal(1, resp.Generated, "count reflects rows durably inserted")
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *RecurringServiceTestSuite) TestListDefinitions_PassesThrough() {
	ctx := context.Background()
	defs := []domain.RecurringDefinition{suite.definition("Alquiler", 1), suite.definition("Gimnasio", 5)}

	suite.mockRecurringRepo.On("ListDefinitions", ctx, suite.ownerID).Return(defs, nil).Once()

	got, err := suite.service.ListDefinitions(ctx, suite.ownerID)

	suite.Require().NoError(err)
	suite.Equal(defs, got)
	suite.mockRecurringRepo.AssertExpectations(suite.T())
}

func TestRecurringServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecurringServiceTestSuite))
}
