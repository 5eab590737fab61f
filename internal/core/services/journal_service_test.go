package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/kudipay/payledger/internal/apperrors"
	"github.com/kudipay/payledger/internal/core/domain"
	portssvc "github.com/kudipay/payledger/internal/core/ports/services"
	"github.com/kudipay/payledger/internal/core/services"
	"github.com/kudipay/payledger/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockJournalRepository
	mockAccountSvc *MockAccountService
	service        portssvc.JournalSvcFacade
	ctx            context.Context
}

func (s *JournalServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockJournalRepository)
	s.mockAccountSvc = new(MockAccountService)
	s.service = services.NewJournalService(s.mockRepo, s.mockAccountSvc)
	s.ctx = context.Background()
}

func testAccounts() map[string]domain.Account {
	return map[string]domain.Account{
		"6000": {AccountID: "acc-exp", AccountNumber: "6000", AccountType: domain.Expense, IsActive: true},
		"1000": {AccountID: "acc-cash", AccountNumber: "1000", AccountType: domain.Asset, IsActive: true},
		"2100": {AccountID: "acc-paye", AccountNumber: "2100", AccountType: domain.Liability, IsActive: true},
	}
}

func balancedRequest() dto.CreateJournalRequest {
	return dto.CreateJournalRequest{
		Date:        time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Description: "June payroll",
		Entries: []dto.CreateEntryRequest{
			{AccountNumber: "6000", EntryType: domain.Debit, Amount: decimal.RequireFromString("100.00")},
			{AccountNumber: "1000", EntryType: domain.Credit, Amount: decimal.RequireFromString("70.00")},
			{AccountNumber: "2100", EntryType: domain.Credit, Amount: decimal.RequireFromString("30.00")},
		},
	}
}

func (s *JournalServiceTestSuite) TestCreateJournalInTx_Success() {
	s.mockAccountSvc.On("GetAccountsByNumbers", s.ctx, mock.Anything).Return(testAccounts(), nil)
	s.mockRepo.On("SaveJournalInTx", s.ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	journal, err := s.service.CreateJournalInTx(s.ctx, nil, balancedRequest(), "user-1")

	s.Require().NoError(err)
	s.Require().NotNil(journal)
	s.Equal(domain.Draft, journal.Status)
	s.True(decimal.RequireFromString("100.00").Equal(journal.Amount))
	s.Len(journal.Entries, 3)
	s.Equal("acc-exp", journal.Entries[0].AccountID)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestCreateJournalInTx_AutoPostSetsPosted() {
	s.mockAccountSvc.On("GetAccountsByNumbers", s.ctx, mock.Anything).Return(testAccounts(), nil)
	s.mockRepo.On("SaveJournalInTx", s.ctx, mock.Anything, mock.MatchedBy(func(j domain.Journal) bool {
		return j.Status == domain.Posted
	}), mock.Anything).Return(nil)

	req := balancedRequest()
	req.AutoPost = true
	journal, err := s.service.CreateJournalInTx(s.ctx, nil, req, "user-1")

	s.Require().NoError(err)
	s.Equal(domain.Posted, journal.Status)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestCreateJournalInTx_UnbalancedByOneCent() {
	req := balancedRequest()
	req.Entries[2].Amount = decimal.RequireFromString("29.99")

	_, err := s.service.CreateJournalInTx(s.ctx, nil, req, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnbalancedJournal)
	s.mockRepo.AssertNotCalled(s.T(), "SaveJournalInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestCreateJournalInTx_ZeroAmountRejected() {
	req := balancedRequest()
	req.Entries = []dto.CreateEntryRequest{
		{AccountNumber: "6000", EntryType: domain.Debit, Amount: decimal.Zero},
		{AccountNumber: "1000", EntryType: domain.Credit, Amount: decimal.Zero},
	}

	_, err := s.service.CreateJournalInTx(s.ctx, nil, req, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestCreateJournalInTx_NoEntries() {
	req := balancedRequest()
	req.Entries = nil

	_, err := s.service.CreateJournalInTx(s.ctx, nil, req, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestCreateJournalInTx_UnknownAccount() {
	accounts := testAccounts()
	delete(accounts, "2100")
	s.mockAccountSvc.On("GetAccountsByNumbers", s.ctx, mock.Anything).Return(accounts, nil)

	_, err := s.service.CreateJournalInTx(s.ctx, nil, balancedRequest(), "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidAccount)
}

func (s *JournalServiceTestSuite) TestCreateJournalInTx_InactiveAccount() {
	accounts := testAccounts()
	cash := accounts["1000"]
	cash.IsActive = false
	accounts["1000"] = cash
	s.mockAccountSvc.On("GetAccountsByNumbers", s.ctx, mock.Anything).Return(accounts, nil)

	_, err := s.service.CreateJournalInTx(s.ctx, nil, balancedRequest(), "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrInvalidAccount)
}

func (s *JournalServiceTestSuite) TestCreateJournalInTx_QuantizesBeforeBalancing() {
	// 100.004 and 99.996 both quantize to 100.00, so the journal balances
	// after quantization even though the raw inputs differ.
	req := balancedRequest()
	req.Entries = []dto.CreateEntryRequest{
		{AccountNumber: "6000", EntryType: domain.Debit, Amount: decimal.RequireFromString("100.004")},
		{AccountNumber: "1000", EntryType: domain.Credit, Amount: decimal.RequireFromString("99.996")},
	}
	s.mockAccountSvc.On("GetAccountsByNumbers", s.ctx, mock.Anything).Return(testAccounts(), nil)
	s.mockRepo.On("SaveJournalInTx", s.ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	journal, err := s.service.CreateJournalInTx(s.ctx, nil, req, "user-1")

	s.Require().NoError(err)
	s.True(decimal.RequireFromString("100.00").Equal(journal.Entries[0].Amount))
	s.True(decimal.RequireFromString("100.00").Equal(journal.Entries[1].Amount))
}

func (s *JournalServiceTestSuite) TestCreateJournal_CommitsOwnTransaction() {
	s.mockRepo.On("Begin", s.ctx).Return(nil, nil)
	s.mockRepo.On("Rollback", s.ctx, mock.Anything).Return(nil)
	s.mockRepo.On("Commit", s.ctx, mock.Anything).Return(nil)
	s.mockAccountSvc.On("GetAccountsByNumbers", s.ctx, mock.Anything).Return(testAccounts(), nil)
	s.mockRepo.On("SaveJournalInTx", s.ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	journal, err := s.service.CreateJournal(s.ctx, balancedRequest(), "user-1")

	s.Require().NoError(err)
	s.NotNil(journal)
	s.mockRepo.AssertCalled(s.T(), "Commit", s.ctx, mock.Anything)
}

func (s *JournalServiceTestSuite) TestPostJournal_OnlyFromDraft() {
	posted := &domain.Journal{JournalID: "j1", Status: domain.Posted}
	s.mockRepo.On("FindJournalByID", s.ctx, "j1").Return(posted, nil)

	_, err := s.service.PostJournal(s.ctx, "j1", "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *JournalServiceTestSuite) TestVoidJournal_PostedIsImmutable() {
	posted := &domain.Journal{JournalID: "j1", Status: domain.Posted}
	s.mockRepo.On("FindJournalByID", s.ctx, "j1").Return(posted, nil)

	_, err := s.service.VoidJournal(s.ctx, "j1", "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockRepo.AssertNotCalled(s.T(), "UpdateJournalStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestVoidJournal_DraftSucceeds() {
	draft := &domain.Journal{JournalID: "j1", Status: domain.Draft}
	s.mockRepo.On("FindJournalByID", s.ctx, "j1").Return(draft, nil)
	s.mockRepo.On("UpdateJournalStatus", s.ctx, "j1", domain.Void, "user-1", mock.Anything).Return(nil)

	journal, err := s.service.VoidJournal(s.ctx, "j1", "user-1")

	s.Require().NoError(err)
	s.Equal(domain.Void, journal.Status)
}

func (s *JournalServiceTestSuite) TestReverseJournal_FlipsEntryTypes() {
	original := &domain.Journal{
		JournalID:   "j1",
		JournalDate: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Description: "June payroll",
		Status:      domain.Posted,
		Amount:      decimal.RequireFromString("100.00"),
	}
	entries := []domain.JournalEntry{
		{EntryID: "e1", JournalID: "j1", AccountID: "acc-exp", EntryType: domain.Debit, Amount: decimal.RequireFromString("100.00")},
		{EntryID: "e2", JournalID: "j1", AccountID: "acc-cash", EntryType: domain.Credit, Amount: decimal.RequireFromString("100.00")},
	}

	s.mockRepo.On("FindJournalByID", s.ctx, "j1").Return(original, nil)
	s.mockRepo.On("FindEntriesByJournalID", s.ctx, "j1").Return(entries, nil)
	s.mockRepo.On("Begin", s.ctx).Return(nil, nil)
	s.mockRepo.On("Rollback", s.ctx, mock.Anything).Return(nil)
	s.mockRepo.On("SaveJournalInTx", s.ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.mockRepo.On("Commit", s.ctx, mock.Anything).Return(nil)
	// The original keeps POSTED and gains the reversal link in the same tx.
	s.mockRepo.On("LinkReversalInTx", s.ctx, mock.Anything, "j1", mock.Anything, "user-1", mock.Anything).Return(nil)

	reversal, err := s.service.ReverseJournal(s.ctx, "j1", "user-1")

	s.Require().NoError(err)
	s.Equal(domain.Posted, reversal.Status)
	s.Require().NotNil(reversal.OriginalJournalID)
	s.Equal("j1", *reversal.OriginalJournalID)
	s.Require().Len(reversal.Entries, 2)
	s.Equal(domain.Credit, reversal.Entries[0].EntryType)
	s.Equal(domain.Debit, reversal.Entries[1].EntryType)
	s.True(original.Amount.Equal(reversal.Amount))
	s.mockRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestReverseJournal_LinkFailureCommitsNothing() {
	original := &domain.Journal{
		JournalID:   "j1",
		JournalDate: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Description: "June payroll",
		Status:      domain.Posted,
		Amount:      decimal.RequireFromString("100.00"),
	}
	entries := []domain.JournalEntry{
		{EntryID: "e1", JournalID: "j1", AccountID: "acc-exp", EntryType: domain.Debit, Amount: decimal.RequireFromString("100.00")},
		{EntryID: "e2", JournalID: "j1", AccountID: "acc-cash", EntryType: domain.Credit, Amount: decimal.RequireFromString("100.00")},
	}

	s.mockRepo.On("FindJournalByID", s.ctx, "j1").Return(original, nil)
	s.mockRepo.On("FindEntriesByJournalID", s.ctx, "j1").Return(entries, nil)
	s.mockRepo.On("Begin", s.ctx).Return(nil, nil)
	s.mockRepo.On("Rollback", s.ctx, mock.Anything).Return(nil)
	s.mockRepo.On("SaveJournalInTx", s.ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.mockRepo.On("LinkReversalInTx", s.ctx, mock.Anything, "j1", mock.Anything, "user-1", mock.Anything).
		Return(apperrors.NewAppError(500, "link failed", apperrors.ErrConflict))

	_, err := s.service.ReverseJournal(s.ctx, "j1", "user-1")

	// A failed back-link must take the reversing journal down with it;
	// otherwise a retry would post a second correction.
	s.Require().Error(err)
	s.mockRepo.AssertNotCalled(s.T(), "Commit", mock.Anything, mock.Anything)
	s.mockRepo.AssertCalled(s.T(), "Rollback", s.ctx, mock.Anything)
}

func (s *JournalServiceTestSuite) TestReverseJournal_ConcurrentSecondReversalLoses() {
	original := &domain.Journal{
		JournalID:   "j1",
		JournalDate: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Description: "June payroll",
		Status:      domain.Posted,
		Amount:      decimal.RequireFromString("100.00"),
	}
	entries := []domain.JournalEntry{
		{EntryID: "e1", JournalID: "j1", AccountID: "acc-exp", EntryType: domain.Debit, Amount: decimal.RequireFromString("100.00")},
		{EntryID: "e2", JournalID: "j1", AccountID: "acc-cash", EntryType: domain.Credit, Amount: decimal.RequireFromString("100.00")},
	}

	// Both requests read the original before either links, so the in-memory
	// already-reversed check passes for both; the row guard decides.
	s.mockRepo.On("FindJournalByID", s.ctx, "j1").Return(original, nil)
	s.mockRepo.On("FindEntriesByJournalID", s.ctx, "j1").Return(entries, nil)
	s.mockRepo.On("Begin", s.ctx).Return(nil, nil)
	s.mockRepo.On("Rollback", s.ctx, mock.Anything).Return(nil)
	s.mockRepo.On("SaveJournalInTx", s.ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	s.mockRepo.On("LinkReversalInTx", s.ctx, mock.Anything, "j1", mock.Anything, "user-1", mock.Anything).
		Return(apperrors.NewAppError(409, "journal j1 is already reversed or not POSTED", apperrors.ErrConflict))

	_, err := s.service.ReverseJournal(s.ctx, "j1", "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockRepo.AssertNotCalled(s.T(), "Commit", mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestReverseJournal_RefusesReversalOfReversal() {
	origID := "j0"
	reversal := &domain.Journal{JournalID: "j1", Status: domain.Posted, OriginalJournalID: &origID}
	s.mockRepo.On("FindJournalByID", s.ctx, "j1").Return(reversal, nil)

	_, err := s.service.ReverseJournal(s.ctx, "j1", "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *JournalServiceTestSuite) TestReverseJournal_RefusesAlreadyReversed() {
	revID := "j2"
	original := &domain.Journal{JournalID: "j1", Status: domain.Posted, ReversingJournalID: &revID}
	s.mockRepo.On("FindJournalByID", s.ctx, "j1").Return(original, nil)

	_, err := s.service.ReverseJournal(s.ctx, "j1", "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
