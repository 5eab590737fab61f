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

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
	ctx      context.Context
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockAccountRepository)
	s.service = services.NewAccountService(s.mockRepo)
	s.ctx = context.Background()
}

func (s *AccountServiceTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{
		AccountNumber: "1000",
		Name:          "Cash at Bank",
		AccountType:   domain.Asset,
	}
	s.mockRepo.On("SaveAccount", s.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountNumber == "1000" && a.IsActive && a.AccountID != ""
	})).Return(nil)

	account, err := s.service.CreateAccount(s.ctx, req, "user-1")

	s.Require().NoError(err)
	s.Equal("1000", account.AccountNumber)
	s.Equal(domain.Asset, account.AccountType)
	s.True(account.IsActive)
	s.Equal("user-1", account.CreatedBy)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestCreateAccount_RejectsUnknownType() {
	req := dto.CreateAccountRequest{
		AccountNumber: "1000",
		Name:          "Cash",
		AccountType:   domain.AccountType("SAVINGS"),
	}

	_, err := s.service.CreateAccount(s.ctx, req, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestCreateAccount_RequiresAccountNumber() {
	req := dto.CreateAccountRequest{Name: "Cash", AccountType: domain.Asset}

	_, err := s.service.CreateAccount(s.ctx, req, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AccountServiceTestSuite) TestUpdateAccount_DoesNotTouchNumberOrType() {
	existing := &domain.Account{
		AccountID:     "acc-1",
		AccountNumber: "1000",
		Name:          "Cash",
		AccountType:   domain.Asset,
		IsActive:      true,
	}
	newName := "Cash and Equivalents"

	s.mockRepo.On("FindAccountByID", s.ctx, "acc-1").Return(existing, nil)
	s.mockRepo.On("UpdateAccount", s.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == newName && a.AccountNumber == "1000" && a.AccountType == domain.Asset
	})).Return(nil)

	account, err := s.service.UpdateAccount(s.ctx, "acc-1", dto.UpdateAccountRequest{Name: &newName}, "user-2")

	s.Require().NoError(err)
	s.Equal(newName, account.Name)
	s.Equal("1000", account.AccountNumber)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestUpdateAccount_NoChangesSkipsWrite() {
	existing := &domain.Account{AccountID: "acc-1", AccountNumber: "1000", Name: "Cash"}
	s.mockRepo.On("FindAccountByID", s.ctx, "acc-1").Return(existing, nil)

	account, err := s.service.UpdateAccount(s.ctx, "acc-1", dto.UpdateAccountRequest{}, "user-2")

	s.Require().NoError(err)
	s.Equal("Cash", account.Name)
	s.mockRepo.AssertNotCalled(s.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestDeactivateAccount_NotFound() {
	s.mockRepo.On("FindAccountByID", s.ctx, "missing").Return(nil, apperrors.ErrNotFound)

	err := s.service.DeactivateAccount(s.ctx, "missing", "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountServiceTestSuite) TestGetAccountBalance_DelegatesToHistory() {
	existing := &domain.Account{AccountID: "acc-1", AccountNumber: "1000", AccountType: domain.Asset}
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	expected := decimal.RequireFromString("1234.56")

	s.mockRepo.On("FindAccountByID", s.ctx, "acc-1").Return(existing, nil)
	s.mockRepo.On("PostedBalance", s.ctx, "acc-1", asOf).Return(expected, nil)

	balance, err := s.service.GetAccountBalance(s.ctx, "acc-1", asOf)

	s.Require().NoError(err)
	s.True(expected.Equal(balance))
	s.mockRepo.AssertExpectations(s.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
