package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/customer-directory-api/internal/models"
)

type AccountService interface {
	CreateAccount(account *models.Account) error
	GetAccountByEmail(email string) (*models.Account, error)
	GetAccountByID(id uint) (*models.Account, error)
}

type accountService struct {
	db *gorm.DB
}

func NewAccountService(db *gorm.DB) AccountService {
	return &accountService{db: db}
}

func (s *accountService) CreateAccount(account *models.Account) error {
	var existing models.Account
	if err := s.db.Where("email = ?", account.Email).First(&existing).Error; err == nil {
		return errors.New("account_already_exists")
	}

	return s.db.Create(account).Error
}

func (s *accountService) GetAccountByEmail(email string) (*models.Account, error) {
	var account models.Account
	if err := s.db.Where("email = ?", email).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *accountService) GetAccountByID(id uint) (*models.Account, error) {
	var account models.Account
	if err := s.db.First(&account, id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}
