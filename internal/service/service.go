// Package service реализует бизнес-логику кредитной системы.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmeshcher/credit-system/internal/apperror"
	"github.com/mmeshcher/credit-system/internal/model"
	"github.com/mmeshcher/credit-system/internal/repository"
)

// CustomerRepository описывает контракт доступа к данным клиентов.
type CustomerRepository interface {
	CreateCustomer(ctx context.Context, c model.Customer) (int64, error)
	UpdateCustomer(ctx context.Context, c model.Customer) error
	FindCustomerByID(ctx context.Context, id int64) (*model.Customer, error)
	CustomerExists(ctx context.Context, id int64) (bool, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

// CreditRepository описывает контракт доступа к данным кредитов.
type CreditRepository interface {
	CreateCredit(ctx context.Context, c model.Credit) (int64, error)
	FindCreditByCode(ctx context.Context, code uuid.UUID) (*model.Credit, error)
	FindCreditsByCustomer(ctx context.Context, customerID int64) ([]model.Credit, error)
}

// CustomerService содержит операции над клиентами.
type CustomerService struct {
	repo       CustomerRepository
	bcryptCost int
}

// NewCustomerService создаёт сервис клиентов.
func NewCustomerService(repo CustomerRepository) *CustomerService {
	return &CustomerService{
		repo:       repo,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// Save сохраняет клиента: без идентификатора создаёт нового, иначе обновляет существующего.
func (s *CustomerService) Save(ctx context.Context, c *model.Customer) error {
	if c.ID != 0 {
		if err := s.repo.UpdateCustomer(ctx, *c); err != nil {
			if errors.Is(err, repository.ErrCustomerNotFound) {
				return apperror.Business("Id %d not found", c.ID)
			}
			return err
		}
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(c.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return apperror.Validation(map[string]string{"password": "Password must be at most 72 bytes"})
		}
		return fmt.Errorf("hash password: %w", err)
	}

	stored := *c
	stored.Password = string(hashed)

	id, err := s.repo.CreateCustomer(ctx, stored)
	if err != nil {
		return err
	}

	stored.ID = id
	*c = stored
	return nil
}

// FindByID возвращает клиента по идентификатору.
func (s *CustomerService) FindByID(ctx context.Context, id int64) (*model.Customer, error) {
	c, err := s.repo.FindCustomerByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, apperror.Business("Id %d not found", id)
		}
		return nil, err
	}
	return c, nil
}

// Exists сообщает, зарегистрирован ли клиент.
func (s *CustomerService) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.CustomerExists(ctx, id)
}

// Delete удаляет клиента. Удаление кредитов клиента выполняет хранилище.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	c, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteCustomer(ctx, c.ID); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return apperror.Business("Id %d not found", id)
		}
		return err
	}
	return nil
}

// CustomerFinder описывает часть сервиса клиентов, нужную сервису кредитов.
type CustomerFinder interface {
	FindByID(ctx context.Context, id int64) (*model.Customer, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// CreditService содержит операции над кредитами.
type CreditService struct {
	repo      CreditRepository
	customers CustomerFinder
}

// NewCreditService создаёт сервис кредитов.
func NewCreditService(repo CreditRepository, customers CustomerFinder) *CreditService {
	return &CreditService{
		repo:      repo,
		customers: customers,
	}
}

// Save проверяет существование клиента и сохраняет кредит. Возвращённый кредит содержит данные клиента.
func (s *CreditService) Save(ctx context.Context, credit model.Credit) (*model.Credit, error) {
	customer, err := s.customers.FindByID(ctx, credit.CustomerID)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.CreateCredit(ctx, credit)
	if err != nil {
		return nil, err
	}

	credit.ID = id
	credit.Customer = customer
	return &credit, nil
}

// FindAllByCustomer возвращает кредиты клиента. Для несуществующего клиента запрос кредитов не выполняется.
func (s *CreditService) FindAllByCustomer(ctx context.Context, customerID int64) ([]model.Credit, error) {
	exists, err := s.customers.Exists(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperror.Business("Customer %d not found", customerID)
	}

	return s.repo.FindCreditsByCustomer(ctx, customerID)
}

// FindByCreditCode возвращает кредит по коду, если он принадлежит указанному клиенту.
func (s *CreditService) FindByCreditCode(ctx context.Context, customerID int64, code uuid.UUID) (*model.Credit, error) {
	credit, err := s.repo.FindCreditByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrCreditNotFound) {
			return nil, apperror.Business("CreditCode %s not found", code)
		}
		return nil, err
	}

	// Владелец кредита клиенту не сообщается.
	if credit.CustomerID != customerID {
		return nil, apperror.Business("Contact admin")
	}

	return credit, nil
}
