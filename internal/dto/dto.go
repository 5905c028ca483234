// Package dto содержит форматы запросов и ответов API и преобразования между ними и доменными сущностями.
package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmeshcher/credit-system/internal/model"
	"github.com/mmeshcher/credit-system/internal/validation"
)

func init() {
	// Денежные значения отдаются числами, а не строками.
	decimal.MarshalJSONWithoutQuotes = true
}

// CustomerRequest описывает запрос на регистрацию клиента.
type CustomerRequest struct {
	FirstName string           `json:"firstName" validate:"required,max=255"`
	LastName  string           `json:"lastName" validate:"required,max=255"`
	CPF       string           `json:"cpf" validate:"required,cpf"`
	Income    *decimal.Decimal `json:"income" validate:"required,money"`
	Email     string           `json:"email" validate:"required,email,max=255"`
	Password  string           `json:"password" validate:"required,max=72"`
	ZipCode   string           `json:"zipCode" validate:"required,max=32"`
	Street    string           `json:"street" validate:"required,max=255"`
}

// ToCustomer создаёт нового клиента без идентификатора. CPF сохраняется в виде 11 цифр.
func (r CustomerRequest) ToCustomer() model.Customer {
	return model.Customer{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		CPF:       validation.NormalizeCPF(r.CPF),
		Income:    valueOf(r.Income),
		Email:     r.Email,
		Password:  r.Password,
		Address: model.Address{
			ZipCode: r.ZipCode,
			Street:  r.Street,
		},
	}
}

// CustomerUpdateRequest описывает запрос на изменение клиента. CPF, e-mail и пароль не меняются.
type CustomerUpdateRequest struct {
	FirstName string           `json:"firstName" validate:"required,max=255"`
	LastName  string           `json:"lastName" validate:"required,max=255"`
	Income    *decimal.Decimal `json:"income" validate:"required,money"`
	ZipCode   string           `json:"zipCode" validate:"required,max=32"`
	Street    string           `json:"street" validate:"required,max=255"`
}

// Apply переносит изменяемые поля в существующего клиента.
func (r CustomerUpdateRequest) Apply(c *model.Customer) {
	c.FirstName = r.FirstName
	c.LastName = r.LastName
	c.Income = valueOf(r.Income)
	c.Address.Street = r.Street
	c.Address.ZipCode = r.ZipCode
}

// CreditRequest описывает заявку на кредит.
type CreditRequest struct {
	CreditValue           *decimal.Decimal `json:"creditValue" validate:"required,positive,money"`
	DayOfFirstInstallment *Date            `json:"dayOfFirstInstallment" validate:"required,future"`
	NumberOfInstallments  *int             `json:"numberOfInstallments" validate:"required,min=1,max=48"`
	CustomerID            *int64           `json:"customerId" validate:"required"`
}

// ToCredit создаёт новый кредит. Существование клиента здесь не проверяется.
func (r CreditRequest) ToCredit() model.Credit {
	var (
		day          Date
		installments int
		customerID   int64
	)
	if r.DayOfFirstInstallment != nil {
		day = *r.DayOfFirstInstallment
	}
	if r.NumberOfInstallments != nil {
		installments = *r.NumberOfInstallments
	}
	if r.CustomerID != nil {
		customerID = *r.CustomerID
	}

	return model.NewCredit(valueOf(r.CreditValue), day.Time(), installments, customerID)
}

// CustomerView описывает клиента в ответах API. Пароль не раскрывается.
type CustomerView struct {
	ID        int64           `json:"id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	CPF       string          `json:"cpf"`
	Email     string          `json:"email"`
	Income    decimal.Decimal `json:"income"`
	ZipCode   string          `json:"zipCode"`
	Street    string          `json:"street"`
}

// NewCustomerView строит представление клиента.
func NewCustomerView(c model.Customer) CustomerView {
	return CustomerView{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		CPF:       c.CPF,
		Email:     c.Email,
		Income:    c.Income,
		ZipCode:   c.Address.ZipCode,
		Street:    c.Address.Street,
	}
}

// CreditView содержит подробные данные кредита вместе с данными клиента.
type CreditView struct {
	CreditCode           uuid.UUID        `json:"creditCode"`
	CreditValue          decimal.Decimal  `json:"creditValue"`
	NumberOfInstallments int              `json:"numberOfInstallments"`
	Status               model.Status     `json:"status"`
	CustomerEmail        *string          `json:"customerEmail"`
	CustomerIncome       *decimal.Decimal `json:"customerIncome"`
}

// NewCreditView строит подробное представление кредита.
func NewCreditView(c model.Credit) CreditView {
	view := CreditView{
		CreditCode:           c.Code,
		CreditValue:          c.Value,
		NumberOfInstallments: c.NumberOfInstallments,
		Status:               c.Status,
	}

	if c.Customer != nil {
		email := c.Customer.Email
		income := c.Customer.Income
		view.CustomerEmail = &email
		view.CustomerIncome = &income
	}

	return view
}

// CreditListView содержит краткие данные кредита для списков.
type CreditListView struct {
	CreditCode           uuid.UUID       `json:"creditCode"`
	CreditValue          decimal.Decimal `json:"creditValue"`
	NumberOfInstallments int             `json:"numberOfInstallments"`
	Status               model.Status    `json:"status"`
}

// NewCreditListView строит краткое представление кредита.
func NewCreditListView(c model.Credit) CreditListView {
	return CreditListView{
		CreditCode:           c.Code,
		CreditValue:          c.Value,
		NumberOfInstallments: c.NumberOfInstallments,
		Status:               c.Status,
	}
}

// NewCreditListViews строит краткие представления; для пустого списка возвращает пустой срез, а не nil.
func NewCreditListViews(credits []model.Credit) []CreditListView {
	views := make([]CreditListView, 0, len(credits))
	for _, c := range credits {
		views = append(views, NewCreditListView(c))
	}
	return views
}

func valueOf(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
