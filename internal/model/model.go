// Package model содержит доменные сущности кредитной системы.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Address описывает адрес клиента. Не имеет собственной идентичности и хранится вместе с клиентом.
type Address struct {
	ZipCode string
	Street  string
}

// Customer представляет зарегистрированного клиента.
type Customer struct {
	ID        int64
	FirstName string
	LastName  string
	CPF       string
	Email     string
	// Password содержит пароль из запроса до сохранения и bcrypt-хеш после него.
	Password string
	Income   decimal.Decimal
	Address  Address
}

// Status описывает статус рассмотрения кредита.
type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusApproved   Status = "APPROVED"
	StatusRejected   Status = "REJECTED"
)

// Valid сообщает, принадлежит ли статус закрытому набору значений.
func (s Status) Valid() bool {
	switch s {
	case StatusInProgress, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Credit описывает кредит, оформленный на клиента.
type Credit struct {
	ID                   int64
	Code                 uuid.UUID
	Value                decimal.Decimal
	DayFirstInstallment  time.Time
	NumberOfInstallments int
	Status               Status
	CustomerID           int64
	// Customer заполняется сервисом или репозиторием; может быть nil.
	Customer *Customer
}

// NewCredit создаёт кредит со случайным публичным кодом и статусом IN_PROGRESS.
func NewCredit(value decimal.Decimal, dayFirstInstallment time.Time, installments int, customerID int64) Credit {
	return Credit{
		Code:                 uuid.New(),
		Value:                value,
		DayFirstInstallment:  dayFirstInstallment,
		NumberOfInstallments: installments,
		Status:               StatusInProgress,
		CustomerID:           customerID,
	}
}
