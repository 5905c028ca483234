package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmeshcher/credit-system/internal/model"
	"github.com/mmeshcher/credit-system/internal/validation"
)

func ptr[T any](v T) *T {
	return &v
}

func buildCustomerRequest() CustomerRequest {
	return CustomerRequest{
		FirstName: "Pablo",
		LastName:  "Souza",
		CPF:       "82842151011",
		Income:    ptr(decimal.NewFromFloat(33.0)),
		Email:     "pablo@email.com",
		Password:  "447788",
		ZipCode:   "3333",
		Street:    "Rua dos bobos",
	}
}

func TestCustomerRequest_RoundTrip(t *testing.T) {
	req := buildCustomerRequest()

	customer := req.ToCustomer()
	assert.Zero(t, customer.ID)
	assert.Equal(t, "447788", customer.Password)

	customer.ID = 1
	view := NewCustomerView(customer)

	assert.Equal(t, req.FirstName, view.FirstName)
	assert.Equal(t, req.LastName, view.LastName)
	assert.Equal(t, req.CPF, view.CPF)
	assert.Equal(t, req.Email, view.Email)
	assert.Equal(t, req.ZipCode, view.ZipCode)
	assert.Equal(t, req.Street, view.Street)
	assert.True(t, req.Income.Equal(view.Income))

	body, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "password")
	assert.NotContains(t, string(body), "447788")
	assert.Contains(t, string(body), `"income":33`)
}

func TestCustomerRequest_ToCustomerNormalizesCPF(t *testing.T) {
	bare := buildCustomerRequest()
	formatted := buildCustomerRequest()
	formatted.CPF = "828.421.510-11"

	assert.Equal(t, "82842151011", bare.ToCustomer().CPF)
	assert.Equal(t, bare.ToCustomer().CPF, formatted.ToCustomer().CPF)
}

func TestCustomerUpdateRequest_Apply(t *testing.T) {
	customer := buildCustomerRequest().ToCustomer()
	customer.ID = 5
	customer.Password = "hash"

	CustomerUpdateRequest{
		FirstName: "Pablo Updated",
		LastName:  "Souza Updated",
		Income:    ptr(decimal.NewFromInt(1000)),
		ZipCode:   "45656",
		Street:    "Rua Updated",
	}.Apply(&customer)

	assert.Equal(t, int64(5), customer.ID)
	assert.Equal(t, "Pablo Updated", customer.FirstName)
	assert.Equal(t, "Souza Updated", customer.LastName)
	assert.True(t, customer.Income.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "45656", customer.Address.ZipCode)
	assert.Equal(t, "Rua Updated", customer.Address.Street)
	assert.Equal(t, "82842151011", customer.CPF)
	assert.Equal(t, "pablo@email.com", customer.Email)
	assert.Equal(t, "hash", customer.Password)
}

func TestCreditRequest_ToCreditAndViews(t *testing.T) {
	day := NewDate(time.Now().AddDate(0, 0, 15))
	req := CreditRequest{
		CreditValue:           ptr(decimal.NewFromFloat(25.0)),
		DayOfFirstInstallment: &day,
		NumberOfInstallments:  ptr(2),
		CustomerID:            ptr(int64(1)),
	}

	credit := req.ToCredit()
	assert.NotEqual(t, uuid.Nil, credit.Code)
	assert.Equal(t, model.StatusInProgress, credit.Status)
	assert.Equal(t, int64(1), credit.CustomerID)
	assert.Equal(t, day.Time(), credit.DayFirstInstallment)
	assert.Nil(t, credit.Customer)

	detail := NewCreditView(credit)
	assert.Equal(t, credit.Code, detail.CreditCode)
	assert.True(t, detail.CreditValue.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, 2, detail.NumberOfInstallments)
	assert.Nil(t, detail.CustomerEmail)
	assert.Nil(t, detail.CustomerIncome)

	credit.Customer = &model.Customer{Email: "pablo@email.com", Income: decimal.NewFromFloat(33.0)}
	detail = NewCreditView(credit)
	require.NotNil(t, detail.CustomerEmail)
	assert.Equal(t, "pablo@email.com", *detail.CustomerEmail)
	assert.True(t, detail.CustomerIncome.Equal(decimal.NewFromInt(33)))

	list := NewCreditListViews([]model.Credit{credit})
	require.Len(t, list, 1)
	assert.Equal(t, credit.Code, list[0].CreditCode)
	assert.Equal(t, model.StatusInProgress, list[0].Status)

	assert.NotNil(t, NewCreditListViews(nil))
}

func TestCreditRequest_JSON(t *testing.T) {
	payload := `{"creditValue":25.0,"dayOfFirstInstallment":"2030-01-15","numberOfInstallments":2,"customerId":1}`

	var req CreditRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	require.NotNil(t, req.DayOfFirstInstallment)
	assert.Equal(t, time.Date(2030, time.January, 15, 0, 0, 0, 0, time.UTC), req.DayOfFirstInstallment.Time())

	var bad CreditRequest
	assert.Error(t, json.Unmarshal([]byte(`{"dayOfFirstInstallment":"15/01/2030"}`), &bad))
}

func TestRequests_Validate(t *testing.T) {
	now := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	v := validation.New(func() time.Time { return now })

	assert.NoError(t, v.Struct(buildCustomerRequest()))
	assert.Error(t, v.Struct(CustomerRequest{}))

	assert.NoError(t, v.Struct(CustomerUpdateRequest{
		FirstName: "a", LastName: "b", Income: ptr(decimal.NewFromInt(1)), ZipCode: "1", Street: "s",
	}))

	past := NewDate(now.AddDate(0, 0, -3))
	err := v.Struct(CreditRequest{
		CreditValue:           ptr(decimal.NewFromInt(10)),
		DayOfFirstInstallment: &past,
		NumberOfInstallments:  ptr(49),
		CustomerID:            ptr(int64(1)),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	tooPrecise := buildCustomerRequest()
	tooPrecise.Income = ptr(decimal.RequireFromString("33.005"))
	assert.Error(t, v.Struct(tooPrecise))

	tooLong := buildCustomerRequest()
	tooLong.ZipCode = strings.Repeat("1", 33)
	assert.Error(t, v.Struct(tooLong))
}
