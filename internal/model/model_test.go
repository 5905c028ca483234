package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewCredit(t *testing.T) {
	day := time.Date(2030, time.April, 27, 0, 0, 0, 0, time.UTC)

	a := NewCredit(decimal.NewFromFloat(56.0), day, 3, 1)
	b := NewCredit(decimal.NewFromFloat(56.0), day, 3, 1)

	assert.NotEqual(t, uuid.Nil, a.Code)
	assert.NotEqual(t, a.Code, b.Code, "credit codes must be unique")
	assert.Equal(t, StatusInProgress, a.Status)
	assert.Equal(t, int64(1), a.CustomerID)
	assert.Equal(t, 3, a.NumberOfInstallments)
	assert.True(t, a.Value.Equal(decimal.NewFromInt(56)))
	assert.Nil(t, a.Customer)
	assert.Zero(t, a.ID)
}

func TestStatusValid(t *testing.T) {
	tests := []struct {
		status Status
		valid  bool
	}{
		{StatusInProgress, true},
		{StatusApproved, true},
		{StatusRejected, true},
		{Status("CANCELED"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.status.Valid())
		})
	}
}
