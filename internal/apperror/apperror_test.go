package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusiness(t *testing.T) {
	err := Business("Id %d not found", 7)

	assert.Equal(t, KindBusiness, err.Kind)
	assert.Equal(t, "Id 7 not found", err.Error())
	assert.Equal(t, map[string]string{"message": "Id 7 not found"}, err.Details)
}

func TestConflictUnwrap(t *testing.T) {
	cause := errors.New("duplicate key value violates unique constraint")
	err := Conflict("customers_cpf_key", cause.Error(), cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "customers_cpf_key", firstKey(err.Details))

	anon := Conflict("", "boom", nil)
	assert.Equal(t, "constraint", firstKey(anon.Details))
}

func TestAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("save customer: %w", Validation(map[string]string{"email": "Invalid e-mail"}))

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindValidation, appErr.Kind)
	assert.True(t, IsKind(wrapped, KindValidation))
	assert.False(t, IsKind(wrapped, KindConflict))
	assert.False(t, IsKind(errors.New("plain"), KindValidation))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "ValidationError", KindValidation.String())
	assert.Equal(t, "BusinessError", KindBusiness.String())
	assert.Equal(t, "DataAccessError", KindConflict.String())
	assert.Equal(t, "InternalError", Kind(0).String())
}

func firstKey(m map[string]string) string {
	for k := range m {
		return k
	}
	return ""
}
