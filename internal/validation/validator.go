package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/mmeshcher/credit-system/internal/apperror"
)

var timeType = reflect.TypeOf(time.Time{})

const moneyScale = 2

// maxMoney ограничивает денежные значения столбцами NUMERIC(19, 2): не более 17 цифр до запятой.
var maxMoney = decimal.New(1, 17)

// messages содержит сообщения для пар "поле.правило".
var messages = map[string]string{
	"firstName.required":             "First name can't be empty",
	"lastName.required":              "Last name can't be empty",
	"cpf.required":                   "CPF can't be empty",
	"cpf.cpf":                        "Invalid CPF",
	"income.required":                "Income can't be null",
	"income.money":                   "Income must have at most 17 integer digits and 2 decimal places",
	"email.required":                 "E-mail can't be empty",
	"email.email":                    "Invalid e-mail",
	"password.required":              "Password can't be empty",
	"zipCode.required":               "Zip code can't be empty",
	"street.required":                "Street can't be empty",
	"creditValue.required":           "Credit value can't be null",
	"creditValue.positive":           "Credit value must be greater than zero",
	"creditValue.money":              "Credit value must have at most 17 integer digits and 2 decimal places",
	"dayOfFirstInstallment.required": "Day of first installment can't be null",
	"dayOfFirstInstallment.future":   "Day of first installment must be in the future",
	"numberOfInstallments.required":  "Number of installments can't be null",
	"numberOfInstallments.min":       "Min number of installments is 1",
	"numberOfInstallments.max":       "Max number of installments is 48",
	"customerId.required":            "Customer id can't be null",
}

// Validator проверяет структуры запросов по тегам validate.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// New создаёт валидатор. Функция now задаёт текущее время для правила future; nil означает time.Now.
func New(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}

	v := &Validator{
		validate: validator.New(),
		now:      now,
	}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// decimal.Decimal проверяется по строковому представлению, иначе validator считает его вложенной структурой.
	v.validate.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	mustRegister(v.validate, "cpf", func(fl validator.FieldLevel) bool {
		return IsValidCPF(fl.Field().String())
	})
	mustRegister(v.validate, "positive", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && d.IsPositive()
	})
	mustRegister(v.validate, "money", isMoney)
	mustRegister(v.validate, "future", v.isFutureDate)

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// isMoney проверяет, что значение помещается в NUMERIC(19, 2) без округления.
func isMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return d.Equal(d.Truncate(moneyScale)) && d.Abs().LessThan(maxMoney)
}

// isFutureDate сравнивает только календарные даты: сегодняшняя дата будущей не считается.
func (v *Validator) isFutureDate(fl validator.FieldLevel) bool {
	field := fl.Field()
	if !field.Type().ConvertibleTo(timeType) {
		return false
	}

	day := field.Convert(timeType).Interface().(time.Time)
	now := v.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	return date.After(today)
}

// Struct проверяет структуру и возвращает *apperror.Error категории Validation со всеми ошибками полей.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate %T: %w", s, err)
	}

	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := details[fe.Field()]; seen {
			continue
		}
		details[fe.Field()] = message(fe)
	}

	return apperror.Validation(details)
}

func message(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}

	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return "Must be at least " + fe.Param()
	case "max":
		return "Must be at most " + fe.Param()
	case "future":
		return "Must be in the future"
	case "money":
		return "Must have at most 17 integer digits and 2 decimal places"
	default:
		return "Invalid value"
	}
}
