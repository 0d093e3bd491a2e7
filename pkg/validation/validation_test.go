package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facturo/pkg/i18n"
)

type linePayload struct {
	Description string           `json:"description" validate:"required"`
	UnitPrice   *decimal.Decimal `json:"unit_price" validate:"required,money"`
	Quantity    int              `json:"quantity" validate:"required,min=1"`
}

type accountPayload struct {
	Email       string           `json:"email" validate:"required,email"`
	ExpenseRate *decimal.Decimal `json:"expense_rate" validate:"omitempty,percent"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, Register(v))
	return v
}

func TestMoneyRule(t *testing.T) {
	v := newValidator(t)
	neg := decimal.RequireFromString("-1")
	ok := decimal.RequireFromString("10.50")

	require.NoError(t, v.Struct(linePayload{Description: "x", UnitPrice: &ok, Quantity: 1}))

	err := v.Struct(linePayload{Description: "x", UnitPrice: &neg, Quantity: 0})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	fields := Translate(i18n.English, verrs)
	assert.Contains(t, fields, "unit_price")
	assert.Contains(t, fields, "quantity")
	assert.Equal(t, "unit_price must be a positive amount", fields["unit_price"][0])
}

func TestMissingPriceIsRequired(t *testing.T) {
	v := newValidator(t)
	err := v.Struct(linePayload{Description: "x", Quantity: 2})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, Translate(i18n.English, verrs), "unit_price")
}

func TestPercentRuleAndFrenchMessages(t *testing.T) {
	v := newValidator(t)
	over := decimal.RequireFromString("120")
	err := v.Struct(accountPayload{Email: "nope", ExpenseRate: &over})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	fields := Translate(i18n.French, verrs)
	assert.Equal(t, "expense_rate doit être compris entre 0 et 100", fields["expense_rate"][0])
	assert.NotEmpty(t, fields["email"])

	require.NoError(t, v.Struct(accountPayload{Email: "a@b.co"}))
}

type Profile struct {
	Email string `json:"email" validate:"required,email"`
}

type registerPayload struct {
	Profile
	Password string `json:"password" validate:"required"`
}

func TestEmbeddedFieldsUseJSONNames(t *testing.T) {
	v := newValidator(t)
	err := v.Struct(registerPayload{Profile: Profile{Email: "nope"}})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	fields := Translate(i18n.English, verrs)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}
