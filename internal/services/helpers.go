package services

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"facturo/internal/models/db_models"
	"facturo/internal/models/request_models"
	"facturo/pkg/i18n"
	"facturo/pkg/utils"
)

// storeError maps a write failure: missing rows become ErrNotFound,
// anything else a database error.
func storeError(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrNotFound
	}
	return utils.WrapDB(op, err)
}

// parseDate records an invalid date on v and returns the zero date.
func parseDate(v *utils.ValidationError, field, value string) datatypes.Date {
	d, err := utils.ParseDate(value)
	if err != nil {
		v.Add(field, i18n.KeyInvalidDate)
	}
	return d
}

func quoteLinesFrom(lines []request_models.LineRequest) []db_models.QuoteLine {
	out := make([]db_models.QuoteLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, db_models.QuoteLine{
			Description: l.Description,
			UnitPrice:   *l.UnitPrice,
			Quantity:    l.Quantity,
		})
	}
	return out
}

func invoiceLinesFrom(lines []request_models.LineRequest) []db_models.InvoiceLine {
	out := make([]db_models.InvoiceLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, db_models.InvoiceLine{
			Description: l.Description,
			UnitPrice:   *l.UnitPrice,
			Quantity:    l.Quantity,
		})
	}
	return out
}
