package repositories

import (
	"strings"

	"gorm.io/gorm"

	"facturo/internal/models/db_models"
	"facturo/pkg/utils"
)

// Ownership is resolved with IN-subqueries up the Client -> Account chain so
// the selected columns never collide with joined tables.

func subquery(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true})
}

func clientIDsOf(db *gorm.DB, accountID uint) *gorm.DB {
	return subquery(db).Model(&db_models.Client{}).Select("id").Where("account_id = ?", accountID)
}

func projectIDsOf(db *gorm.DB, accountID uint) *gorm.DB {
	return subquery(db).Model(&db_models.Project{}).Select("id").Where("client_id IN (?)", clientIDsOf(db, accountID))
}

func quoteIDsOf(db *gorm.DB, accountID uint) *gorm.DB {
	return subquery(db).Model(&db_models.Quote{}).Select("id").Where("project_id IN (?)", projectIDsOf(db, accountID))
}

func invoiceIDsOf(db *gorm.DB, accountID uint) *gorm.DB {
	return subquery(db).Model(&db_models.Invoice{}).Select("id").Where("project_id IN (?)", projectIDsOf(db, accountID))
}

// ownedBy restricts column to the ids returned by ids for the caller's account.
func ownedBy(scope utils.Scope, column string, ids func(*gorm.DB, uint) *gorm.DB) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if scope.Admin {
			return db
		}
		return db.Where(column+" IN (?)", ids(db, scope.AccountID))
	}
}

// paginate orders by a whitelisted column then applies offset/limit.
func paginate(params utils.ListParams, sortable map[string]string, fallback string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		column, ok := sortable[params.Sort]
		if !ok {
			column = fallback
		}
		direction := "ASC"
		if params.Desc {
			direction = "DESC"
		}
		return db.Order(column + " " + direction).Offset(params.Offset()).Limit(params.PageSize)
	}
}

func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + strings.ToLower(r.Replace(s)) + "%"
}

// deleteProjects removes the given projects and everything below them,
// leaves first. projectIDs is a slice or a subquery.
func deleteProjects(tx *gorm.DB, projectIDs interface{}) error {
	invoiceIDs := subquery(tx).Model(&db_models.Invoice{}).Select("id").Where("project_id IN (?)", projectIDs)
	quoteIDs := subquery(tx).Model(&db_models.Quote{}).Select("id").Where("project_id IN (?)", projectIDs)

	steps := []struct {
		model  interface{}
		column string
		ids    interface{}
	}{
		{&db_models.InvoiceLine{}, "invoice_id", invoiceIDs},
		{&db_models.Invoice{}, "project_id", projectIDs},
		{&db_models.QuoteLine{}, "quote_id", quoteIDs},
		{&db_models.Quote{}, "project_id", projectIDs},
		{&db_models.Project{}, "id", projectIDs},
	}
	for _, step := range steps {
		if err := tx.Where(step.column+" IN (?)", step.ids).Delete(step.model).Error; err != nil {
			return err
		}
	}
	return nil
}
