// Package validation configures gin's validator engine: json field names,
// money rules and en/fr translations of field errors.
package validation

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	fr_translations "github.com/go-playground/validator/v10/translations/fr"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"facturo/pkg/i18n"
)

var (
	once        sync.Once
	setupErr    error
	translators = map[string]ut.Translator{}
)

// Setup registers the custom rules and translations on gin's validator.
// It is safe to call more than once.
func Setup() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		setupErr = Register(v)
	})
	return setupErr
}

// Register applies the configuration to any validator instance.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)

	if err := v.RegisterValidation("money", validMoney); err != nil {
		return err
	}
	if err := v.RegisterValidation("percent", validPercent); err != nil {
		return err
	}

	enLocale, frLocale := en.New(), fr.New()
	uni := ut.New(enLocale, enLocale, frLocale)

	enTrans, _ := uni.GetTranslator("en")
	frTrans, _ := uni.GetTranslator("fr")
	if err := en_translations.RegisterDefaultTranslations(v, enTrans); err != nil {
		return err
	}
	if err := fr_translations.RegisterDefaultTranslations(v, frTrans); err != nil {
		return err
	}

	custom := []struct {
		tag    string
		trans  ut.Translator
		format string
	}{
		{"money", enTrans, "{0} must be a positive amount"},
		{"money", frTrans, "{0} doit être un montant positif"},
		{"percent", enTrans, "{0} must be between 0 and 100"},
		{"percent", frTrans, "{0} doit être compris entre 0 et 100"},
	}
	for _, c := range custom {
		if err := registerTranslation(v, c.trans, c.tag, c.format); err != nil {
			return err
		}
	}

	translators["en"] = enTrans
	translators["fr"] = frTrans
	return nil
}

func registerTranslation(v *validator.Validate, trans ut.Translator, tag, format string) error {
	return v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error {
			return t.Add(tag, format, true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

// Translate turns validator errors into field -> messages in the given locale.
func Translate(tag language.Tag, errs validator.ValidationErrors) map[string][]string {
	trans := translators[i18n.Code(tag)]
	out := make(map[string][]string, len(errs))
	for _, fe := range errs {
		field := fieldPath(fe)
		msg := fe.Error()
		if trans != nil {
			msg = fe.Translate(trans)
		}
		out[field] = append(out[field], msg)
	}
	return out
}

// fieldPath drops the struct names from the namespace, embedded ones
// included: "QuoteRequest.lines[0].LineRequest.quantity" -> "lines[0].quantity".
func fieldPath(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) < 2 {
		return fe.Field()
	}
	kept := make([]string, 0, len(parts)-1)
	for i, p := range parts[1:] {
		last := i == len(parts)-2
		if !last && p != "" && unicode.IsUpper(rune(p[0])) {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, ".")
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func validMoney(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && !d.IsNegative()
}

var hundred = decimal.NewFromInt(100)

func validPercent(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && !d.IsNegative() && d.LessThanOrEqual(hundred)
}
