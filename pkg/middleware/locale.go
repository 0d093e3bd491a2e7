package middleware

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"facturo/pkg/i18n"
)

const CtxLocale = "locale"

// Locale reads the :locale path parameter. Unsupported values fall back to
// the default; the tag goes on both the gin and the request context.
func Locale(fallback language.Tag) gin.HandlerFunc {
	return func(c *gin.Context) {
		tag, _ := i18n.Resolve(c.Param("locale"), fallback)
		c.Set(CtxLocale, tag)
		c.Request = c.Request.WithContext(i18n.WithLocale(c.Request.Context(), tag))
		c.Next()
	}
}
