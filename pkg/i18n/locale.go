// Package i18n resolves the request locale and renders localized messages.
package i18n

import (
	"context"

	"golang.org/x/text/language"
)

var (
	French  = language.French
	English = language.English

	// Supported is the fixed set of locales accepted in route paths.
	Supported = []language.Tag{French, English}

	matcher = language.NewMatcher(Supported)
)

type ctxKey struct{}

// Resolve maps a path token to a supported locale. Anything that is not an
// exact match falls back to the given default.
func Resolve(token string, fallback language.Tag) (language.Tag, bool) {
	if len(token) != 2 {
		return fallback, false
	}
	tag, err := language.Parse(token)
	if err != nil {
		return fallback, false
	}
	_, idx, conf := matcher.Match(tag)
	if conf != language.Exact {
		return fallback, false
	}
	return Supported[idx], true
}

// ParseDefault reads a configured default locale, falling back to French.
func ParseDefault(code string) language.Tag {
	tag, ok := Resolve(code, French)
	if !ok {
		return French
	}
	return tag
}

func WithLocale(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, ctxKey{}, tag)
}

// FromContext returns the request locale, French when none was set.
func FromContext(ctx context.Context) language.Tag {
	if ctx == nil {
		return French
	}
	if tag, ok := ctx.Value(ctxKey{}).(language.Tag); ok {
		return tag
	}
	return French
}

// Code is the two-letter form used in URLs.
func Code(tag language.Tag) string {
	base, _ := tag.Base()
	return base.String()
}
