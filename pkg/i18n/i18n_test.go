package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		token string
		want  language.Tag
		ok    bool
	}{
		{"fr", French, true},
		{"en", English, true},
		{"de", French, false},
		{"", French, false},
		{"english", French, false},
		{"zz", French, false},
	}
	for _, tc := range cases {
		got, ok := Resolve(tc.token, French)
		assert.Equal(t, tc.want, got, tc.token)
		assert.Equal(t, tc.ok, ok, tc.token)
	}

	got, ok := Resolve("it", English)
	assert.False(t, ok)
	assert.Equal(t, English, got)
}

func TestContextRoundTrip(t *testing.T) {
	ctx := WithLocale(context.Background(), English)
	assert.Equal(t, English, FromContext(ctx))
	assert.Equal(t, French, FromContext(context.Background()))
	assert.Equal(t, "en", Code(FromContext(ctx)))
}

func TestTranslate(t *testing.T) {
	assert.Equal(t, "Invalid credentials", T(English, KeyInvalidCredentials))
	assert.Equal(t, "Identifiants invalides", T(French, KeyInvalidCredentials))
	assert.Equal(t, "unknown.key", T(English, "unknown.key"))
}

func TestEveryKeyHasBothLocales(t *testing.T) {
	for key, pair := range texts {
		assert.NotEmpty(t, pair[0], key)
		assert.NotEmpty(t, pair[1], key)
	}
}
