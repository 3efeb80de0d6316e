package locale

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// ErrNoLocale is returned when no locale is available for the request.
var ErrNoLocale = errors.New("locale: no locale available")

// Provider returns the locale of the current request.
type Provider interface {
	Locale(ctx context.Context) (string, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) (string, error)

// Locale calls f.
func (f ProviderFunc) Locale(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticProvider always returns the same locale.
type StaticProvider string

// Locale returns the configured locale or ErrNoLocale when it is empty.
func (p StaticProvider) Locale(context.Context) (string, error) {
	if strings.TrimSpace(string(p)) == "" {
		return "", ErrNoLocale
	}
	return string(p), nil
}

type contextKey struct{}

// WithLocale stores code on ctx for ContextProvider.
func WithLocale(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, contextKey{}, code)
}

// FromContext returns the locale stored by WithLocale.
func FromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	code, ok := ctx.Value(contextKey{}).(string)
	if !ok || strings.TrimSpace(code) == "" {
		return "", false
	}
	return code, true
}

// ContextProvider reads the locale stored in the request context and falls
// back to Default.
type ContextProvider struct {
	Default string
}

// Locale implements Provider.
func (p ContextProvider) Locale(ctx context.Context) (string, error) {
	if code, ok := FromContext(ctx); ok {
		return code, nil
	}
	if strings.TrimSpace(p.Default) != "" {
		return p.Default, nil
	}
	return "", ErrNoLocale
}

// Middleware negotiates the request locale from the Accept-Language header
// against supported and stores it on the request context. Requests whose
// context already carries a locale are left untouched.
func Middleware(supported []string, next http.Handler) http.Handler {
	tags := make([]language.Tag, 0, len(supported))
	for _, code := range supported {
		tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(code), "_", "-"))
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	var matcher language.Matcher
	if len(tags) > 0 {
		matcher = language.NewMatcher(tags)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); ok || matcher == nil {
			next.ServeHTTP(w, r)
			return
		}
		header := r.Header.Get("Accept-Language")
		if strings.TrimSpace(header) == "" {
			next.ServeHTTP(w, r)
			return
		}
		_, index := language.MatchStrings(matcher, header)
		code := Normalize(tags[index].String())
		next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), code)))
	})
}
