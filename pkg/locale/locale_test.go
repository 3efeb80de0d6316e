package locale_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-tinymce/pkg/locale"
)

func langFS() fstest.MapFS {
	return fstest.MapFS{
		"langs/fr.js":    {Data: []byte("tinymce.addI18n('fr',{});")},
		"langs/de.js":    {Data: []byte("tinymce.addI18n('de',{});")},
		"langs/pt_BR.js": {Data: []byte("tinymce.addI18n('pt_BR',{});")},
		"langs/ru_RU.js": {Data: []byte("tinymce.addI18n('ru_RU',{});")},
		"langs/readme":   {Data: []byte("not a language")},
	}
}

func TestResolver_StrictPolicy(t *testing.T) {
	resolver := locale.NewResolver(locale.NewFSLanguages(langFS(), "langs"), locale.PolicyStrict)

	if got, ok := resolver.Resolve("fr"); !ok || got != "fr" {
		t.Fatalf("expected exact match fr, got %q %v", got, ok)
	}
	if got, ok := resolver.Resolve("pt-br"); !ok || got != "pt_BR" {
		t.Fatalf("expected normalised match pt_BR, got %q %v", got, ok)
	}
	if got, ok := resolver.Resolve("fr_FR"); ok {
		t.Fatalf("strict policy must omit fr_FR, got %q", got)
	}
	if _, ok := resolver.Resolve(""); ok {
		t.Fatalf("empty code must not resolve")
	}
}

func TestResolver_FallbackPolicy(t *testing.T) {
	resolver := locale.NewResolver(locale.NewFSLanguages(langFS(), "langs"), locale.PolicyFallback)

	cases := map[string]string{
		"fr_FR": "fr",
		"fr-CA": "fr",
		"de_AT": "de",
		"ru":    "ru_RU",
		"pt":    "pt_BR",
	}
	for input, want := range cases {
		got, ok := resolver.Resolve(input)
		if !ok || got != want {
			t.Fatalf("resolve %q: want %q, got %q (ok=%v)", input, want, got, ok)
		}
	}
	if got, ok := resolver.Resolve("ja_JP"); ok {
		t.Fatalf("expected ja_JP to stay unresolved, got %q", got)
	}
}

func TestResolver_Candidates(t *testing.T) {
	resolver := locale.NewResolver(locale.NewSetLanguages(), locale.PolicyFallback)
	got := resolver.Candidates("fr-fr")
	want := []string{"fr-fr", "fr_FR", "fr"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestFSLanguages_RejectsPaths(t *testing.T) {
	languages := locale.NewFSLanguages(langFS(), "langs")
	for _, code := range []string{"../langs/fr", "langs/fr", ".hidden", "readme"} {
		if languages.Has(code) {
			t.Fatalf("expected %q to be rejected", code)
		}
	}
}

func TestListLanguages(t *testing.T) {
	got, err := locale.ListLanguages(langFS(), "langs")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"de", "fr", "pt_BR", "ru_RU"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("languages mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"fr-fr":      "fr_FR",
		"EN_gb":      "en_GB",
		" de ":       "de",
		"sr-Latn-rs": "sr_Latn_RS",
		"":           "",
	}
	for input, want := range cases {
		if got := locale.Normalize(input); got != want {
			t.Fatalf("normalize %q: want %q, got %q", input, want, got)
		}
	}
}

func TestParsePolicy(t *testing.T) {
	if p, err := locale.ParsePolicy("fallback"); err != nil || p != locale.PolicyFallback {
		t.Fatalf("unexpected %v %v", p, err)
	}
	if p, err := locale.ParsePolicy(""); err != nil || p != locale.PolicyStrict {
		t.Fatalf("unexpected %v %v", p, err)
	}
	if _, err := locale.ParsePolicy("guess"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestContextProvider(t *testing.T) {
	provider := locale.ContextProvider{}
	if _, err := provider.Locale(context.Background()); !errors.Is(err, locale.ErrNoLocale) {
		t.Fatalf("expected ErrNoLocale, got %v", err)
	}

	ctx := locale.WithLocale(context.Background(), "de_DE")
	if got, err := provider.Locale(ctx); err != nil || got != "de_DE" {
		t.Fatalf("unexpected %q %v", got, err)
	}

	withDefault := locale.ContextProvider{Default: "en"}
	if got, err := withDefault.Locale(context.Background()); err != nil || got != "en" {
		t.Fatalf("unexpected %q %v", got, err)
	}
}

func TestStaticProvider(t *testing.T) {
	if got, err := locale.StaticProvider("uk").Locale(context.Background()); err != nil || got != "uk" {
		t.Fatalf("unexpected %q %v", got, err)
	}
	if _, err := locale.StaticProvider("").Locale(context.Background()); !errors.Is(err, locale.ErrNoLocale) {
		t.Fatalf("expected ErrNoLocale, got %v", err)
	}
}

func TestMiddleware_NegotiatesAcceptLanguage(t *testing.T) {
	var seen string
	handler := locale.Middleware([]string{"en", "fr_FR", "de"}, http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen, _ = locale.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "fr-CH, fr;q=0.9, en;q=0.8")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if seen != "fr_FR" {
		t.Fatalf("expected fr_FR, got %q", seen)
	}

	seen = ""
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if seen != "" {
		t.Fatalf("expected no locale without header, got %q", seen)
	}
}
