package editorassets

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-tinymce/pkg/markers"
)

func TestMountPath_JoinsBasePath(t *testing.T) {
	if got := MountPath("/admin"); got != "/admin/bundles/tinymce" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("admin"); got != "/admin/bundles/tinymce" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("/admin/", WithRoutePath("static/editor/")); got != "/admin/static/editor" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath(""); got != "/bundles/tinymce" {
		t.Fatalf("unexpected mount path: %q", got)
	}
}

func TestRegisterRoutes_RegistersHandler(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := RegisterRoutes(mux, "/admin")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pattern != "/admin/bundles/tinymce/" {
		t.Fatalf("unexpected registered pattern: %q", pattern)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/bundles/tinymce/js/init.standard.js", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRegisterRoutes_MissingMux(t *testing.T) {
	if _, err := RegisterRoutes(nil, "/"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}

func TestRegisterRouteNames(t *testing.T) {
	table := markers.NewRouteTable("", nil)
	if err := RegisterRouteNames(table, "/admin"); err != nil {
		t.Fatalf("register route names: %v", err)
	}

	got, err := table.RouteURL(RouteLanguages)
	if err != nil {
		t.Fatalf("route url: %v", err)
	}
	if got != "/admin/bundles/tinymce/languages" {
		t.Fatalf("unexpected languages route %q", got)
	}

	got, err = table.RouteURL(RouteAssets)
	if err != nil {
		t.Fatalf("route url: %v", err)
	}
	if got != "/admin/bundles/tinymce/" {
		t.Fatalf("unexpected assets route %q", got)
	}
}
