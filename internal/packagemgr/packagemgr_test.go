package packagemgr

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// registryFixture serves a tiny in-memory registry: "greeter" depends on
// "base", exercising Install's dependency-before-self ordering.
func registryFixture(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/base/metadata.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"base","version":"1.0.0","dependencies":[]}`)
	})
	mux.HandleFunc("/base/1.0.0.bellronos", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "# Version: 1.0.0\ndefine identity(x: int) -> int:\nreturn x\n")
	})
	mux.HandleFunc("/greeter/metadata.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"greeter","version":"2.1.0","dependencies":["base"]}`)
	})
	mux.HandleFunc("/greeter/2.1.0.bellronos", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "# Version: 2.1.0\ndefine greet() -> string:\nreturn \"hi\"\n")
	})
	mux.HandleFunc("/greeter/3.0.0.bellronos", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "# Version: 3.0.0\ndefine greet() -> string:\nreturn \"hi v3\"\n")
	})
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `["greeter", "base"]`)
	})
	mux.HandleFunc("/missing/metadata.json", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	return httptest.NewServer(mux)
}

func newManager(t *testing.T, registryURL string) *Manager {
	t.Helper()
	dir := t.TempDir()
	m, err := New(dir, WithRegistryBaseURL(registryURL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return m
}

func TestInstallRecursesIntoDependenciesFirst(t *testing.T) {
	srv := registryFixture(t)
	defer srv.Close()
	m := newManager(t, srv.URL)

	if err := m.Install("greeter"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"base", "greeter"} {
		if _, err := os.Stat(filepath.Join(m.dir, name+".bellronos")); err != nil {
			t.Fatalf("expected %s.bellronos to exist: %v", name, err)
		}
	}
}

func TestLoadReturnsInstalledPackageSource(t *testing.T) {
	srv := registryFixture(t)
	defer srv.Close()
	m := newManager(t, srv.URL)

	if err := m.Install("greeter"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	src, err := m.Load("greeter")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(src, "define greet") {
		t.Fatalf("got %q", src)
	}
}

func TestListInstalledReturnsFileStems(t *testing.T) {
	srv := registryFixture(t)
	defer srv.Close()
	m := newManager(t, srv.URL)

	if err := m.Install("greeter"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names, err := m.ListInstalled()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]bool{"base": true, "greeter": true}
	if len(names) != len(want) {
		t.Fatalf("got %v", names)
	}
	for _, n := range names {
		if !want[n] {
			t.Fatalf("unexpected installed package %q", n)
		}
	}
}

func TestUpdateIsNoopWhenVersionMatches(t *testing.T) {
	srv := registryFixture(t)
	defer srv.Close()
	m := newManager(t, srv.URL)

	if err := m.Install("greeter"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before, err := m.Load("greeter")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Update("greeter"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after, err := m.Load("greeter")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if before != after {
		t.Fatalf("expected no-op update to leave the package file unchanged")
	}
}

func TestUpdateUninstalledPackageIsPackageError(t *testing.T) {
	srv := registryFixture(t)
	defer srv.Close()
	m := newManager(t, srv.URL)

	if err := m.Update("greeter"); err == nil {
		t.Fatal("expected an error updating a package that was never installed")
	}
}

func TestInstallUnknownPackageIsNetworkError(t *testing.T) {
	srv := registryFixture(t)
	defer srv.Close()
	m := newManager(t, srv.URL)

	if err := m.Install("missing"); err == nil {
		t.Fatal("expected an error installing a package the registry 404s on")
	}
}

func TestSearch(t *testing.T) {
	srv := registryFixture(t)
	defer srv.Close()
	m := newManager(t, srv.URL)

	results, err := m.Search("gree")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %v, want 2 results", results)
	}
}
