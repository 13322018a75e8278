package cmd

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Architecture-Mechanism/bellronos/internal/packagemgr"
)

func TestRunInstallWritesPackageFile(t *testing.T) {
	withTempPackageDir(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/greeter/metadata.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"greeter","version":"1.0.0","dependencies":[]}`)
	})
	mux.HandleFunc("/greeter/1.0.0.bellronos", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "# Version: 1.0.0\ndefine greet() -> string:\nreturn \"hi\"\n")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	mgr, err := packagemgr.New(packageDir, packagemgr.WithRegistryBaseURL(server.URL))
	if err != nil {
		t.Fatalf("packagemgr.New: %v", err)
	}

	if err := runInstall(mgr, "greeter"); err != nil {
		t.Fatalf("runInstall: %v", err)
	}

	if _, err := os.Stat(filepath.Join(packageDir, "greeter.bellronos")); err != nil {
		t.Fatalf("expected greeter.bellronos to exist: %v", err)
	}
}
