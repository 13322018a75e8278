// Package packagemgr is Bellronos's package manager: a registry client
// that installs, loads, lists, updates, and searches .bellronos package
// files, satisfying the evaluator's PackageLoader interface for an
// Import statement the standard library doesn't resolve.
package packagemgr

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Architecture-Mechanism/bellronos/internal/bellerrors"
)

// DefaultRegistryBaseURL is the compiled-in registry address. It is
// never reached in tests; any real deployment is expected to override
// it via WithRegistryBaseURL.
const DefaultRegistryBaseURL = "https://bellande-architecture-mechanism-research-innovation-center.org/bellronos/packages"

// Manager is a registry-backed package store rooted at a local
// directory. All registry fetches are blocking; callers observe only a
// synchronous Install/Load/Update/Search interface.
type Manager struct {
	dir        string
	registry   string
	httpClient *http.Client
}

// Option configures a Manager at construction time.
type Option func(*Manager)

// WithRegistryBaseURL overrides the registry this Manager fetches against.
func WithRegistryBaseURL(url string) Option {
	return func(m *Manager) { m.registry = strings.TrimRight(url, "/") }
}

// WithHTTPClient overrides the HTTP client used for registry requests,
// letting callers inject one with a test transport or a custom timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(m *Manager) { m.httpClient = c }
}

// New constructs a Manager rooted at dir, creating it if absent.
func New(dir string, opts ...Option) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, bellerrors.New(bellerrors.IO, "failed to create package directory: %s", err.Error())
	}
	m := &Manager{
		dir:        dir,
		registry:   DefaultRegistryBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// metadata is a registry package's metadata.json response.
type metadata struct {
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Dependencies []string `json:"dependencies"`
}

func (m *Manager) packagePath(name string) string {
	return filepath.Join(m.dir, name+".bellronos")
}

func (m *Manager) get(url string) (string, error) {
	resp, err := m.httpClient.Get(url)
	if err != nil {
		return "", bellerrors.New(bellerrors.Network, "request to %s failed: %s", url, err.Error())
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", bellerrors.New(bellerrors.Network, "request to %s failed: status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", bellerrors.New(bellerrors.Network, "failed to read response from %s: %s", url, err.Error())
	}
	return string(body), nil
}

func (m *Manager) fetchMetadata(name string) (*metadata, error) {
	text, err := m.get(fmt.Sprintf("%s/%s/metadata.json", m.registry, name))
	if err != nil {
		return nil, err
	}
	var md metadata
	if err := json.Unmarshal([]byte(text), &md); err != nil {
		return nil, bellerrors.New(bellerrors.Parse, "failed to parse package metadata for %s: %s", name, err.Error())
	}
	return &md, nil
}

func (m *Manager) downloadPackage(md *metadata) (string, error) {
	return m.get(fmt.Sprintf("%s/%s/%s.bellronos", m.registry, md.Name, md.Version))
}

// Install fetches a package's metadata, recursively installs its
// dependencies first, then downloads and writes the package's own body
// to disk. The first failure anywhere in the dependency tree
// propagates unchanged.
func (m *Manager) Install(name string) error {
	md, err := m.fetchMetadata(name)
	if err != nil {
		return err
	}

	for _, dep := range md.Dependencies {
		if err := m.Install(dep); err != nil {
			return err
		}
	}

	content, err := m.downloadPackage(md)
	if err != nil {
		return err
	}
	if err := os.WriteFile(m.packagePath(md.Name), []byte(content), 0o644); err != nil {
		return bellerrors.New(bellerrors.IO, "failed to write package file for %s: %s", md.Name, err.Error())
	}
	return nil
}

// Load reads an installed package's source text by name, satisfying
// interp.PackageLoader.
func (m *Manager) Load(name string) (string, error) {
	content, err := os.ReadFile(m.packagePath(name))
	if err != nil {
		return "", bellerrors.New(bellerrors.IO, "failed to read package file %s: %s", m.packagePath(name), err.Error())
	}
	return string(content), nil
}

// ListInstalled returns the name of every package file installed in the
// package directory, derived from each file's stem.
func (m *Manager) ListInstalled() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, bellerrors.New(bellerrors.IO, "failed to read package directory %s: %s", m.dir, err.Error())
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	return names, nil
}

// installedVersion reads the in-band `# Version: X.Y.Z` comment line a
// downloaded package file carries near its top.
func (m *Manager) installedVersion(name string) (string, error) {
	content, err := os.ReadFile(m.packagePath(name))
	if err != nil {
		return "", bellerrors.New(bellerrors.IO, "failed to read package file %s: %s", m.packagePath(name), err.Error())
	}
	for _, line := range strings.Split(string(content), "\n") {
		if strings.HasPrefix(line, "# Version:") {
			parts := strings.SplitN(line, ":", 2)
			if len(parts) == 2 {
				return strings.TrimSpace(parts[1]), nil
			}
		}
	}
	return "", bellerrors.New(bellerrors.Parse, "failed to extract package version from %s", name)
}

// Update re-installs a package only if the registry's version differs
// from what is installed; an up-to-date package is a no-op.
func (m *Manager) Update(name string) error {
	installed, err := m.ListInstalled()
	if err != nil {
		return err
	}
	found := false
	for _, n := range installed {
		if n == name {
			found = true
			break
		}
	}
	if !found {
		return bellerrors.New(bellerrors.Package, "package %s is not installed", name)
	}

	md, err := m.fetchMetadata(name)
	if err != nil {
		return err
	}
	current, err := m.installedVersion(name)
	if err != nil {
		return err
	}
	if current == md.Version {
		return nil
	}
	return m.Install(name)
}

// Search queries the registry's `/search?q=` endpoint for packages
// matching query.
func (m *Manager) Search(query string) ([]string, error) {
	text, err := m.get(fmt.Sprintf("%s/search?q=%s", m.registry, query))
	if err != nil {
		return nil, err
	}
	var results []string
	if err := json.Unmarshal([]byte(text), &results); err != nil {
		return nil, bellerrors.New(bellerrors.Parse, "failed to parse search results: %s", err.Error())
	}
	return results, nil
}
