package proxy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProxyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "proxies.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRegistryRankedByUptime(t *testing.T) {
	path := writeProxyFile(t, `proxies:
  - ip: 10.0.0.1
    port: 8080
    uptime: 72.5
  - ip: 10.0.0.2
    port: 3128
    uptime: 99.1
  - ip: 10.0.0.3
    port: 8888
    uptime: 85.0
`)
	r := NewRegistry(path)
	ranked := r.Ranked()
	require.Len(t, ranked, 3)
	assert.Equal(t, "10.0.0.2", ranked[0].IP)
	assert.Equal(t, "10.0.0.3", ranked[1].IP)
	assert.Equal(t, "10.0.0.1", ranked[2].IP)
}

func TestRegistryMissingFileIsNonFatal(t *testing.T) {
	r := NewRegistry(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Empty(t, r.Ranked())
}

func TestRegistryNoPathConfigured(t *testing.T) {
	r := NewRegistry("")
	assert.Empty(t, r.Ranked())
}

func TestRegistrySkipsInvalidEntries(t *testing.T) {
	path := writeProxyFile(t, `proxies:
  - ip: ""
    port: 8080
    uptime: 90
  - ip: 10.0.0.4
    port: 0
    uptime: 95
  - ip: 10.0.0.5
    port: 8080
    uptime: 50
`)
	r := NewRegistry(path)
	ranked := r.Ranked()
	require.Len(t, ranked, 1)
	assert.Equal(t, "10.0.0.5", ranked[0].IP)
}

func TestRegistryRejectsUnknownFields(t *testing.T) {
	path := writeProxyFile(t, `proxies:
  - ip: 10.0.0.1
    port: 8080
    uptime: 90
    country: ID
`)
	r := NewRegistry(path)
	assert.Empty(t, r.Ranked())
}

func TestRegistryEmptyFile(t *testing.T) {
	path := writeProxyFile(t, "")
	r := NewRegistry(path)
	assert.Empty(t, r.Ranked())
}

func TestDescriptorAddr(t *testing.T) {
	d := Descriptor{IP: "10.1.2.3", Port: 3128, Uptime: 99}
	assert.Equal(t, "10.1.2.3:3128", d.Addr())
	assert.Equal(t, "http://10.1.2.3:3128", d.URL())
}
