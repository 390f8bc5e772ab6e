package proxy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"hargaemas/internal/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Descriptor is one entry of the ranked proxy list.
type Descriptor struct {
	IP     string  `yaml:"ip"`
	Port   int     `yaml:"port"`
	Uptime float64 `yaml:"uptime"`
}

// Addr returns the host:port pair.
func (d Descriptor) Addr() string {
	return net.JoinHostPort(d.IP, strconv.Itoa(d.Port))
}

// URL returns the scheme-qualified address understood by --proxy-server.
func (d Descriptor) URL() string {
	return "http://" + d.Addr()
}

type fileConfig struct {
	Proxies []Descriptor `yaml:"proxies"`
}

// Registry holds the ranked proxy list. Ranking invariant: descriptors are
// ordered by reported uptime, highest first; rotation consumes them in that
// order. A missing or empty file is not an error; acquisition falls back
// to unproxied attempts.
type Registry struct {
	path string

	mu       sync.RWMutex
	ranked   []Descriptor
	loadedAt time.Time

	watchOnce sync.Once
	v         *viper.Viper
}

// NewRegistry reads the proxy file once. The registry is usable even when
// the file is absent.
func NewRegistry(path string) *Registry {
	r := &Registry{path: strings.TrimSpace(path)}
	if r.path == "" {
		logger.Infof("proxy registry: no file configured, running unproxied")
		return r
	}
	if err := r.reload(); err != nil {
		logger.Warnf("proxy registry: %v (continuing unproxied)", err)
	}
	return r
}

// Ranked returns a copy of the current list, highest uptime first.
func (r *Registry) Ranked() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, len(r.ranked))
	copy(out, r.ranked)
	return out
}

// Watch re-reads the file whenever it changes on disk. Only the watch
// daemon enables this; one-shot runs read once and exit. Reload failures
// keep the previous snapshot.
func (r *Registry) Watch() {
	if r.path == "" {
		return
	}
	r.watchOnce.Do(func() {
		v := viper.New()
		v.SetConfigFile(r.path)
		if err := v.ReadInConfig(); err != nil {
			logger.Warnf("proxy registry: watch disabled, cannot read %s: %v", r.path, err)
			return
		}
		v.OnConfigChange(func(evt fsnotify.Event) {
			if err := r.reload(); err != nil {
				logger.Errorf("proxy registry reload failed: %v", err)
				return
			}
			logger.Infof("proxy registry reloaded: %d proxies", len(r.Ranked()))
		})
		v.WatchConfig()
		r.v = v
	})
}

func (r *Registry) reload() error {
	cfg, err := readProxyFile(r.path)
	if err != nil {
		return err
	}
	ranked := make([]Descriptor, 0, len(cfg.Proxies))
	for _, d := range cfg.Proxies {
		if strings.TrimSpace(d.IP) == "" || d.Port <= 0 || d.Port > 65535 {
			logger.Warnf("proxy registry: skipping invalid entry %q:%d", d.IP, d.Port)
			continue
		}
		ranked = append(ranked, d)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Uptime > ranked[j].Uptime
	})
	r.mu.Lock()
	r.ranked = ranked
	r.loadedAt = time.Now()
	r.mu.Unlock()
	logger.Infof("proxy registry loaded %d proxies from %s", len(ranked), filepath.Base(r.path))
	return nil
}

func readProxyFile(path string) (fileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read proxy file failed: %w", err)
	}
	var cfg fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("parse proxy file failed: %w", err)
	}
	return cfg, nil
}
