package pegadaian

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"hargaemas/internal/config"
	"hargaemas/internal/logger"
	"hargaemas/internal/proxy"
)

const antiBotPollEvery = time.Second

// AcquireResult reports one saved page snapshot.
type AcquireResult struct {
	// Path locates the artifact on disk.
	Path string
	// MarkerSeen records whether the currency marker appeared before the
	// readiness ceiling. When false the snapshot was saved anyway so the
	// failed render can be inspected.
	MarkerSeen bool
}

// Acquirer drives a headless browser against the bot-protected price page
// and persists the rendered markup.
type Acquirer struct {
	cfg config.PegadaianConfig
	loc *time.Location

	// attempt runs one full acquisition through an optional proxy. It is a
	// field so rotation can be exercised without launching a browser.
	attempt func(ctx context.Context, proxyURL string) (AcquireResult, error)
	now     func() time.Time
}

func NewAcquirer(cfg config.PegadaianConfig, loc *time.Location) *Acquirer {
	a := &Acquirer{
		cfg: cfg,
		loc: loc,
		now: time.Now,
	}
	a.attempt = a.acquireOnce
	return a
}

// AcquireWithRotation walks the ranked proxy list in order and returns the
// first successful snapshot. An empty list means one direct attempt. When
// every proxy fails, one last direct attempt is made before giving up.
// Each attempt owns its own browser session; sessions are never shared or
// reused across proxies.
func (a *Acquirer) AcquireWithRotation(ctx context.Context, proxies []proxy.Descriptor) (AcquireResult, error) {
	if len(proxies) == 0 {
		logger.Infof("no proxies configured, acquiring directly")
		return a.attempt(ctx, "")
	}

	for i, p := range proxies {
		if err := ctx.Err(); err != nil {
			return AcquireResult{}, err
		}
		logger.Infof("acquisition attempt %d/%d via proxy %s (uptime %.1f%%)", i+1, len(proxies), p.Addr(), p.Uptime)
		res, err := a.attempt(ctx, p.URL())
		if err == nil {
			return res, nil
		}
		logger.Warnf("attempt via proxy %s failed: %v", p.Addr(), err)
	}

	logger.Warnf("all %d proxies failed, trying once without a proxy", len(proxies))
	res, err := a.attempt(ctx, "")
	if err != nil {
		return AcquireResult{}, fmt.Errorf("acquisition failed after %d proxied attempts and a direct attempt: %w", len(proxies), err)
	}
	return res, nil
}

// acquireOnce runs the full attempt state machine: navigate, wait out the
// anti-bot challenge, poll for price content, save the snapshot.
func (a *Acquirer) acquireOnce(ctx context.Context, proxyURL string) (AcquireResult, error) {
	session := NewSession(ctx, a.cfg, proxyURL)
	defer session.Close()
	bctx := session.Context()

	if err := chromedp.Run(bctx, chromedp.Navigate(a.cfg.URL)); err != nil {
		return AcquireResult{}, fmt.Errorf("navigate %s: %w", a.cfg.URL, err)
	}
	logger.Infof("navigated to %s", a.cfg.URL)

	if err := a.waitAntiBot(bctx); err != nil {
		return AcquireResult{}, err
	}

	markup, markerSeen, err := a.pollForContent(bctx)
	if err != nil {
		return AcquireResult{}, err
	}

	path, err := a.saveArtifact(markup)
	if err != nil {
		return AcquireResult{}, err
	}
	return AcquireResult{Path: path, MarkerSeen: markerSeen}, nil
}

// waitAntiBot blocks until the page title moves away from the challenge
// interstitial, bounded by the configured ceiling. Hitting the ceiling is
// a hard failure for this attempt; only proxy rotation tries again.
func (a *Acquirer) waitAntiBot(ctx context.Context) error {
	deadline := a.now().Add(a.cfg.AntiBotTimeout())
	for {
		var title string
		if err := chromedp.Run(ctx, chromedp.Title(&title)); err != nil {
			return fmt.Errorf("read page title: %w", err)
		}
		if title != a.cfg.InterstitialTitle {
			logger.Infof("anti-bot check passed, title=%q", title)
			return nil
		}
		if !a.now().Before(deadline) {
			return fmt.Errorf("%w: title still %q after %s", ErrAntiBotBlocked, title, a.cfg.AntiBotTimeout())
		}
		if err := chromedp.Run(ctx, chromedp.Sleep(antiBotPollEvery)); err != nil {
			return err
		}
	}
}

// pollForContent re-reads the rendered markup until the currency marker
// shows up or the ceiling passes. The ceiling is soft: the last snapshot
// is returned with seen=false so it still lands on disk for debugging.
func (a *Acquirer) pollForContent(ctx context.Context) (markup string, seen bool, err error) {
	deadline := a.now().Add(a.cfg.PollTimeout())
	for {
		if runErr := chromedp.Run(ctx, chromedp.OuterHTML("html", &markup, chromedp.ByQuery)); runErr != nil {
			return "", false, fmt.Errorf("read rendered markup: %w", runErr)
		}
		if strings.Contains(markup, a.cfg.PriceMarker) {
			logger.Infof("price content detected")
			return markup, true, nil
		}
		if !a.now().Before(deadline) {
			logger.Warnf("price content did not appear within %s, saving snapshot for debugging", a.cfg.PollTimeout())
			return markup, false, nil
		}
		if runErr := chromedp.Run(ctx, chromedp.Sleep(a.cfg.PollInterval())); runErr != nil {
			return "", false, runErr
		}
	}
}

func (a *Acquirer) saveArtifact(markup string) (string, error) {
	dir := a.cfg.ArtifactDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s.html", a.cfg.ArtifactPrefix, a.now().In(a.loc).Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(markup), 0o644); err != nil {
		return "", fmt.Errorf("write artifact %s: %w", path, err)
	}
	logger.Infof("saved page snapshot to %s", path)
	return path, nil
}
