package pegadaian

import (
	"context"

	"github.com/chromedp/chromedp"

	"hargaemas/internal/config"
	"hargaemas/internal/logger"
)

// Session is one headless browser bound to at most one proxy. It lives for
// a single acquisition attempt and is never reused across proxies.
type Session struct {
	ctx           context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc
}

// NewSession launches an allocator and browser context under parent.
// The flag list is built from scratch instead of the default option set:
// the defaults advertise enable-automation, which the target's bot
// detection keys on. proxyURL may be empty for a direct connection.
func NewSession(parent context.Context, cfg config.PegadaianConfig, proxyURL string) *Session {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("headless", "new"),
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.DisableGPU,
		chromedp.WindowSize(1920, 1080),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-extensions", true),
		chromedp.UserAgent(cfg.UserAgent),
	}
	if proxyURL != "" {
		opts = append(opts, chromedp.ProxyServer(proxyURL))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	return &Session{
		ctx:           browserCtx,
		cancelBrowser: cancelBrowser,
		cancelAlloc:   cancelAlloc,
	}
}

// Context returns the browser context for driving page actions.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Close terminates the browser and its allocator. Safe to call on every
// exit path, including after a failed launch.
func (s *Session) Close() {
	s.cancelBrowser()
	s.cancelAlloc()
	logger.Debugf("browser session closed")
}
