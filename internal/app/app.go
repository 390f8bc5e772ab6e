package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"hargaemas/internal/config"
	"hargaemas/internal/dataset"
	"hargaemas/internal/gold"
	"hargaemas/internal/logger"
	"hargaemas/internal/notifier"
	"hargaemas/internal/pegadaian"
	"hargaemas/internal/proxy"
	"hargaemas/internal/ubs"
)

// retailQuoteSize is the number of prices one pawnshop quote needs: the
// buy counter and the sell counter.
const retailQuoteSize = 2

type pageAcquirer interface {
	AcquireWithRotation(ctx context.Context, proxies []proxy.Descriptor) (pegadaian.AcquireResult, error)
}

type markupExtractor interface {
	Extract(artifactPath string) ([]string, error)
}

type seriesFetcher interface {
	FetchSeries(ctx context.Context, interval int) ([]ubs.Series, error)
}

// App owns the per-run orchestration of both acquisition paths. Every
// stage failure is wrapped with its stage and surfaced to the CLI, which
// maps it to a non-zero exit.
type App struct {
	cfg      *config.Config
	loc      *time.Location
	registry *proxy.Registry

	acquirer  pageAcquirer
	extractor markupExtractor
	fetcher   seriesFetcher
	notifier  notifier.TextNotifier
}

// NewApp assembles an App from configuration. Nothing is started;
// callers pick the run they want.
func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)
	return buildAppWithWire(cfg)
}

// New builds an App. Construction is cheap; no browser or network work
// happens until one of the Run methods is called.
func New(
	cfg *config.Config,
	loc *time.Location,
	registry *proxy.Registry,
	acquirer *pegadaian.Acquirer,
	extractor *pegadaian.Extractor,
	client *ubs.Client,
	textNotifier notifier.TextNotifier,
) *App {
	return &App{
		cfg:       cfg,
		loc:       loc,
		registry:  registry,
		acquirer:  acquirer,
		extractor: extractor,
		fetcher:   client,
		notifier:  textNotifier,
	}
}

// RunPegadaian walks the whole pawnshop path: acquire a rendered page
// through the ranked proxies, extract both counter prices, append the
// quote, then consume the artifact. The artifact survives every failure
// so the markup can be inspected afterwards.
func (a *App) RunPegadaian(ctx context.Context) error {
	res, err := a.acquirer.AcquireWithRotation(ctx, a.registry.Ranked())
	if err != nil {
		return fmt.Errorf("acquire page: %w", err)
	}
	if !res.MarkerSeen {
		logger.Warnf("price marker never appeared before the ceiling, extraction may come up short")
	}

	prices, err := a.extractor.Extract(res.Path)
	if err != nil {
		return fmt.Errorf("extract prices: %w", err)
	}
	if len(prices) < retailQuoteSize {
		return fmt.Errorf("%w: need %d, got %d", pegadaian.ErrInsufficientPrices, retailQuoteSize, len(prices))
	}

	quote := gold.NewRetailQuote(prices[0], prices[1], a.loc)
	if err := dataset.AppendRetail(a.cfg.Pegadaian.OutputCSV, quote); err != nil {
		return fmt.Errorf("store quote: %w", err)
	}

	// the row is on disk, the snapshot is consumed
	if err := os.Remove(res.Path); err != nil {
		logger.Warnf("could not remove consumed artifact %s: %v", res.Path, err)
	}
	logger.Infof("pegadaian run complete: beli=%s jual=%s", quote.Buy, quote.Sell)
	return nil
}

// RunUBSToday records today's buyback close, today measured in the
// source zone.
func (a *App) RunUBSToday(ctx context.Context) error {
	return a.RunUBSDate(ctx, time.Now().In(a.loc))
}

// RunUBSDate fetches the smallest chart window and stores the close for
// target, provided the rolling series already reaches that date.
func (a *App) RunUBSDate(ctx context.Context, target time.Time) error {
	series, err := a.fetcher.FetchSeries(ctx, ubs.SelectInterval(target, target))
	if err != nil {
		return err
	}
	obs, err := ubs.ExtractLatest(series, target, a.loc)
	if err != nil {
		return err
	}

	record := gold.NewBuybackRecord(obs.Price, obs.Date, a.loc)
	if err := dataset.AppendBuyback(a.cfg.UBS.OutputCSV, []gold.BuybackRecord{record}); err != nil {
		return fmt.Errorf("store buyback record: %w", err)
	}
	return nil
}

// RunUBSRange backfills every observation inside [start, end], both ends
// inclusive.
func (a *App) RunUBSRange(ctx context.Context, start, end time.Time) error {
	interval := ubs.SelectInterval(start, end)
	logger.Infof("bulk mode: %s to %s (interval: %d days)",
		start.Format(gold.DateFormat), end.Format(gold.DateFormat), interval)

	series, err := a.fetcher.FetchSeries(ctx, interval)
	if err != nil {
		return err
	}
	observations, err := ubs.ExtractRange(series, start, end, a.loc)
	if err != nil {
		return err
	}

	records := make([]gold.BuybackRecord, 0, len(observations))
	for _, obs := range observations {
		records = append(records, gold.NewBuybackRecord(obs.Price, obs.Date, a.loc))
	}
	if err := dataset.AppendBuyback(a.cfg.UBS.OutputCSV, records); err != nil {
		return fmt.Errorf("store buyback records: %w", err)
	}
	return nil
}

// notify pushes text to the configured channel, if any. Notification
// failures are logged, never escalated.
func (a *App) notify(text string) {
	if a.notifier == nil {
		return
	}
	if err := a.notifier.SendText(text); err != nil {
		logger.Warnf("notification failed: %v", err)
	}
}
