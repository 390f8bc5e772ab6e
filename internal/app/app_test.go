package app

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hargaemas/internal/config"
	"hargaemas/internal/pegadaian"
	"hargaemas/internal/proxy"
	"hargaemas/internal/ubs"
)

type fakeAcquirer struct {
	res        pegadaian.AcquireResult
	err        error
	gotProxies []proxy.Descriptor
}

func (f *fakeAcquirer) AcquireWithRotation(_ context.Context, proxies []proxy.Descriptor) (pegadaian.AcquireResult, error) {
	f.gotProxies = proxies
	return f.res, f.err
}

type fakeExtractor struct {
	prices  []string
	err     error
	gotPath string
}

func (f *fakeExtractor) Extract(artifactPath string) ([]string, error) {
	f.gotPath = artifactPath
	return f.prices, f.err
}

type fakeFetcher struct {
	series      []ubs.Series
	err         error
	gotInterval int
}

func (f *fakeFetcher) FetchSeries(_ context.Context, interval int) ([]ubs.Series, error) {
	f.gotInterval = interval
	return f.series, f.err
}

func jakarta(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)
	return loc
}

func testApp(t *testing.T, dir string, acq pageAcquirer, ext markupExtractor, fetch seriesFetcher) *App {
	t.Helper()
	cfg := &config.Config{}
	cfg.Pegadaian.OutputCSV = filepath.Join(dir, "harga_emas.csv")
	cfg.UBS.OutputCSV = filepath.Join(dir, "harga_emas_ubs.csv")
	return &App{
		cfg:       cfg,
		loc:       jakarta(t),
		registry:  proxy.NewRegistry(""),
		acquirer:  acq,
		extractor: ext,
		fetcher:   fetch,
	}
}

func writeArtifact(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "harga_emas_20240510_143005.html")
	require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0o644))
	return path
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func entryAt(ts time.Time, close string) ubs.SeriesEntry {
	return ubs.SeriesEntry{UnixMilli: ts.UnixMilli(), Close: decimal.RequireFromString(close)}
}

func TestRunPegadaianAppendsAndConsumesArtifact(t *testing.T) {
	dir := t.TempDir()
	artifact := writeArtifact(t, dir)
	acq := &fakeAcquirer{res: pegadaian.AcquireResult{Path: artifact, MarkerSeen: true}}
	ext := &fakeExtractor{prices: []string{"1234567", "1355000"}}
	a := testApp(t, dir, acq, ext, nil)

	require.NoError(t, a.RunPegadaian(context.Background()))

	rows := readRows(t, a.cfg.Pegadaian.OutputCSV)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"id", "harga_beli", "harga_jual", "timestamp"}, rows[0])
	assert.Equal(t, "1234567", rows[1][1])
	assert.Equal(t, "1355000", rows[1][2])
	assert.Equal(t, artifact, ext.gotPath)
	assert.Empty(t, acq.gotProxies, "an unconfigured registry yields a direct attempt")

	_, err := os.Stat(artifact)
	assert.True(t, os.IsNotExist(err), "artifact should be consumed once the row is stored")
}

func TestRunPegadaianAcquireFailureSkipsExtraction(t *testing.T) {
	dir := t.TempDir()
	acq := &fakeAcquirer{err: pegadaian.ErrAntiBotBlocked}
	ext := &fakeExtractor{prices: []string{"1", "2"}}
	a := testApp(t, dir, acq, ext, nil)

	err := a.RunPegadaian(context.Background())
	require.ErrorIs(t, err, pegadaian.ErrAntiBotBlocked)
	assert.Empty(t, ext.gotPath)
}

func TestRunPegadaianKeepsArtifactOnExtractFailure(t *testing.T) {
	dir := t.TempDir()
	artifact := writeArtifact(t, dir)
	acq := &fakeAcquirer{res: pegadaian.AcquireResult{Path: artifact, MarkerSeen: false}}
	ext := &fakeExtractor{err: pegadaian.ErrStillLoading}
	a := testApp(t, dir, acq, ext, nil)

	err := a.RunPegadaian(context.Background())
	require.ErrorIs(t, err, pegadaian.ErrStillLoading)

	_, statErr := os.Stat(artifact)
	assert.NoError(t, statErr, "artifact should survive a failed extraction")
	_, statErr = os.Stat(a.cfg.Pegadaian.OutputCSV)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunPegadaianRejectsSinglePrice(t *testing.T) {
	dir := t.TempDir()
	artifact := writeArtifact(t, dir)
	acq := &fakeAcquirer{res: pegadaian.AcquireResult{Path: artifact, MarkerSeen: true}}
	ext := &fakeExtractor{prices: []string{"1234567"}}
	a := testApp(t, dir, acq, ext, nil)

	err := a.RunPegadaian(context.Background())
	require.ErrorIs(t, err, pegadaian.ErrInsufficientPrices)

	_, statErr := os.Stat(artifact)
	assert.NoError(t, statErr)
}

func TestRunPegadaianKeepsArtifactOnStoreFailure(t *testing.T) {
	dir := t.TempDir()
	artifact := writeArtifact(t, dir)
	acq := &fakeAcquirer{res: pegadaian.AcquireResult{Path: artifact, MarkerSeen: true}}
	ext := &fakeExtractor{prices: []string{"1234567", "1355000"}}
	a := testApp(t, dir, acq, ext, nil)
	// a directory cannot be opened for append
	a.cfg.Pegadaian.OutputCSV = dir

	err := a.RunPegadaian(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store quote")

	_, statErr := os.Stat(artifact)
	assert.NoError(t, statErr, "artifact should survive a failed store")
}

func TestRunUBSDateAppendsLatestClose(t *testing.T) {
	dir := t.TempDir()
	loc := jakarta(t)
	target := time.Date(2024, 5, 10, 0, 0, 0, 0, loc)
	fetch := &fakeFetcher{series: []ubs.Series{{Name: "GOLD", Entries: []ubs.SeriesEntry{
		entryAt(time.Date(2024, 5, 9, 9, 0, 0, 0, loc), "965000"),
		entryAt(time.Date(2024, 5, 10, 9, 0, 0, 0, loc), "968500.5"),
	}}}}
	a := testApp(t, dir, nil, nil, fetch)

	require.NoError(t, a.RunUBSDate(context.Background(), target))
	assert.Equal(t, 7, fetch.gotInterval, "a single day fits the smallest window")

	rows := readRows(t, a.cfg.UBS.OutputCSV)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"id", "price", "date", "timestamp"}, rows[0])
	assert.Equal(t, "968500.5", rows[1][1])
	assert.Equal(t, "2024-05-10", rows[1][2])
}

func TestRunUBSDateStaleSeries(t *testing.T) {
	dir := t.TempDir()
	loc := jakarta(t)
	target := time.Date(2024, 5, 10, 0, 0, 0, 0, loc)
	fetch := &fakeFetcher{series: []ubs.Series{{Name: "GOLD", Entries: []ubs.SeriesEntry{
		entryAt(time.Date(2024, 5, 9, 9, 0, 0, 0, loc), "965000"),
	}}}}
	a := testApp(t, dir, nil, nil, fetch)

	err := a.RunUBSDate(context.Background(), target)
	require.ErrorIs(t, err, ubs.ErrStaleData)

	_, statErr := os.Stat(a.cfg.UBS.OutputCSV)
	assert.True(t, os.IsNotExist(statErr), "stale data must not produce a row")
}

func TestRunUBSDateFetchFailure(t *testing.T) {
	dir := t.TempDir()
	fetch := &fakeFetcher{err: ubs.ErrNetwork}
	a := testApp(t, dir, nil, nil, fetch)

	err := a.RunUBSDate(context.Background(), time.Date(2024, 5, 10, 0, 0, 0, 0, jakarta(t)))
	require.ErrorIs(t, err, ubs.ErrNetwork)
}

func TestRunUBSRangeAppendsWindowInOrder(t *testing.T) {
	dir := t.TempDir()
	loc := jakarta(t)
	fetch := &fakeFetcher{series: []ubs.Series{{Name: "GOLD", Entries: []ubs.SeriesEntry{
		entryAt(time.Date(2024, 4, 29, 9, 0, 0, 0, loc), "950000"),
		entryAt(time.Date(2024, 5, 2, 9, 0, 0, 0, loc), "961000"),
		entryAt(time.Date(2024, 5, 7, 9, 0, 0, 0, loc), "963250"),
		entryAt(time.Date(2024, 5, 12, 9, 0, 0, 0, loc), "970000"),
	}}}}
	a := testApp(t, dir, nil, nil, fetch)

	start := time.Date(2024, 5, 1, 0, 0, 0, 0, loc)
	end := time.Date(2024, 5, 10, 0, 0, 0, 0, loc)
	require.NoError(t, a.RunUBSRange(context.Background(), start, end))
	assert.Equal(t, 30, fetch.gotInterval, "a ten day span needs the 30 day window")

	rows := readRows(t, a.cfg.UBS.OutputCSV)
	require.Len(t, rows, 3)
	assert.Equal(t, "961000", rows[1][1])
	assert.Equal(t, "2024-05-02", rows[1][2])
	assert.Equal(t, "963250", rows[2][1])
	assert.Equal(t, "2024-05-07", rows[2][2])
}

func TestRunUBSRangeEmptyWindow(t *testing.T) {
	dir := t.TempDir()
	loc := jakarta(t)
	fetch := &fakeFetcher{series: []ubs.Series{{Name: "GOLD", Entries: []ubs.SeriesEntry{
		entryAt(time.Date(2024, 4, 29, 9, 0, 0, 0, loc), "950000"),
	}}}}
	a := testApp(t, dir, nil, nil, fetch)

	err := a.RunUBSRange(context.Background(),
		time.Date(2024, 5, 1, 0, 0, 0, 0, loc),
		time.Date(2024, 5, 10, 0, 0, 0, 0, loc))
	require.ErrorIs(t, err, ubs.ErrNoEntriesInRange)
}
