package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"hargaemas/internal/gold"
	"hargaemas/internal/logger"
)

// timestampLayout matches the capture timestamps already present in the
// logs: local wall clock with microseconds and a colon-separated offset.
const timestampLayout = "2006-01-02 15:04:05.000000-07:00"

var (
	retailHeader  = []string{"id", "harga_beli", "harga_jual", "timestamp"}
	buybackHeader = []string{"id", "price", "date", "timestamp"}
)

// AppendRetail appends one pawnshop quote row to the log at path, writing
// the header first when the file is empty.
func AppendRetail(path string, quote gold.RetailQuote) error {
	f, empty, err := openAppend(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if empty {
		if err := w.Write(retailHeader); err != nil {
			return fmt.Errorf("write header to %s: %w", path, err)
		}
	}
	row := []string{
		quote.ID,
		quote.Buy,
		quote.Sell,
		quote.CapturedAt.Format(timestampLayout),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write row to %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	logger.Infof("1 row of harga emas pegadaian appended to %s", path)
	return nil
}

// AppendBuyback appends one row per record in input order, writing the
// header first when the file is empty.
func AppendBuyback(path string, records []gold.BuybackRecord) error {
	f, empty, err := openAppend(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if empty {
		if err := w.Write(buybackHeader); err != nil {
			return fmt.Errorf("write header to %s: %w", path, err)
		}
	}
	for _, rec := range records {
		row := []string{
			rec.ID,
			rec.Price.String(),
			rec.Date.Format(gold.DateFormat),
			rec.CapturedAt.Format(timestampLayout),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row to %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}

	logger.Infof("%d row(s) of harga emas ubs appended to %s", len(records), path)
	return nil
}

// openAppend opens path for appending, creating parent directories as
// needed, and reports whether the write position is at the very start.
// Checking the position instead of file existence makes a zero-length
// leftover file and a brand-new file behave identically.
func openAppend(path string) (*os.File, bool, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, false, fmt.Errorf("create dataset dir %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, false, fmt.Errorf("open dataset %s: %w", path, err)
	}
	offset, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		f.Close()
		return nil, false, fmt.Errorf("seek dataset %s: %w", path, err)
	}
	return f, offset == 0, nil
}
