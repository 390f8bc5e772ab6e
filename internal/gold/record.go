package gold

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateFormat is the calendar-date layout used across CSV output and CLI args.
const DateFormat = "2006-01-02"

// RetailQuote is one observation of the pawnshop's retail counter: the buy
// and sell price as digit-only strings (thousands separators stripped).
// Quotes are immutable once built; they are appended to the log, never updated.
type RetailQuote struct {
	ID         string
	Buy        string
	Sell       string
	CapturedAt time.Time
}

// NewRetailQuote stamps a fresh quote with a random id and the current
// wall-clock time in the source zone.
func NewRetailQuote(buy, sell string, loc *time.Location) RetailQuote {
	return RetailQuote{
		ID:         uuid.NewString(),
		Buy:        buy,
		Sell:       sell,
		CapturedAt: time.Now().In(loc),
	}
}

// BuybackRecord is one datapoint of the bullion retailer's buyback series.
// Date is the observation date (midnight, source zone); CapturedAt is when
// this row was produced, which can differ by days in bulk backfills.
type BuybackRecord struct {
	ID         string
	Price      decimal.Decimal
	Date       time.Time
	CapturedAt time.Time
}

// NewBuybackRecord stamps an observation into a storable record.
func NewBuybackRecord(price decimal.Decimal, date time.Time, loc *time.Location) BuybackRecord {
	return BuybackRecord{
		ID:         uuid.NewString(),
		Price:      price,
		Date:       date,
		CapturedAt: time.Now().In(loc),
	}
}
