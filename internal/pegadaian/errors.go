package pegadaian

import "errors"

var (
	// ErrAntiBotBlocked means the challenge interstitial never cleared
	// within the ceiling. The attempt aborts; only proxy rotation moves on.
	ErrAntiBotBlocked = errors.New("pegadaian: anti-bot challenge not cleared")

	// ErrStillLoading means too few prices were found but a loading
	// indicator is present in the markup, so the render was likely caught
	// mid-flight. A longer poll ceiling usually helps.
	ErrStillLoading = errors.New("pegadaian: page still loading")

	// ErrStructureChanged means too few prices were found and nothing in
	// the markup suggests an unfinished render. The page layout probably
	// changed and the extraction pattern needs review.
	ErrStructureChanged = errors.New("pegadaian: page structure changed")

	// ErrInsufficientPrices means fewer prices survived extraction than a
	// quote needs.
	ErrInsufficientPrices = errors.New("pegadaian: insufficient prices")
)
