package config

const (
	defaultAppLogLevel = "info"
	defaultAppTimezone = "Asia/Jakarta"

	defaultPegadaianURL          = "https://sahabat.pegadaian.co.id/harga-emas"
	defaultPegadaianCSV          = "datasets/harga_emas_pegadaian.csv"
	defaultPegadaianArtifactDir  = "."
	defaultPegadaianPrefix       = "harga_emas"
	defaultPegadaianUA           = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	defaultInterstitialTitle     = "Just a moment..."
	defaultPriceMarker           = "Rp"
	defaultExpectedPrices        = 2
	defaultAntiBotTimeoutSec     = 60
	defaultPollIntervalSec       = 2
	defaultPollTimeoutSec        = 60
	defaultUBSEndpoint           = "https://ubslifestyle.com/wp-admin/admin-ajax.php"
	defaultUBSAction             = "get_harga_emas_hari_ini"
	defaultUBSInstrument         = "GOLD"
	defaultUBSCSV                = "datasets/harga_emas_ubs.csv"
	defaultUBSTimeoutSec         = 30
	defaultUBSRequestsPerSecond  = 2
	defaultWatchPegadaianCron    = "10 9 * * *"
	defaultWatchUBSCron          = "0 17 * * *"
)

var defaultLoadingIndicators = []string{"loading", "spinner", "skeleton", "shimmer"}

func (c *Config) applyDefaults() {
	c.App.applyDefaults()
	c.Pegadaian.applyDefaults()
	c.UBS.applyDefaults()
	c.Watch.applyDefaults()
}

func (a *AppConfig) applyDefaults() {
	if a.LogLevel == "" {
		a.LogLevel = defaultAppLogLevel
	}
	if a.Timezone == "" {
		a.Timezone = defaultAppTimezone
	}
}

func (p *PegadaianConfig) applyDefaults() {
	if p.URL == "" {
		p.URL = defaultPegadaianURL
	}
	if p.OutputCSV == "" {
		p.OutputCSV = defaultPegadaianCSV
	}
	if p.ArtifactDir == "" {
		p.ArtifactDir = defaultPegadaianArtifactDir
	}
	if p.ArtifactPrefix == "" {
		p.ArtifactPrefix = defaultPegadaianPrefix
	}
	if p.UserAgent == "" {
		p.UserAgent = defaultPegadaianUA
	}
	if p.InterstitialTitle == "" {
		p.InterstitialTitle = defaultInterstitialTitle
	}
	if p.PriceMarker == "" {
		p.PriceMarker = defaultPriceMarker
	}
	if p.ExpectedPrices <= 0 {
		p.ExpectedPrices = defaultExpectedPrices
	}
	if p.AntiBotTimeoutSec <= 0 {
		p.AntiBotTimeoutSec = defaultAntiBotTimeoutSec
	}
	if p.PollIntervalSec <= 0 {
		p.PollIntervalSec = defaultPollIntervalSec
	}
	if p.PollTimeoutSec <= 0 {
		p.PollTimeoutSec = defaultPollTimeoutSec
	}
	if len(p.LoadingIndicators) == 0 {
		p.LoadingIndicators = append([]string(nil), defaultLoadingIndicators...)
	}
}

func (u *UBSConfig) applyDefaults() {
	if u.Endpoint == "" {
		u.Endpoint = defaultUBSEndpoint
	}
	if u.Action == "" {
		u.Action = defaultUBSAction
	}
	if u.Instrument == "" {
		u.Instrument = defaultUBSInstrument
	}
	if u.OutputCSV == "" {
		u.OutputCSV = defaultUBSCSV
	}
	if u.TimeoutSec <= 0 {
		u.TimeoutSec = defaultUBSTimeoutSec
	}
	if u.RequestsPerSecond <= 0 {
		u.RequestsPerSecond = defaultUBSRequestsPerSecond
	}
}

func (w *WatchConfig) applyDefaults() {
	if w.Pegadaian.Cron == "" {
		w.Pegadaian.Cron = defaultWatchPegadaianCron
	}
	if w.UBS.Cron == "" {
		w.UBS.Cron = defaultWatchUBSCron
	}
}
