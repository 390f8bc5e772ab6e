package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

func validate(c *Config) error {
	if err := c.App.validate(); err != nil {
		return err
	}
	if err := c.Pegadaian.validate(); err != nil {
		return err
	}
	if err := c.UBS.validate(); err != nil {
		return err
	}
	if err := c.Notify.validate(); err != nil {
		return err
	}
	return nil
}

func (a *AppConfig) validate() error {
	if _, err := time.LoadLocation(a.Timezone); err != nil {
		return fmt.Errorf("app.timezone %q is not a valid zone: %w", a.Timezone, err)
	}
	return nil
}

func (p *PegadaianConfig) validate() error {
	if _, err := url.ParseRequestURI(p.URL); err != nil {
		return fmt.Errorf("pegadaian.url is invalid: %w", err)
	}
	if p.PollInterval() > p.PollTimeout() {
		return fmt.Errorf("pegadaian.poll_interval_seconds exceeds poll_timeout_seconds")
	}
	return nil
}

func (u *UBSConfig) validate() error {
	if _, err := url.ParseRequestURI(u.Endpoint); err != nil {
		return fmt.Errorf("ubs.endpoint is invalid: %w", err)
	}
	if strings.TrimSpace(u.Instrument) == "" {
		return fmt.Errorf("ubs.instrument cannot be empty")
	}
	return nil
}

func (n *NotifyConfig) validate() error {
	if !n.Telegram.Enabled {
		return nil
	}
	if strings.TrimSpace(n.Telegram.BotToken) == "" {
		return fmt.Errorf("notify.telegram.bot_token required when telegram is enabled")
	}
	if strings.TrimSpace(n.Telegram.ChatID) == "" {
		return fmt.Errorf("notify.telegram.chat_id required when telegram is enabled")
	}
	return nil
}
