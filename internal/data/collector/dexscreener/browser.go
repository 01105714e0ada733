package dexscreener

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
)

// BrowserOptions is the fixed fingerprint and timing used for every render.
type BrowserOptions struct {
	Bin            string
	Headless       bool
	Width          int
	Height         int
	UserAgent      string
	Locale         string
	Timezone       string
	NavTimeout     time.Duration
	RowWaitTimeout time.Duration
	ScrollPause    time.Duration
}

// launchGrace covers browser start and teardown on top of the page timings
var launchGrace = 30 * time.Second

// budget is the longest a single render may take
func (o BrowserOptions) budget() time.Duration {
	return launchGrace + o.NavTimeout + o.RowWaitTimeout + o.ScrollPause
}

// renderPage launches a fresh browser, loads url and returns the DOM snapshot
// once rows are present. Every acquired resource is released before returning.
func renderPage(ctx context.Context, url string, opts BrowserOptions) (html string, err error) {
	l := launcher.New().
		Headless(opts.Headless).
		Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	if opts.Bin != "" {
		l = l.Bin(opts.Bin)
	}

	controlURL, err := l.Context(ctx).Launch()
	if err != nil {
		return "", fmt.Errorf("failed to launch browser: %w", err)
	}
	defer l.Cleanup()
	defer l.Kill()

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return "", fmt.Errorf("failed to connect browser: %w", err)
	}
	defer func() { _ = browser.Close() }()

	// rod 会以 panic 形式抛出部分 CDP 错误
	defer func() {
		if r := recover(); r != nil {
			html, err = "", fmt.Errorf("browser panicked: %v", r)
		}
	}()

	incognito, err := browser.Incognito()
	if err != nil {
		return "", fmt.Errorf("failed to create browser context: %w", err)
	}
	defer func() { _ = incognito.Close() }()

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("failed to open page: %w", err)
	}
	defer func() { _ = page.Close() }()

	if err := applyFingerprint(page, opts); err != nil {
		return "", err
	}

	nav := page.Timeout(opts.NavTimeout)
	defer nav.CancelTimeout()
	wait := nav.WaitNavigation(proto.PageLifecycleEventNameDOMContentLoaded)
	if err := nav.Navigate(url); err != nil {
		return "", fmt.Errorf("failed to navigate: %w", err)
	}
	wait()
	if err := nav.GetContext().Err(); err != nil {
		return "", fmt.Errorf("page did not load within %s: %w", opts.NavTimeout, err)
	}

	if _, err := page.Timeout(opts.RowWaitTimeout).Element(rowReadyMarker); err != nil {
		return "", fmt.Errorf("rows did not appear within %s: %w", opts.RowWaitTimeout, err)
	}

	if _, err := page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`); err != nil {
		return "", fmt.Errorf("failed to scroll: %w", err)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(opts.ScrollPause):
	}

	html, err = page.HTML()
	if err != nil {
		return "", fmt.Errorf("failed to read page html: %w", err)
	}
	return html, nil
}

func applyFingerprint(page *rod.Page, opts BrowserOptions) error {
	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             opts.Width,
		Height:            opts.Height,
		DeviceScaleFactor: 1,
		Mobile:            false,
	}).Call(page); err != nil {
		return fmt.Errorf("failed to set viewport: %w", err)
	}

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      opts.UserAgent,
		AcceptLanguage: opts.Locale,
	}); err != nil {
		return fmt.Errorf("failed to set user agent: %w", err)
	}

	if err := (proto.EmulationSetLocaleOverride{Locale: opts.Locale}).Call(page); err != nil {
		return fmt.Errorf("failed to set locale: %w", err)
	}

	if err := (proto.EmulationSetTimezoneOverride{TimezoneID: opts.Timezone}).Call(page); err != nil {
		return fmt.Errorf("failed to set timezone: %w", err)
	}
	return nil
}
