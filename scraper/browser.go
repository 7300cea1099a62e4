package scraper

import (
	"context"
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// stealthScript runs before any page script and hides the obvious automation
// markers.
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
window.chrome = { runtime: {} };
Object.defineProperty(navigator, 'plugins', { get: () => [1, 2, 3, 4, 5] });
Object.defineProperty(navigator, 'languages', { get: () => ['ko-KR', 'ko', 'en-US', 'en'] });
`

type LaunchOptions struct {
	Visible   bool
	UserAgent string
}

// Browser is a running browser with the one page the session drives.
type Browser interface {
	Page() playwright.Page
	Close() error
}

// Launcher starts a browser. Tests swap in a fake.
type Launcher func(ctx context.Context, opts LaunchOptions) (Browser, error)

type playwrightBrowser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
}

// LaunchChromium starts Chromium through playwright with the stealth
// settings applied to a fresh context.
func LaunchChromium(ctx context.Context, opts LaunchOptions) (Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(!opts.Visible),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--no-sandbox",
			"--disable-infobars",
			"--window-size=1920,1080",
		},
		IgnoreDefaultArgs: []string{"--enable-automation"},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	b := &playwrightBrowser{pw: pw, browser: browser}

	b.context, err = browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(opts.UserAgent),
		Locale:    playwright.String("ko-KR"),
		Viewport:  &playwright.Size{Width: 1920, Height: 1080},
	})
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	if err := b.context.AddInitScript(playwright.Script{Content: playwright.String(stealthScript)}); err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to install init script: %w", err)
	}

	b.page, err = b.context.NewPage()
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return b, nil
}

func (b *playwrightBrowser) Page() playwright.Page {
	return b.page
}

func (b *playwrightBrowser) Close() error {
	var errs []error
	if b.context != nil {
		errs = append(errs, b.context.Close())
	}
	if b.browser != nil {
		errs = append(errs, b.browser.Close())
	}
	if b.pw != nil {
		errs = append(errs, b.pw.Stop())
	}
	return errors.Join(errs...)
}
