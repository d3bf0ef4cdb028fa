// Package browser provides shared chromedp configuration with anti-bot-detection measures.
package browser

import (
	"context"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// DefaultUserAgent is a realistic Chrome user agent
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Options returns chromedp allocator options with anti-bot-detection measures.
// All browser instances should use this to ensure consistent stealth configuration.
func Options(headless bool) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),

		// Prevent navigator.webdriver = true detection.
		// YouTube checks this before degrading or blocking automated sessions.
		chromedp.Flag("disable-blink-features", "AutomationControlled"),

		// Use a realistic user agent
		chromedp.UserAgent(DefaultUserAgent),

		// Realistic window size
		chromedp.WindowSize(1920, 1080),

		// Disable automation-related extensions and features
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),

		// Autoplay without a user gesture, needed for the watch loop
		chromedp.Flag("autoplay-policy", "no-user-gesture-required"),

		// Keep playback running while the window is not focused
		chromedp.Flag("disable-background-media-suspend", true),
	)

	if headless {
		opts = append(opts, chromedp.Flag("disable-gpu", true))
	}

	return opts
}

// BlockRequests prevents the browser from loading URLs matching the given
// patterns (e.g. "*doubleclick.net*"). An empty list is a no-op.
func BlockRequests(patterns []string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		if len(patterns) == 0 {
			return nil
		}
		if err := network.Enable().Do(ctx); err != nil {
			return err
		}
		return network.SetBlockedURLs(patterns).Do(ctx)
	})
}
