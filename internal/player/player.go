// Package player drives a real browser session against YouTube watch
// pages: opening a channel's latest video, liking, subscribing,
// commenting, and reading playback state for the watch loop.
package player

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"tubeboost/internal/browser"
	"tubeboost/internal/engine"
)

// Error taxonomy for a visit. Navigation failures abort the visit;
// a missing element only skips the action it belongs to.
var (
	ErrNavigation      = errors.New("navigation failed")
	ErrElementNotFound = errors.New("element not found")
)

// VideoDetails describes the video a visit landed on. Not persisted.
type VideoDetails struct {
	VideoID         string
	Title           string
	DurationSeconds float64
	IsLive          bool
}

// Player creates browser sessions for visits
type Player struct {
	headless       bool
	blockedDomains []string
}

// New creates a new player
func New(headless bool, blockedDomains []string) *Player {
	return &Player{headless: headless, blockedDomains: blockedDomains}
}

// Session is one browser session spanning a single visit. Close releases
// the browser.
type Session struct {
	ctx     context.Context
	cancels []context.CancelFunc
}

// NewSession starts a browser, injects the given cookies and applies the
// blocked-domain list. The caller must Close the session.
func (p *Player) NewSession(ctx context.Context, cookies []*network.Cookie) (*Session, error) {
	opts := browser.Options(p.headless)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	s := &Session{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{browserCancel, allocCancel},
	}

	if err := chromedp.Run(browserCtx, browser.BlockRequests(p.blockedDomains)); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to set blocked domains: %w", err)
	}

	if err := s.injectCookies(cookies); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to inject cookies: %w", err)
	}

	return s, nil
}

// Close shuts the browser down.
func (s *Session) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
}

// injectCookies sets cookies in the browser context
func (s *Session) injectCookies(cookies []*network.Cookie) error {
	return chromedp.Run(s.ctx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			for _, c := range cookies {
				err := network.SetCookie(c.Name, c.Value).
					WithDomain(c.Domain).
					WithPath(c.Path).
					WithSecure(c.Secure).
					WithHTTPOnly(c.HTTPOnly).
					WithSameSite(c.SameSite).
					Do(ctx)

				if err != nil {
					return err
				}
			}
			return nil
		}),
	)
}

// OpenLatestVideo navigates to the channel's videos tab, opens the newest
// upload and reads its details once playback has begun.
func (s *Session) OpenLatestVideo(ctx context.Context, channelURL string) (VideoDetails, error) {
	if err := ctx.Err(); err != nil {
		return VideoDetails{}, err
	}
	videosURL := strings.TrimRight(channelURL, "/") + "/videos"

	navCtx, cancel := context.WithTimeout(s.ctx, 2*time.Minute)
	defer cancel()

	err := chromedp.Run(navCtx,
		chromedp.Navigate(videosURL),
		chromedp.WaitVisible(WaitForGrid, chromedp.ByQuery),
		chromedp.Click(FirstThumbnail, chromedp.ByQuery),
		chromedp.WaitVisible(WaitForVideo, chromedp.ByQuery),
	)
	if err != nil {
		return VideoDetails{}, fmt.Errorf("%w: %s: %v", ErrNavigation, videosURL, err)
	}

	// Give the player a moment to settle and start playback
	if err := chromedp.Run(navCtx, chromedp.Sleep(3*time.Second)); err != nil {
		return VideoDetails{}, fmt.Errorf("%w: %v", ErrNavigation, err)
	}

	return s.videoDetails(navCtx)
}

// rawDetails is the shape the extraction script returns
type rawDetails struct {
	VideoID  string  `json:"videoId"`
	Title    string  `json:"title"`
	Duration float64 `json:"duration"`
	IsLive   bool    `json:"isLive"`
}

func (s *Session) videoDetails(ctx context.Context) (VideoDetails, error) {
	extractJS := fmt.Sprintf(`
		(function() {
			const video = document.querySelector('%s');
			const titleEl = document.querySelector('%s');
			const liveBadge = document.querySelector('%s');
			const videoId = new URLSearchParams(location.search).get('v') || '';

			return {
				videoId: videoId,
				title: titleEl?.textContent?.trim() || document.title,
				duration: video && isFinite(video.duration) ? video.duration : 0,
				isLive: liveBadge !== null || (video ? video.duration === Infinity : false)
			};
		})()
	`, VideoElement, VideoTitle, LiveBadge)

	var raw rawDetails
	if err := chromedp.Run(ctx, chromedp.Evaluate(extractJS, &raw)); err != nil {
		return VideoDetails{}, fmt.Errorf("failed to read video details: %w", err)
	}

	return VideoDetails{
		VideoID:         raw.VideoID,
		Title:           raw.Title,
		DurationSeconds: raw.Duration,
		IsLive:          raw.IsLive,
	}, nil
}

// Like presses the like button unless it is already pressed.
func (s *Session) Like(ctx context.Context) error {
	return s.toggleButton(ctx, LikeButton, "like button")
}

// Subscribe presses the subscribe button unless already subscribed.
func (s *Session) Subscribe(ctx context.Context) error {
	// An already-subscribed channel renders the button with
	// aria-label "Unsubscribe"; pressing it again would undo it.
	clickJS := fmt.Sprintf(`
		(function() {
			const btn = document.querySelector('%s');
			if (!btn) return "missing";
			const label = (btn.getAttribute('aria-label') || btn.textContent || '').toLowerCase();
			if (label.includes('unsubscribe') || label.includes('subscribed')) return "already";
			btn.click();
			return "clicked";
		})()
	`, SubscribeButton)

	return s.runToggle(ctx, clickJS, "subscribe button")
}

func (s *Session) toggleButton(ctx context.Context, selector, what string) error {
	clickJS := fmt.Sprintf(`
		(function() {
			const btn = document.querySelector('%s');
			if (!btn) return "missing";
			if (btn.getAttribute('aria-pressed') === 'true') return "already";
			btn.click();
			return "clicked";
		})()
	`, selector)

	return s.runToggle(ctx, clickJS, what)
}

func (s *Session) runToggle(ctx context.Context, clickJS, what string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(s.ctx, 30*time.Second)
	defer cancel()

	var result string
	if err := chromedp.Run(runCtx, chromedp.Evaluate(clickJS, &result)); err != nil {
		return fmt.Errorf("failed to click %s: %w", what, err)
	}
	if result == "missing" {
		return fmt.Errorf("%w: %s", ErrElementNotFound, what)
	}
	return nil
}

// Comment scrolls to the comment box, types text and submits it.
func (s *Session) Comment(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(s.ctx, time.Minute)
	defer cancel()

	// The comment section only mounts once it has been scrolled into view.
	err := chromedp.Run(runCtx,
		chromedp.Evaluate(`window.scrollBy(0, window.innerHeight)`, nil),
		chromedp.WaitVisible(CommentsSection, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("%w: comment section", ErrElementNotFound)
	}

	err = chromedp.Run(runCtx,
		chromedp.Click(CommentPlaceholder, chromedp.ByQuery),
		chromedp.WaitVisible(CommentInput, chromedp.ByQuery),
		chromedp.SendKeys(CommentInput, text, chromedp.ByQuery),
		chromedp.Click(CommentSubmit, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("%w: comment box: %v", ErrElementNotFound, err)
	}

	return nil
}

// Status implements engine.PlaybackProbe against the live watch page.
func (s *Session) Status(ctx context.Context) (engine.PlaybackStatus, error) {
	statusJS := fmt.Sprintf(`
		(function() {
			const video = document.querySelector('%s');
			if (!video) return null;
			return {
				videoId: new URLSearchParams(location.search).get('v') || '',
				elapsed: video.currentTime || 0,
				duration: isFinite(video.duration) ? video.duration : 0,
				ended: video.ended
			};
		})()
	`, VideoElement)

	var raw *struct {
		VideoID  string  `json:"videoId"`
		Elapsed  float64 `json:"elapsed"`
		Duration float64 `json:"duration"`
		Ended    bool    `json:"ended"`
	}

	if err := ctx.Err(); err != nil {
		return engine.PlaybackStatus{}, err
	}
	runCtx, cancel := context.WithTimeout(s.ctx, 15*time.Second)
	defer cancel()

	if err := chromedp.Run(runCtx, chromedp.Evaluate(statusJS, &raw)); err != nil {
		return engine.PlaybackStatus{}, fmt.Errorf("failed to read playback state: %w", err)
	}
	if raw == nil {
		return engine.PlaybackStatus{}, fmt.Errorf("%w: video element", ErrElementNotFound)
	}

	return engine.PlaybackStatus{
		VideoID:         raw.VideoID,
		ElapsedSeconds:  raw.Elapsed,
		DurationSeconds: raw.Duration,
		Ended:           raw.Ended,
	}, nil
}
