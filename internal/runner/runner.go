// Package runner drives one support run: it turns the engine's rotation
// and watch-time decisions into browser actions, one channel at a time,
// and persists what happened.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/chromedp/cdproto/network"

	"tubeboost/internal/auth"
	"tubeboost/internal/config"
	"tubeboost/internal/engine"
	"tubeboost/internal/history"
	"tubeboost/internal/player"
	"tubeboost/internal/prompt"
	"tubeboost/internal/store"
)

// session is the per-visit browser surface, satisfied by *player.Session.
type session interface {
	engine.PlaybackProbe
	OpenLatestVideo(ctx context.Context, channelURL string) (player.VideoDetails, error)
	Like(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Comment(ctx context.Context, text string) error
	Close()
}

// sessionFactory opens a browser session for one visit.
type sessionFactory func(ctx context.Context, cookies []*network.Cookie) (session, error)

// VisitResult describes one complete attempt to support a channel.
// Failures are values here, not panics: the run logs them and moves on.
type VisitResult struct {
	ChannelID      string
	ChannelName    string
	VideoTitle     string
	Outcome        engine.Outcome
	WatchedSeconds float64
	Liked          bool
	Subscribed     bool
	Commented      bool
	Err            error
	StartedAt      time.Time
	EndedAt        time.Time
}

// Runner executes support runs
type Runner struct {
	store   *store.Store
	history *history.Store // may be nil
	auth    *auth.Manager  // may be nil (unauthenticated run)
	prompt  *prompt.Reader
	cfg     *config.Config

	newSession sessionFactory
	rng        *rand.Rand
}

// New creates a runner. history and authManager may be nil; prompt may be
// nil for unattended (scheduled) runs, in which case the run continues
// between channels without asking.
func New(st *store.Store, hist *history.Store, p *player.Player, authManager *auth.Manager, pr *prompt.Reader, cfg *config.Config) *Runner {
	return &Runner{
		store:   st,
		history: hist,
		auth:    authManager,
		prompt:  pr,
		cfg:     cfg,
		newSession: func(ctx context.Context, cookies []*network.Cookie) (session, error) {
			return p.NewSession(ctx, cookies)
		},
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Run visits every channel once in rotation order. Precondition failures
// (empty channel list, empty comment pool while commenting is enabled)
// abort before any visit; per-visit failures do not abort the run.
func (r *Runner) Run(ctx context.Context) ([]VisitResult, error) {
	channels, err := r.store.LoadChannels()
	if err != nil {
		return nil, fmt.Errorf("failed to load channels: %w", err)
	}
	if len(channels) == 0 {
		return nil, engine.ErrEmptyChannelList
	}

	comments, err := r.store.LoadComments()
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	if len(comments) == 0 {
		return nil, engine.ErrEmptyCommentPool
	}

	settings, err := r.store.LoadSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	cookies := r.loadCookies()

	order := engine.VisitOrder(len(channels), settings.RotateChannels, settings.LastChannelIndex)
	log.Printf("Starting support run over %d channels", len(channels))

	var results []VisitResult
	for i, idx := range order {
		ch := channels[idx]
		log.Printf("[%d/%d] Visiting %s", i+1, len(order), ch.Name)

		result, newSettings := r.visit(ctx, ch, comments, settings, cookies)
		results = append(results, result)

		if result.Outcome.Supported() && result.Err == nil {
			channels[idx].SupportCount++
			now := time.Now()
			channels[idx].LastSupportedAt = &now
			if newSettings.RotateChannels {
				// Persist the channel's index in the original list, not
				// its position in the rotated order: the next run resumes
				// from here.
				newSettings.LastChannelIndex = idx
			}
			if err := r.store.SaveChannels(channels); err != nil {
				log.Printf("Failed to save channels: %v", err)
			}
		}
		settings = newSettings
		if err := r.store.SaveSettings(settings); err != nil {
			log.Printf("Failed to save settings: %v", err)
		}

		r.record(result)
		r.logResult(result)

		if i == len(order)-1 {
			break
		}
		if !r.pauseBetweenChannels(ctx, settings.PauseBetweenChannelsSeconds) {
			log.Println("Run stopped by operator")
			break
		}
	}

	log.Printf("Support run finished: %d visits", len(results))
	return results, nil
}

func (r *Runner) loadCookies() []*network.Cookie {
	if r.auth == nil || !r.auth.IsAuthenticated() {
		log.Println("No valid session cookies - running unauthenticated (likes and comments will likely be skipped)")
		return nil
	}
	cookies, err := r.auth.GetCookies()
	if err != nil {
		log.Printf("Failed to load cookies: %v", err)
		return nil
	}
	return cookies
}

// visit performs one complete channel visit and returns the result plus
// the settings as they should be persisted afterwards. Settings are
// threaded through as values; nothing mutates them behind the caller's
// back.
func (r *Runner) visit(ctx context.Context, ch store.Channel, comments []string, settings store.Settings, cookies []*network.Cookie) (VisitResult, store.Settings) {
	result := VisitResult{
		ChannelID:   ch.ID,
		ChannelName: ch.Name,
		StartedAt:   time.Now(),
	}
	errored := func(err error) (VisitResult, store.Settings) {
		result.Outcome = engine.OutcomeErrored
		result.Err = err
		result.EndedAt = time.Now()
		return result, settings
	}

	sess, err := r.newSession(ctx, cookies)
	if err != nil {
		return errored(fmt.Errorf("failed to start browser session: %w", err))
	}
	defer sess.Close()

	details, err := sess.OpenLatestVideo(ctx, ch.URL)
	if err != nil {
		return errored(err)
	}
	result.VideoTitle = details.Title

	if settings.LikeVideos {
		if err := sess.Like(ctx); err != nil {
			// Soft failure: the action is skipped, the visit continues.
			log.Printf("Like skipped for %s: %v", ch.Name, err)
		} else {
			result.Liked = true
		}
	}

	if settings.SubscribeToChannels {
		if err := sess.Subscribe(ctx); err != nil {
			log.Printf("Subscribe skipped for %s: %v", ch.Name, err)
		} else {
			result.Subscribed = true
		}
	}

	settings = r.postComment(ctx, sess, ch, comments, settings, &result)

	duration := details.DurationSeconds
	if details.IsLive || duration <= 0 {
		duration = float64(r.fallbackDuration())
		log.Printf("Duration unknown for %q - using fallback of %.0fs", details.Title, duration)
	}
	target := engine.WatchSeconds(duration, settings.WatchTimePercentage,
		settings.MinWatchTimeSeconds, settings.MaxWatchTimeSeconds)
	log.Printf("Watching %q for %ds (video is %.0fs)", details.Title, target, duration)

	watcher := &engine.Watcher{PollInterval: r.pollInterval()}
	watch := watcher.Watch(ctx, sess, details.VideoID, time.Duration(target)*time.Second)

	result.Outcome = watch.Outcome
	result.WatchedSeconds = watch.WatchedSeconds
	result.Err = watch.Err
	result.EndedAt = time.Now()
	return result, settings
}

func (r *Runner) postComment(ctx context.Context, sess session, ch store.Channel, comments []string, settings store.Settings, result *VisitResult) store.Settings {
	var pick engine.CommentPick
	var err error
	switch r.cfg.Run.CommentMode {
	case "random":
		pick, err = engine.PickRandomComment(comments, r.rng)
	default:
		pick, err = engine.NextComment(comments, settings.LastCommentIndex)
	}
	if err != nil {
		log.Printf("Comment skipped for %s: %v", ch.Name, err)
		return settings
	}

	if err := sess.Comment(ctx, pick.Comment); err != nil {
		log.Printf("Comment skipped for %s: %v", ch.Name, err)
		return settings
	}

	result.Commented = true
	if pick.Rotated {
		settings.LastCommentIndex = pick.Index
	}
	return settings
}

// pauseBetweenChannels waits the configured pause, then asks whether to
// continue. No answer within the confirm timeout means continue; an
// explicit no stops the run.
func (r *Runner) pauseBetweenChannels(ctx context.Context, pauseSeconds int) bool {
	select {
	case <-time.After(time.Duration(pauseSeconds) * time.Second):
	case <-ctx.Done():
		return false
	}

	if r.prompt == nil {
		return true
	}

	timeout := time.Duration(r.cfg.Run.ConfirmTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ok, err := r.prompt.Confirm(ctx, "Continue with the next channel?", timeout, true)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("Confirm failed: %v", err)
		}
		return false
	}
	return ok
}

func (r *Runner) record(result VisitResult) {
	if r.history == nil {
		return
	}

	errText := ""
	if result.Err != nil {
		errText = result.Err.Error()
	}
	visit := &history.Visit{
		ChannelID:      result.ChannelID,
		ChannelName:    result.ChannelName,
		VideoTitle:     result.VideoTitle,
		Outcome:        result.Outcome.String(),
		Supported:      result.Outcome.Supported() && result.Err == nil,
		WatchedSeconds: result.WatchedSeconds,
		Liked:          result.Liked,
		Subscribed:     result.Subscribed,
		Commented:      result.Commented,
		Err:            errText,
		StartedAt:      result.StartedAt,
		EndedAt:        result.EndedAt,
	}
	if err := r.history.RecordVisit(visit); err != nil {
		log.Printf("Failed to record visit history: %v", err)
	}
}

func (r *Runner) logResult(result VisitResult) {
	switch {
	case result.Err != nil:
		log.Printf("Visit to %s failed: %v", result.ChannelName, result.Err)
	case result.Outcome == engine.OutcomeInterrupted:
		log.Printf("Visit to %s interrupted by autoplay after %.0fs - still counted", result.ChannelName, result.WatchedSeconds)
	default:
		log.Printf("Visit to %s completed: watched %.0fs", result.ChannelName, result.WatchedSeconds)
	}
}

func (r *Runner) pollInterval() time.Duration {
	if r.cfg.Run.PollIntervalSeconds > 0 {
		return time.Duration(r.cfg.Run.PollIntervalSeconds) * time.Second
	}
	return engine.DefaultPollInterval
}

func (r *Runner) fallbackDuration() int {
	if r.cfg.Run.FallbackDurationSeconds > 0 {
		return r.cfg.Run.FallbackDurationSeconds
	}
	return engine.FallbackDurationSeconds
}
