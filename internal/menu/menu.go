// Package menu is the interactive terminal surface: channel and comment
// management, settings editing, login, and launching support runs.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/browser"

	"tubeboost/internal/auth"
	"tubeboost/internal/history"
	"tubeboost/internal/prompt"
	"tubeboost/internal/report"
	"tubeboost/internal/runner"
	"tubeboost/internal/store"
)

var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	errorColor   = color.New(color.FgRed)
	successColor = color.New(color.FgGreen)
)

// Menu drives the interactive session
type Menu struct {
	store   *store.Store
	history *history.Store
	runner  *runner.Runner
	auth    *auth.Manager
	reader  *prompt.Reader
}

// New creates a menu
func New(st *store.Store, hist *history.Store, run *runner.Runner, authManager *auth.Manager, reader *prompt.Reader) *Menu {
	return &Menu{
		store:   st,
		history: hist,
		runner:  run,
		auth:    authManager,
		reader:  reader,
	}
}

// Run loops until the user quits or input is exhausted.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.printMenu()

		choice, err := m.reader.Line(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch choice {
		case "1":
			m.startRun(ctx)
		case "2":
			m.listChannels()
		case "3":
			m.addChannel(ctx)
		case "4":
			m.removeChannel(ctx)
		case "5":
			m.manageComments(ctx)
		case "6":
			m.editSettings(ctx)
		case "7":
			m.loginLogout(ctx)
		case "8":
			m.showHistory()
		case "9":
			m.exportReport()
		case "0", "q":
			return nil
		default:
			errorColor.Printf("Unknown option: %s\n", choice)
		}
	}
}

func (m *Menu) printMenu() {
	fmt.Println()
	titleColor.Println("=== tubeboost ===")
	authStatus := "not logged in"
	if m.auth.IsAuthenticated() {
		authStatus = "logged in"
	}
	fmt.Printf("Session: %s\n\n", authStatus)
	fmt.Println("  1) Start support run")
	fmt.Println("  2) List channels")
	fmt.Println("  3) Add channel")
	fmt.Println("  4) Remove channel")
	fmt.Println("  5) Manage comments")
	fmt.Println("  6) Edit settings")
	if m.auth.IsAuthenticated() {
		fmt.Println("  7) Logout")
	} else {
		fmt.Println("  7) Login")
	}
	fmt.Println("  8) Show history")
	fmt.Println("  9) Export report")
	fmt.Println("  0) Quit")
	fmt.Print("> ")
}

func (m *Menu) startRun(ctx context.Context) {
	results, err := m.runner.Run(ctx)
	if err != nil {
		errorColor.Printf("Run aborted: %v\n", err)
		return
	}

	supported := 0
	for _, r := range results {
		if r.Outcome.Supported() && r.Err == nil {
			supported++
		}
	}
	successColor.Printf("Run finished: %d/%d channels supported\n", supported, len(results))
}

func (m *Menu) listChannels() {
	channels, err := m.store.LoadChannels()
	if err != nil {
		errorColor.Printf("Failed to load channels: %v\n", err)
		return
	}
	if len(channels) == 0 {
		fmt.Println("No channels yet. Add one with option 3.")
		return
	}

	for i, ch := range channels {
		last := "never"
		if ch.LastSupportedAt != nil {
			last = ch.LastSupportedAt.Format("Jan 2 15:04")
		}
		fmt.Printf("%2d. %-30s supported %d times (last: %s)\n     %s\n",
			i+1, ch.Name, ch.SupportCount, last, ch.URL)
	}
}

func (m *Menu) addChannel(ctx context.Context) {
	name, err := m.ask(ctx, "Channel name: ")
	if err != nil || name == "" {
		return
	}
	url, err := m.ask(ctx, "Channel URL: ")
	if err != nil || url == "" {
		return
	}

	ch, err := m.store.AddChannel(name, url)
	if err != nil {
		errorColor.Printf("Failed to add channel: %v\n", err)
		return
	}
	successColor.Printf("Added %s\n", ch.Name)
}

func (m *Menu) removeChannel(ctx context.Context) {
	channels, err := m.store.LoadChannels()
	if err != nil || len(channels) == 0 {
		fmt.Println("No channels to remove.")
		return
	}
	m.listChannels()

	answer, err := m.ask(ctx, "Remove which number? (blank to cancel): ")
	if err != nil || answer == "" {
		return
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(channels) {
		errorColor.Println("Not a valid channel number")
		return
	}

	if err := m.store.RemoveChannel(channels[n-1].ID); err != nil {
		errorColor.Printf("Failed to remove channel: %v\n", err)
		return
	}
	successColor.Printf("Removed %s\n", channels[n-1].Name)
}

func (m *Menu) manageComments(ctx context.Context) {
	comments, err := m.store.LoadComments()
	if err != nil {
		errorColor.Printf("Failed to load comments: %v\n", err)
		return
	}

	if len(comments) == 0 {
		fmt.Println("Comment pool is empty.")
	}
	for i, c := range comments {
		fmt.Printf("%2d. %s\n", i+1, c)
	}

	answer, err := m.ask(ctx, "(a)dd, (d)elete number, or blank to go back: ")
	if err != nil || answer == "" {
		return
	}

	switch {
	case answer == "a":
		text, err := m.ask(ctx, "Comment text: ")
		if err != nil || text == "" {
			return
		}
		comments = append(comments, text)
	case answer[0] == 'd':
		numStr := answer[1:]
		if numStr == "" {
			numStr, err = m.ask(ctx, "Delete which number? ")
			if err != nil {
				return
			}
		}
		n, err := strconv.Atoi(numStr)
		if err != nil || n < 1 || n > len(comments) {
			errorColor.Println("Not a valid comment number")
			return
		}
		comments = append(comments[:n-1], comments[n:]...)
	default:
		return
	}

	if err := m.store.SaveComments(comments); err != nil {
		errorColor.Printf("Failed to save comments: %v\n", err)
		return
	}
	successColor.Println("Comment pool saved")
}

// editSettings walks through each setting with the current value as the
// default. The min <= max consistency rule is enforced here, at edit
// time, before anything is saved.
func (m *Menu) editSettings(ctx context.Context) {
	settings, err := m.store.LoadSettings()
	if err != nil {
		errorColor.Printf("Failed to load settings: %v\n", err)
		return
	}

	edited := settings
	edited.WatchTimePercentage = m.askInt(ctx, "Watch time percentage (10-100)", settings.WatchTimePercentage)
	edited.MinWatchTimeSeconds = m.askInt(ctx, "Min watch time seconds (10-300)", settings.MinWatchTimeSeconds)
	edited.MaxWatchTimeSeconds = m.askInt(ctx, "Max watch time seconds (60-3600)", settings.MaxWatchTimeSeconds)
	edited.PauseBetweenChannelsSeconds = m.askInt(ctx, "Pause between channels seconds (10-300)", settings.PauseBetweenChannelsSeconds)
	edited.LikeVideos = m.askBool(ctx, "Like videos", settings.LikeVideos)
	edited.SubscribeToChannels = m.askBool(ctx, "Subscribe to channels", settings.SubscribeToChannels)
	edited.RotateChannels = m.askBool(ctx, "Rotate channels between runs", settings.RotateChannels)

	if err := edited.Validate(); err != nil {
		errorColor.Printf("Settings not saved: %v\n", err)
		return
	}

	if err := m.store.SaveSettings(edited); err != nil {
		errorColor.Printf("Failed to save settings: %v\n", err)
		return
	}
	successColor.Println("Settings saved")
}

func (m *Menu) loginLogout(ctx context.Context) {
	if m.auth.IsAuthenticated() {
		if err := m.auth.Logout(); err != nil {
			errorColor.Printf("Logout failed: %v\n", err)
			return
		}
		successColor.Println("Logged out - cookies cleared")
		return
	}

	fmt.Println("A browser window will open. Log in to your account there.")
	if err := m.auth.Login(ctx); err != nil {
		errorColor.Printf("Login failed: %v\n", err)
		return
	}
	successColor.Println("Login successful - cookies saved")
}

func (m *Menu) showHistory() {
	if m.history == nil {
		fmt.Println("History is not available.")
		return
	}

	stats, err := m.history.StatsByChannel()
	if err != nil {
		errorColor.Printf("Failed to load history: %v\n", err)
		return
	}
	if len(stats) == 0 {
		fmt.Println("No visits recorded yet.")
		return
	}

	titleColor.Println("Channel stats")
	for _, cs := range stats {
		fmt.Printf("  %-30s %d visits, %d supported, %s watched\n",
			cs.ChannelName, cs.Visits, cs.Supported,
			(time.Duration(cs.TotalWatchedSeconds) * time.Second).Round(time.Second))
	}
}

func (m *Menu) exportReport() {
	if m.history == nil {
		fmt.Println("History is not available.")
		return
	}

	visits, err := m.history.RecentVisits(100)
	if err != nil {
		errorColor.Printf("Failed to load history: %v\n", err)
		return
	}
	stats, err := m.history.StatsByChannel()
	if err != nil {
		errorColor.Printf("Failed to load history: %v\n", err)
		return
	}

	builder, err := report.New(m.reportDir())
	if err != nil {
		errorColor.Printf("Failed to create report builder: %v\n", err)
		return
	}
	r, err := builder.Build(visits, stats)
	if err != nil {
		errorColor.Printf("Failed to build report: %v\n", err)
		return
	}

	successColor.Printf("Report saved to %s\n", r.FilePath)
	if err := browser.OpenFile(r.FilePath); err != nil {
		log.Printf("Could not open report in browser: %v", err)
	}
}

func (m *Menu) reportDir() string {
	return filepath.Join(m.store.Dir(), "reports")
}

func (m *Menu) ask(ctx context.Context, question string) (string, error) {
	fmt.Print(question)
	return m.reader.Line(ctx)
}

func (m *Menu) askInt(ctx context.Context, question string, current int) int {
	answer, err := m.ask(ctx, fmt.Sprintf("%s [%d]: ", question, current))
	if err != nil || answer == "" {
		return current
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		errorColor.Println("Not a number, keeping current value")
		return current
	}
	return n
}

func (m *Menu) askBool(ctx context.Context, question string, current bool) bool {
	state := "n"
	if current {
		state = "y"
	}
	answer, err := m.ask(ctx, fmt.Sprintf("%s (y/n) [%s]: ", question, state))
	if err != nil || answer == "" {
		return current
	}
	return answer == "y" || answer == "Y"
}
