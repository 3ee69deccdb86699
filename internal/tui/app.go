package tui

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/venuesync/venuesync/pkg/catalog"
)

// Player is the playback surface the quiz needs. Satisfied by
// catalog.PlayerService.
type Player interface {
	ActiveDevice(ctx context.Context) (*catalog.Device, error)
	Play(ctx context.Context, uris []string, deviceID string) error
	Resume(ctx context.Context, deviceID string) error
	Pause(ctx context.Context, deviceID string) error
	Seek(ctx context.Context, positionMS int, deviceID string) error
}

// QuizTrack is one playable question: a track plus the provenance shown
// when the answer is revealed.
type QuizTrack struct {
	ID         string
	URI        string
	Name       string
	ArtistName string
	ShowTitle  string
	DurationMS int
}

// Config holds quiz options.
type Config struct {
	// RandomStart seeks each track to a random position between 10%
	// and 75% of its duration so the intro doesn't give it away.
	RandomStart bool
}

// App is the song-quiz TUI. It deals tracks from a shuffled deck,
// plays them on the user's active device, and reveals the answer on
// demand.
type App struct {
	app      *tview.Application
	question *tview.TextView
	score    *tview.TextView
	history  *tview.TextView
	status   *tview.TextView

	config Config
	player Player

	// Mutex protects quiz state shared between the key handler and
	// the playback goroutines.
	mu sync.Mutex

	deck     []QuizTrack
	deckPos  int
	current  *QuizTrack
	revealed bool
	paused   bool
	played   int
	deviceID string
	lastErr  error

	cancelFunc context.CancelFunc
}

// New creates a quiz over the given tracks. The deck is shuffled once
// up front and reshuffled each time it runs out.
func New(tracks []QuizTrack, player Player, cfg Config) *App {
	a := &App{
		app:    tview.NewApplication(),
		config: cfg,
		player: player,
		deck:   append([]QuizTrack(nil), tracks...),
	}
	a.shuffle()
	a.setupUI()
	return a
}

// shuffle reorders the deck and resets the deal position.
// Must be called with a.mu held (or before the app starts).
func (a *App) shuffle() {
	rand.Shuffle(len(a.deck), func(i, j int) {
		a.deck[i], a.deck[j] = a.deck[j], a.deck[i]
	})
	a.deckPos = 0
}

// setupUI creates the UI layout
func (a *App) setupUI() {
	a.question = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	a.question.SetBorder(true).
		SetTitle(" Song Quiz ").
		SetTitleAlign(tview.AlignLeft)

	a.score = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	a.score.SetBorder(true).
		SetTitle(" Round ").
		SetTitleAlign(tview.AlignLeft)

	a.history = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	a.history.SetBorder(true).
		SetTitle(" Played ").
		SetTitleAlign(tview.AlignLeft)

	a.status = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[gray]n:next  space:reveal  p:pause/resume  q:quit[-]")

	bottomRow := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.score, 0, 1, false).
		AddItem(a.history, 0, 2, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.question, 0, 3, false).
		AddItem(bottomRow, 8, 1, false).
		AddItem(a.status, 1, 1, false)

	a.app.SetInputCapture(a.handleKeyEvent)
	a.app.SetRoot(flex, true)
}

// handleKeyEvent processes keyboard input
func (a *App) handleKeyEvent(event *tcell.EventKey) *tcell.EventKey {
	switch event.Rune() {
	case 'q', 'Q':
		a.Stop()
		return nil
	case 'n', 'N':
		go a.nextTrack()
		return nil
	case ' ':
		a.mu.Lock()
		if a.current != nil {
			a.revealed = !a.revealed
		}
		a.mu.Unlock()
		// Redraw must not run on the event loop: QueueUpdateDraw blocks
		// until the loop services it, and the loop is inside this handler.
		go a.refresh()
		return nil
	case 'p', 'P':
		go a.togglePause()
		return nil
	}
	return event
}

// Run starts the quiz: it resolves the active device, deals the first
// track, and hands control to the key handler.
func (a *App) Run(ctx context.Context) error {
	if len(a.deck) == 0 {
		return fmt.Errorf("no tracks to quiz on")
	}

	ctx, a.cancelFunc = context.WithCancel(ctx)
	defer a.cancelFunc()

	deviceCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	device, err := a.player.ActiveDevice(deviceCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("no playback device: %w (open the player app on a device and retry)", err)
	}

	a.mu.Lock()
	a.deviceID = device.ID
	a.mu.Unlock()

	go a.nextTrack()

	if err := a.app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// nextTrack deals the next card from the deck and starts playback.
// Runs on its own goroutine because the random-start sequence sleeps
// while the track loads.
func (a *App) nextTrack() {
	a.mu.Lock()
	if a.deckPos >= len(a.deck) {
		a.shuffle()
	}
	track := a.deck[a.deckPos]
	a.deckPos++
	a.current = &track
	a.revealed = false
	a.paused = false
	a.played++
	deviceID := a.deviceID
	a.mu.Unlock()

	a.refresh()

	err := a.startPlayback(track, deviceID)

	a.mu.Lock()
	a.lastErr = err
	a.mu.Unlock()
	a.refresh()
}

// startPlayback plays a track, optionally seeking to a random position
// first. The pause before seeking keeps the intro from playing while
// the track loads.
func (a *App) startPlayback(track QuizTrack, deviceID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := a.player.Play(ctx, []string{track.URI}, deviceID); err != nil {
		return err
	}

	if !a.config.RandomStart || track.DurationMS <= 0 {
		return nil
	}

	if err := a.player.Pause(ctx, deviceID); err != nil {
		return err
	}

	// Give the device a moment to load the track before seeking.
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Second):
	}

	minPos := track.DurationMS * 10 / 100
	maxPos := track.DurationMS * 75 / 100
	position := minPos
	if maxPos > minPos {
		position += rand.Intn(maxPos - minPos)
	}

	if err := a.player.Seek(ctx, position, deviceID); err != nil {
		return err
	}
	return a.player.Resume(ctx, deviceID)
}

// togglePause flips playback between paused and playing.
func (a *App) togglePause() {
	a.mu.Lock()
	deviceID := a.deviceID
	paused := a.paused
	a.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var err error
	if paused {
		err = a.player.Resume(ctx, deviceID)
	} else {
		err = a.player.Pause(ctx, deviceID)
	}

	a.mu.Lock()
	if err == nil {
		a.paused = !paused
	}
	a.lastErr = err
	a.mu.Unlock()
	a.refresh()
}

// refresh redraws all panels from the current state.
func (a *App) refresh() {
	a.app.QueueUpdateDraw(func() {
		a.mu.Lock()
		defer a.mu.Unlock()

		a.question.SetText(a.questionText())
		a.score.SetText(a.scoreText())
		a.history.SetText(a.historyText())
	})
}

// questionText renders the main panel. Must be called with a.mu held.
func (a *App) questionText() string {
	if a.current == nil {
		return "\n\n[gray]Press n to start[-]"
	}

	var sb strings.Builder
	sb.WriteString("\n")
	if a.revealed {
		sb.WriteString(fmt.Sprintf("[white::b]%s[-:-:-]\n", tview.Escape(a.current.Name)))
		sb.WriteString(fmt.Sprintf("[yellow]%s[-]\n", tview.Escape(a.current.ArtistName)))
		sb.WriteString(fmt.Sprintf("[gray]playing %s[-]", tview.Escape(a.current.ShowTitle)))
	} else {
		sb.WriteString("[white::b]???[-:-:-]\n")
		sb.WriteString("[gray]Press space to reveal[-]")
	}

	stateIcon := "[green]▶[-]"
	if a.paused {
		stateIcon = "[yellow]⏸[-]"
	}
	sb.WriteString(fmt.Sprintf("\n\n%s", stateIcon))

	if a.lastErr != nil {
		sb.WriteString(fmt.Sprintf("\n\n[red]%s[-]", tview.Escape(a.lastErr.Error())))
	}
	return sb.String()
}

// scoreText renders the round panel. Must be called with a.mu held.
func (a *App) scoreText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Track: %d\n", a.played))
	sb.WriteString(fmt.Sprintf("Deck: %d\n", len(a.deck)))
	mode := "beginning"
	if a.config.RandomStart {
		mode = "random start"
	}
	sb.WriteString(fmt.Sprintf("Mode: %s", mode))
	return sb.String()
}

// historyText renders the already-dealt cards, most recent first, with
// the current (unrevealed) track masked. Must be called with a.mu held.
func (a *App) historyText() string {
	if a.deckPos == 0 {
		return "[gray]Nothing played yet[-]"
	}

	var sb strings.Builder
	shown := 0
	for i := a.deckPos - 1; i >= 0 && shown < 5; i-- {
		if shown > 0 {
			sb.WriteString("\n")
		}
		track := a.deck[i]
		if i == a.deckPos-1 && !a.revealed {
			sb.WriteString("[gray]???[-]")
		} else {
			sb.WriteString(fmt.Sprintf("[white]%s[-] [gray]%s[-]",
				tview.Escape(track.Name), tview.Escape(track.ArtistName)))
		}
		shown++
	}
	return sb.String()
}

// Stop stops the TUI application
func (a *App) Stop() {
	if a.cancelFunc != nil {
		a.cancelFunc()
	}
	a.app.Stop()
}
