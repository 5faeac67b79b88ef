// Package viewer is the terminal client a recipient uses to open a card.
// It fetches the card from the service, then walks the six-screen flow,
// remembering the current screen per card id in a local SQLite database so a
// restart resumes where the viewer left off.
package viewer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vkarpenko/valentine/internal/common"
	"github.com/vkarpenko/valentine/internal/viewer/api"
	"github.com/vkarpenko/valentine/internal/viewer/config"
	"github.com/vkarpenko/valentine/internal/viewer/navstate"
)

// cardFetcher is the slice of api.Client the app needs.
type cardFetcher interface {
	GetCard(ctx context.Context, id string) (*api.CardView, error)
}

type App struct {
	config  *config.Config
	fetcher cardFetcher
	store   navstate.Store
	in      *bufio.Scanner
	out     io.Writer
}

// NewApp wires the viewer against the configured card service and the local
// navigation-state database.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out io.Writer) (*App, error) {

	db, err := InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	return &App{
		config:  c,
		fetcher: api.NewClient(c.ServerBaseURL, c.RequestTimeout),
		store:   navstate.NewSQLiteStore(db),
		in:      bufio.NewScanner(in),
		out:     out,
	}, nil
}

// events maps viewer input tokens to state-machine events. Whether an event
// applies on the current screen is the machine's call, not the parser's.
var events = map[string]navstate.Event{
	"yes":     navstate.EventYes,
	"no":      navstate.EventNo,
	"retry":   navstate.EventRetry,
	"photos":  navstate.EventOpenPhotos,
	"letter":  navstate.EventOpenLetter,
	"flowers": navstate.EventOpenFlowers,
	"relive":  navstate.EventRelive,
	"back":    navstate.EventBack,
}

// Run loads the card and enters the navigation loop. Until the card data is
// loaded no screen is rendered and no transition is accepted; a load failure
// shows an error affordance instead.
func (a *App) Run(ctx context.Context, cardID string) error {

	fmt.Fprintln(a.out, "Loading your valentine...")

	card, err := a.fetcher.GetCard(ctx, cardID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Fprintln(a.out, "Valentine not found. Maybe create a new one for someone you love?")
			return err
		}
		fmt.Fprintln(a.out, "Could not load this valentine, please try again later.")
		return err
	}

	screen := a.restoreScreen(ctx, cardID)

	for {
		renderScreen(a.out, card, screen)
		fmt.Fprintf(a.out, "\n[%s] > ", screen)

		if !a.in.Scan() {
			return nil
		}

		input := strings.ToLower(strings.TrimSpace(a.in.Text()))
		switch input {
		case "":
			continue
		case "help":
			fmt.Fprintln(a.out, "Commands: yes, no, retry, photos, letter, flowers, relive, back, reset, quit")
			continue
		case "exit", "quit", "q":
			return nil
		case "reset":
			if err := a.store.Clear(ctx, cardID); err != nil {
				fmt.Fprintln(a.out, "could not reset:", err)
				continue
			}
			screen = navstate.InitialScreen
			continue
		}

		event, ok := events[input]
		if !ok {
			fmt.Fprintf(a.out, "Unknown command %q (type 'help')\n", input)
			continue
		}

		next, ok := navstate.Transition(screen, event)
		if !ok {
			fmt.Fprintln(a.out, "That does nothing here.")
			continue
		}

		screen = next
		if err := a.store.Set(ctx, cardID, screen); err != nil {
			// Navigation still works this session, only resume is affected.
			fmt.Fprintln(a.out, "warning: could not save position:", err)
		}
	}
}

// restoreScreen returns the saved screen for cardID, falling back to the
// initial screen when nothing (or something unrecognizable) is stored.
func (a *App) restoreScreen(ctx context.Context, cardID string) navstate.Screen {
	saved, err := a.store.Get(ctx, cardID)
	if err != nil || !navstate.ValidScreen(saved) {
		return navstate.InitialScreen
	}
	return saved
}
