// Package cli implements the interactive console: the screens of the app
// rendered as REPL commands over the injected session store.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/NigelSimon20/adnab-qr-code-app/internal/session"
)

// App binds the REPL commands to a session store.
type App struct {
	store  *session.Store
	reader *bufio.Reader
	out    io.Writer
	now    func() time.Time
}

// NewApp builds a console over the given store, reading from in and writing
// to out.
func NewApp(store *session.Store, in io.Reader, out io.Writer) *App {
	return &App{
		store:  store,
		reader: bufio.NewReader(in),
		out:    out,
		now:    time.Now,
	}
}

// NewStdioApp builds a console on the process stdio.
func NewStdioApp(store *session.Store) *App {
	return &App{
		store:  store,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		now:    time.Now,
	}
}

// Run hydrates the session and enters the REPL. The prompt is the auth gate:
// nothing decisive is rendered until hydration finishes, then the status
// routes between the signed-out and signed-in command sets.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "adnab console (type 'help' for commands)")
	a.store.Initialize(ctx)

	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isSignedIn() bool {
	return a.store.Snapshot().User != nil
}

// status renders the prompt segment: the auth gate's three states.
func (a *App) status() string {
	snap := a.store.Snapshot()
	switch {
	case snap.IsLoading:
		return "..."
	case snap.User == nil:
		return "[signed out]"
	default:
		unread := snap.User.UnreadCount()
		if unread > 0 {
			return fmt.Sprintf("[%s, %d unread]", snap.User.Name, unread)
		}
		return fmt.Sprintf("[%s]", snap.User.Name)
	}
}
