package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the minimal command surface the REPL dispatches to. The real
// App satisfies it; tests can provide a lightweight stub.
type execIface interface {
	isSignedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ShowQR(ctx context.Context) error
	Regenerate(ctx context.Context) error
	Inbox(ctx context.Context) error
	Read(ctx context.Context, id string) error
}

// runREPL reads commands line by line and dispatches them. It shares the
// buffered reader with the command handlers (which prompt for follow-up
// input), so it must not read ahead. The prompt comes from statusFn on every
// iteration and always reflects the latest snapshot. The loop exits on EOF
// or "exit"/"quit".
//
// Commands while signed out: login, help, exit. While signed in: qr, regen,
// inbox, read <id>, logout, help, exit. Handler errors are printed, never
// fatal: the loop stays usable.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "adnab %s > ", statusFn())
		line, err := reader.ReadString('\n')
		eof := err != nil
		if eof && strings.TrimSpace(line) == "" {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			if eof {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isSignedIn() {
				fmt.Fprintln(w, "Available commands: qr, regen, inbox, read <id>, logout, exit")
			} else {
				fmt.Fprintln(w, "Available commands: login, exit")
			}

		case "login":
			if err := a.Login(ctx); err != nil {
				fmt.Fprintln(w, "login failed:", err)
			}

		case "logout":
			if err := a.Logout(ctx); err != nil {
				fmt.Fprintln(w, "logout failed:", err)
			}

		case "qr":
			if err := a.ShowQR(ctx); err != nil {
				fmt.Fprintln(w, "error:", err)
			}

		case "regen":
			if err := a.Regenerate(ctx); err != nil {
				fmt.Fprintln(w, "error:", err)
			}

		case "inbox", "list":
			if err := a.Inbox(ctx); err != nil {
				fmt.Fprintln(w, "error:", err)
			}

		case "read":
			if len(args) == 0 {
				fmt.Fprintln(w, "Usage: read <id>")
			} else if err := a.Read(ctx, args[0]); err != nil {
				fmt.Fprintln(w, "error:", err)
			}

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if eof {
			return
		}
	}
}
