package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	AddIncome(ctx context.Context) error
	Accounts(ctx context.Context) error
	Count(ctx context.Context) error
	Forgot(ctx context.Context) error
	Ping(ctx context.Context) error
}

// runREPL reads a command per line and dispatches to methods on a. Unknown
// commands are reported back to the user. The loop exits on EOF or when the
// user types "exit" or "quit".
//
// Commands before login: help, register, login, forgot, ping, exit.
// Commands after login: help, income, accounts, count, ping, logout, exit.
//
// Errors returned by command handlers are ignored here; handlers print
// their own messages. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "taka> %s > ", statusFn())

		line, err := reader.ReadString('\n')
		cmd := strings.TrimSpace(line)
		if cmd == "" {
			if err != nil {
				return
			}
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, "Available commands: income, accounts, count, ping, logout, exit")
			} else {
				fmt.Fprintln(out, "Available commands: register, login, forgot, ping, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "income":
			_ = a.AddIncome(ctx)

		case "accounts":
			_ = a.Accounts(ctx)

		case "count":
			_ = a.Count(ctx)

		case "forgot":
			_ = a.Forgot(ctx)

		case "ping":
			_ = a.Ping(ctx)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
