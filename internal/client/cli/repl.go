package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Refresh(ctx context.Context, notBefore string) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
}

// runREPL reads commands from scanner and dispatches them to a until EOF or
// "exit"/"quit".
//
// Commands:
//
//	help                  show available commands
//	login                 exchange username/password for tokens
//	refresh [notBefore]   refresh if notBefore is past the cached expiry
//	logout                wipe the local cache and revoke tokens
//	status                show the cached auth state
//	exit | quit           leave the program
//
// Handler errors are reported by the handlers themselves; the loop keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("tk %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: refresh [notBefore], status, logout, exit")
			} else {
				printlnFn("Available commands: login, status, logout, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "refresh":
			notBefore := ""
			if len(args) > 0 {
				notBefore = args[0]
			}
			_ = a.Refresh(ctx, notBefore)

		case "logout":
			_ = a.Logout(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
