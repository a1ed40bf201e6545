package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	s, err := a.cache.Read(context.Background())
	if err != nil {
		return "(?)"
	}
	return fmt.Sprintf("(%s)", s.Status())
}

// Root runs the interactive loop on stdin until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to tokenkeeper CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}
