package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	if u := a.session.User(); u != nil {
		return promptStyle.Render(fmt.Sprintf("(%s)", u.Email))
	}
	return promptStyle.Render(fmt.Sprintf("(%s)", a.session.Status()))
}

// Root starts the interactive loop. Blocks until EOF or an exit command.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to the account CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
