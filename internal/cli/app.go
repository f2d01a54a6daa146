package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/visadesk/internal/logging"
	"github.com/dmitrijs2005/visadesk/internal/models"
	"github.com/dmitrijs2005/visadesk/internal/records"
)

type App struct {
	store  *records.Store
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
	user   *models.SessionUser
}

// NewApp builds a CLI over store reading commands from in.
func NewApp(store *records.Store, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{store: store, log: log, reader: bufio.NewReader(in), out: out}
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) setUser(u models.SessionUser) {
	a.user = &u
}

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s) ", a.user.Name)
}

// Run resumes the stored session, if any, and blocks in the REPL until the
// user exits or input ends.
func (a *App) Run(ctx context.Context) {
	if u, err := a.store.CurrentUser(ctx); err == nil {
		a.setUser(u)
		a.log.Info(ctx, "session resumed", "user_id", u.ID)
	}

	fmt.Fprintln(a.out, "Welcome to visadesk (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(lineReader{a.reader}))
}

// lineReader hands out at most one line per Read, so a Scanner on top of it
// never buffers input that a prompt is about to read.
type lineReader struct {
	r *bufio.Reader
}

func (l lineReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		b, err := l.r.ReadByte()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		p[n] = b
		n++
		if b == '\n' {
			break
		}
	}
	return n, nil
}
