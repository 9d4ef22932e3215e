package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"

	"github.com/dmitrijs2005/accountcli/internal/client/api"
	"github.com/dmitrijs2005/accountcli/internal/client/config"
	"github.com/dmitrijs2005/accountcli/internal/client/models"
	"github.com/dmitrijs2005/accountcli/internal/client/profile"
	"github.com/dmitrijs2005/accountcli/internal/client/session"
	"github.com/dmitrijs2005/accountcli/internal/client/storage"
	"github.com/dmitrijs2005/accountcli/internal/logging"
)

// App owns the wired-up client: local database, API client, and the two
// state stores the screens consume.
type App struct {
	config  *config.Config
	db      *sql.DB
	session *session.Store
	profile *profile.Store
	store   *storage.Store
	log     logging.Logger
	reader  *bufio.Reader
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := storage.InitDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "failed to initialize local database", "error", err)
		return nil, err
	}

	store := storage.NewStore(db)
	client := api.NewHTTPClient(cfg.ServerEndpointURL, cfg.RequestTimeout, store, log)
	sess := session.NewStore(client, store, log)
	prof := profile.NewStore(sess, store, log)

	// Reconcile the profile whenever the session commits a user change.
	sess.OnUserChange(func(*models.User) {
		prof.Refresh(context.Background())
	})

	return &App{
		config:  cfg,
		db:      db,
		session: sess,
		profile: prof,
		store:   store,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run bootstraps the session, resolves the initial profile, and enters the
// REPL. Blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	a.session.Bootstrap(ctx)
	a.profile.Refresh(ctx)

	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.session.Status() == session.StatusAuthenticated
}
