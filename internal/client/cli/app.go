package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/cyberdefense/internal/client/config"
	"github.com/dmitrijs2005/cyberdefense/internal/client/models"
	"github.com/dmitrijs2005/cyberdefense/internal/client/services"
	"github.com/dmitrijs2005/cyberdefense/internal/client/transition"
	"github.com/dmitrijs2005/cyberdefense/internal/common"
	"github.com/dmitrijs2005/cyberdefense/internal/logging"
)

type App struct {
	config    *config.Config
	service   services.AccountService
	scheduler *transition.Scheduler
	log       logging.Logger
	reader    *bufio.Reader
	out       io.Writer

	mu      sync.Mutex
	view    services.View
	session *models.Session
	// cancelPending drops the scheduled view switch, if any.
	cancelPending func()
	// transitions counts view changes; a scheduled switch only applies if
	// nothing changed the view since it was scheduled.
	transitions uint64
}

func NewApp(c *config.Config, svc services.AccountService, log logging.Logger) *App {
	return &App{
		config:    c,
		service:   svc,
		scheduler: transition.NewScheduler(),
		log:       log,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		view:      services.ViewLanding,
	}
}

// Run restores a persisted session, if any, and blocks in the REPL until the
// user exits or input ends. Pending view switches are cancelled on return.
func (a *App) Run(ctx context.Context) {
	defer a.scheduler.Stop()

	a.log.Debug(ctx, "starting",
		"backend", a.config.StoreBackend,
		"password_mode", a.config.PasswordMode,
		"redirect_delay", a.config.RedirectDelay)

	printlnFn("Welcome to the CyberDefense account vault (type 'help' for commands)")
	a.restoreSession(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) restoreSession(ctx context.Context) {
	s, err := a.service.CurrentSession(ctx)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return
	case err != nil:
		a.log.Warn(ctx, "could not restore session", "error", err)
		return
	}

	a.mu.Lock()
	a.session = s
	a.view = services.ViewDashboard
	a.mu.Unlock()
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session != nil
}

func (a *App) currentView() services.View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

// getStatus renders the prompt status: the view, plus the email when signed in.
func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session != nil {
		return string(a.view) + " " + a.session.Email
	}
	return string(a.view)
}

// setView switches immediately and drops any pending switch.
func (a *App) setView(v services.View) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.dropPendingLocked()
	a.transitions++
	a.view = v
}

// scheduleView switches to v after delay. A later setView or scheduleView
// supersedes it.
func (a *App) scheduleView(delay time.Duration, v services.View) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.dropPendingLocked()
	a.transitions++
	seq := a.transitions
	a.cancelPending = a.scheduler.Schedule(delay, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.transitions != seq {
			return
		}
		a.view = v
		a.cancelPending = nil
		a.log.Debug(context.Background(), "view switched", "view", v)
	})
}

func (a *App) dropPendingLocked() {
	if a.cancelPending != nil {
		a.cancelPending()
		a.cancelPending = nil
	}
}
