package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"taskboard/internal/config"
	"taskboard/internal/logging"
	"taskboard/internal/notify"
	"taskboard/internal/store"
	"taskboard/internal/tracker"
)

// app carries the state shared by every command for one invocation.
type app struct {
	v          *viper.Viper
	configPath string

	cfg     config.Config
	logger  *slog.Logger
	repo    store.Repository
	tracker *tracker.Tracker
}

func newApp() *app {
	return &app{v: config.NewViper()}
}

// addGlobalFlags adds persistent flags that apply to all commands and binds
// them to their config keys.
func (a *app) addGlobalFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()

	flags.StringVar(&a.configPath, "config", "", "Config file path")
	flags.StringP("db", "d", "", "Storage path (database or snapshot file)")
	flags.String("backend", "", "Storage backend (sqlite|file|memory)")
	flags.String("log-level", "", "Log level (debug|info|warn|error)")
	flags.String("locale", "", "Locale used to sort titles, e.g. en or es")

	bindings := map[string]string{
		"storage.path":    "db",
		"storage.backend": "backend",
		"log.level":       "log-level",
		"locale":          "locale",
	}
	for key, flag := range bindings {
		_ = a.v.BindPFlag(key, flags.Lookup(flag))
	}
}

// init loads configuration and sets up logging. The store is opened lazily
// by the commands that need it.
func (a *app) init(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}

	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err = config.ApplyOverrides(cfg, a.v)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logging.Setup(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	a.logger.Debug("config loaded", "path", path, "backend", cfg.Storage.Backend)
	return nil
}

// openRepository opens the configured storage backend.
func (a *app) openRepository() (store.Repository, error) {
	if a.repo != nil {
		return a.repo, nil
	}

	var (
		repo store.Repository
		err  error
	)
	switch a.cfg.Storage.Backend {
	case config.BackendSQLite:
		// Ensure data directory exists
		if err := os.MkdirAll(filepath.Dir(a.cfg.Storage.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		repo, err = store.NewSQLiteRepository(a.cfg.Storage.Path, a.cfg.Storage.Key)
	case config.BackendFile:
		repo, err = store.NewFileRepository(a.cfg.Storage.Path)
	case config.BackendMemory:
		repo = store.NewMemoryRepository()
	default:
		err = fmt.Errorf("unknown storage backend %q", a.cfg.Storage.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	a.repo = repo
	return repo, nil
}

// openTracker hydrates the tracker, delivering alerts to p.
func (a *app) openTracker(ctx context.Context, p notify.Presenter) (*tracker.Tracker, error) {
	repo, err := a.openRepository()
	if err != nil {
		return nil, err
	}

	locale, err := a.cfg.LocaleTag()
	if err != nil {
		return nil, err
	}

	t, err := tracker.Open(ctx, repo,
		tracker.WithLocale(locale),
		tracker.WithLogger(a.logger),
		tracker.WithEventHandler(notify.New(p, a.logger)))
	if err != nil {
		return nil, err
	}

	a.tracker = t
	return t, nil
}

// close releases the store. The tracker owns the repository once opened.
func (a *app) close() error {
	switch {
	case a.tracker != nil:
		return a.tracker.Close()
	case a.repo != nil:
		return a.repo.Close()
	}
	return nil
}
