package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/matheus3301/tgclone/internal/bus"
	"github.com/matheus3301/tgclone/internal/config"
	"github.com/matheus3301/tgclone/internal/contacts"
	"github.com/matheus3301/tgclone/internal/flow"
	"github.com/matheus3301/tgclone/internal/i18n"
	"github.com/matheus3301/tgclone/internal/logging"
	"github.com/matheus3301/tgclone/internal/prefs"
	"github.com/matheus3301/tgclone/internal/profile"
	"github.com/matheus3301/tgclone/internal/session"
	"github.com/matheus3301/tgclone/internal/signup"
	"github.com/matheus3301/tgclone/internal/store"
	"github.com/matheus3301/tgclone/internal/tui"
	"github.com/matheus3301/tgclone/internal/tui/client"
	"github.com/matheus3301/tgclone/internal/tui/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	sessionFlag := flag.String("session", "", "session name (overrides config default)")
	debugFlag := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	cfg, err := config.Resolve(session.ConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	sessionName := session.Resolve(*sessionFlag)
	if err := session.ValidateName(sessionName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	level := zapcore.InfoLevel
	if *debugFlag {
		level = zapcore.DebugLevel
	}
	logger, err := logging.New(session.LogPath(sessionName, "tgc"), sessionName, logging.Options{Level: level})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	b := bus.New()
	kv, closeKV := openPrefs(sessionName, logger)
	defer closeKV()
	ps := prefs.Open(kv, b, logger.Named("prefs"))
	if ps.Degraded() {
		logger.Warn("preferences will not persist this session")
	}

	bundle, err := i18n.Default()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: load translations: %v\n", err)
		os.Exit(1)
	}
	tr := i18n.New(bundle, ps.Language())

	dir := contacts.NewDirectory(b)
	dir.OnSelect(func(id string) {
		logger.Debug("contact selected", zap.String("contact_id", id))
	})

	var (
		svc contacts.Service
		reg signup.Registrar
	)
	switch cfg.Service {
	case config.ServiceRemote:
		c, err := connectDaemon(sessionName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = c.Close() }()
		c.SetLimit(cfg.SearchLimit)
		svc, reg = c, c
	default:
		svc = contacts.NewMockService(cfg.MockDelay)
		reg = signup.MockRegistrar{Delay: signup.DefaultMockDelay}
	}
	logger.Info("starting", zap.String("service", cfg.Service))

	vm := model.NewViewModel(model.Deps{
		Session:    sessionName,
		Prefs:      ps,
		Directory:  dir,
		Flow:       flow.New(svc, dir, b, logger.Named("flow"), cfg.SearchTimeout),
		Registrar:  reg,
		Profile:    profile.NewEditor(profile.New("", "")),
		Translator: tr,
		Logger:     logger,
	})

	app := tui.NewApp(vm, b, logger)
	if err := app.Run(); err != nil {
		logger.Error("tui exited", zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// openPrefs opens the session's preference database. When it cannot be
// opened the UI still runs on in-memory preferences.
func openPrefs(sessionName string, logger *zap.Logger) (prefs.KV, func()) {
	db, _, err := store.OpenMigrated(session.PrefsDBPath(sessionName), store.PrefsSchema)
	if err != nil {
		logger.Warn("preferences unavailable, using memory", zap.Error(err))
		return prefs.NewMemory(), func() {}
	}
	return db, func() { _ = db.Close() }
}

// connectDaemon dials the session's daemon, starting it first if it is not
// answering health checks.
func connectDaemon(sessionName string) (*client.Client, error) {
	socketPath := session.SocketPath(sessionName)
	c, err := client.New(socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect to daemon: %w", err)
	}

	if probe(c) {
		return c, nil
	}
	fmt.Fprintf(os.Stderr, "daemon not running for session %q, starting...\n", sessionName)
	if err := startDaemon(sessionName); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("start daemon: %w", err)
	}
	if !waitForDaemon(c, 10*time.Second) {
		_ = c.Close()
		return nil, fmt.Errorf("daemon did not become ready")
	}
	return c, nil
}

func probe(c *client.Client) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return c.Probe(ctx) == nil
}

func startDaemon(sessionName string) error {
	executable, err := os.Executable()
	if err != nil {
		return err
	}
	tgcd := filepath.Join(filepath.Dir(executable), "tgcd")
	if _, err := os.Stat(tgcd); err != nil {
		tgcd = "tgcd"
	}

	cmd := exec.Command(tgcd, "--session", sessionName)
	// Inherit stderr so daemon startup errors are visible.
	cmd.Stderr = os.Stderr
	return cmd.Start()
}

// waitForDaemon polls the health service until it reports serving.
func waitForDaemon(c *client.Client, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if probe(c) {
			return true
		}
		time.Sleep(300 * time.Millisecond)
	}
	return false
}
