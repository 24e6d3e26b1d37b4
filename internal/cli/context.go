package cli

import (
	"errors"

	"github.com/mrz1836/pnlink/internal/browser"
	"github.com/mrz1836/pnlink/internal/clipboard"
	"github.com/mrz1836/pnlink/internal/config"
	"github.com/mrz1836/pnlink/internal/kvstore"
	"github.com/mrz1836/pnlink/internal/link"
	"github.com/mrz1836/pnlink/internal/metrics"
	"github.com/mrz1836/pnlink/internal/output"
	"github.com/mrz1836/pnlink/internal/service/finder"
)

// Desktop integration constructors, replaced in tests.
//
//nolint:gochecknoglobals // Test seams for external programs
var (
	newClipboardFn = func() *clipboard.Copier { return clipboard.New() }
	newBrowserFn   = func() *browser.Opener { return browser.New() }
)

// CommandContext holds dependencies for CLI commands.
type CommandContext struct {
	Config    *config.Config
	Logger    *config.Logger
	Formatter *output.Formatter
	Messenger *output.Messenger
	Store     kvstore.Store
	Clipboard *clipboard.Copier
	Browser   *browser.Opener

	finder *finder.Service
}

// NewCommandContext creates a context with the given dependencies.
func NewCommandContext(
	cfg *config.Config,
	logger *config.Logger,
	formatter *output.Formatter,
) *CommandContext {
	return &CommandContext{
		Config:    cfg,
		Logger:    logger,
		Formatter: formatter,
		Messenger: output.NewMessenger(formatter.Writer(), formatter.Writer()),
		Clipboard: clipboard.New(),
		Browser:   browser.New(),
	}
}

// WithStore sets the key-value store instead of opening the configured one.
func (c *CommandContext) WithStore(s kvstore.Store) *CommandContext {
	c.Store = s
	return c
}

// WithMessenger sets the status line writer.
func (c *CommandContext) WithMessenger(m *output.Messenger) *CommandContext {
	c.Messenger = m
	return c
}

// WithClipboard sets the clipboard copier.
func (c *CommandContext) WithClipboard(cp *clipboard.Copier) *CommandContext {
	c.Clipboard = cp
	return c
}

// WithBrowser sets the browser opener.
func (c *CommandContext) WithBrowser(b *browser.Opener) *CommandContext {
	c.Browser = b
	return c
}

// Finder returns the finder service, opening the store on first use.
// When the configured store cannot be opened the service runs without
// persistence and a warning is printed.
func (c *CommandContext) Finder() *finder.Service {
	if c.finder != nil {
		return c.finder
	}
	if c.Store == nil {
		c.Store = c.openStore()
	}
	c.finder = finder.NewService(&finder.Config{
		Store: c.Store,
		Builder: link.New(
			link.WithBaseURL(c.Config.GetBaseURL()),
			link.WithChain(c.Config.GetChain()),
		),
		HistoryCapacity: c.Config.GetHistoryMax(),
		CheckAddresses:  c.Config.Link.CheckAddresses,
		Logger:          c.Logger,
		Metrics:         metrics.Global,
	})
	return c.finder
}

func (c *CommandContext) openStore() kvstore.Store {
	backend := c.Config.GetStorageBackend()
	path := c.Config.StoragePath()

	store, err := kvstore.Open(backend, path)
	switch {
	case err == nil:
		c.Logger.Debug("opened %s store at %s", backend, path)
		return store
	case errors.Is(err, kvstore.ErrCorruptStore) && store != nil:
		c.Logger.Error("%v", err)
		c.Messenger.Warn("saved data was unreadable and has been reset: %v", err)
		return store
	default:
		c.Logger.Error("opening %s store at %s: %v", backend, path, err)
		c.Messenger.Warn("storage unavailable, nothing will be saved: %v", err)
		return kvstore.NopStore{}
	}
}

// Close releases the store.
func (c *CommandContext) Close() {
	if c.Store == nil {
		return
	}
	if err := c.Store.Close(); err != nil {
		c.Logger.Error("closing store: %v", err)
	}
	c.Store = nil
	c.finder = nil
}
