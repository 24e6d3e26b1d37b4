package finder

import (
	"fmt"

	"github.com/mrz1836/pnlink/internal/draft"
	"github.com/mrz1836/pnlink/internal/history"
	"github.com/mrz1836/pnlink/internal/kvstore"
	"github.com/mrz1836/pnlink/internal/link"
	"github.com/mrz1836/pnlink/internal/metrics"
	"github.com/mrz1836/pnlink/internal/wallets"
	pnlerr "github.com/mrz1836/pnlink/pkg/errors"
)

// Config contains dependencies for creating a finder service.
type Config struct {
	Store           kvstore.Store
	Builder         *link.Builder
	HistoryCapacity int
	CheckAddresses  bool
	Logger          LogWriter
	Metrics         *metrics.Metrics
}

// Service runs finder actions against one store.
type Service struct {
	builder *link.Builder
	history *history.Manager
	wallets *wallets.Manager
	draft   *draft.Persistence
	check   bool
	logger  LogWriter
	metrics *metrics.Metrics
}

// NewService creates a finder service and loads persisted state from the store.
// A nil store behaves as if storage were unavailable.
func NewService(cfg *Config) *Service {
	store := cfg.Store
	if store == nil {
		store = kvstore.NopStore{}
	}
	builder := cfg.Builder
	if builder == nil {
		builder = link.New()
	}
	var logger LogWriter = nopLogger{}
	if cfg.Logger != nil {
		logger = cfg.Logger
	}
	m := cfg.Metrics
	if m == nil {
		m = &metrics.Metrics{}
	}

	return &Service{
		builder: builder,
		history: history.New(store, history.WithCapacity(cfg.HistoryCapacity), history.WithLogger(logger)),
		wallets: wallets.New(store, wallets.WithLogger(logger)),
		draft:   draft.New(store),
		check:   cfg.CheckAddresses,
		logger:  logger,
		metrics: m,
	}
}

// History returns the query history manager.
func (s *Service) History() *history.Manager { return s.history }

// Wallets returns the saved wallet manager.
func (s *Service) Wallets() *wallets.Manager { return s.wallets }

// Metrics returns the counters this service records into.
func (s *Service) Metrics() *metrics.Metrics { return s.metrics }

// Draft returns the draft field persistence.
func (s *Service) Draft() *draft.Persistence { return s.draft }

// Link builds the link for a pair without touching draft or history.
func (s *Service) Link(tokenAddress, walletAddress string) (string, error) {
	return s.builder.Build(tokenAddress, walletAddress)
}

// Generate stores the inputs as the current draft, builds the link and, when
// the link is valid, records the pair in history. A validation failure
// records nothing. A failed history write is logged and reported through
// GenerateResult.Recorded; the link is still returned.
func (s *Service) Generate(tokenAddress, walletAddress string) (*GenerateResult, error) {
	if err := s.draft.Set(draft.Fields{TokenAddress: tokenAddress, WalletAddress: walletAddress}); err != nil {
		s.metrics.RecordDraftError()
		s.logger.Warn("draft not saved: %v", err)
	}

	url, err := s.builder.Build(tokenAddress, walletAddress)
	if err != nil {
		s.metrics.RecordLink(0, err)
		return nil, err
	}

	result := &GenerateResult{
		URL:   url,
		Query: history.Query{TokenAddress: tokenAddress, WalletAddress: walletAddress},
	}

	if s.check {
		result.Warnings = link.CheckPair(tokenAddress, walletAddress)
		for _, w := range result.Warnings {
			s.logger.Warn("%s", w)
		}
	}

	s.metrics.RecordLink(len(result.Warnings), nil)

	err = s.history.Record(result.Query)
	s.metrics.RecordHistoryWrite(err)
	if err != nil {
		s.logger.Error("history not saved: %v", err)
		return result, nil
	}
	result.Recorded = true

	s.logger.Debug("generated link for token %s wallet %s", tokenAddress, walletAddress)
	return result, nil
}

// UseHistory copies history entry index (0-based) into the draft and returns it.
func (s *Service) UseHistory(index int) (history.Query, error) {
	q, err := s.history.Get(index)
	if err != nil {
		return history.Query{}, err
	}
	if err := s.draft.Set(draft.Fields{TokenAddress: q.TokenAddress, WalletAddress: q.WalletAddress}); err != nil {
		return q, err
	}
	return q, nil
}

// UseWallet resolves ref as a saved wallet id or nickname and copies its
// address into the draft wallet field.
func (s *Service) UseWallet(ref string) (wallets.SavedWallet, error) {
	w, ok := s.wallets.Find(ref)
	if !ok {
		return wallets.SavedWallet{}, s.walletNotFound(ref)
	}
	if err := s.draft.SetWallet(w.Address); err != nil {
		return w, err
	}
	return w, nil
}

// SaveWallet stores a new wallet.
func (s *Service) SaveWallet(nickname, address string) (wallets.SavedWallet, error) {
	w, err := s.wallets.Save(nickname, address)
	s.metrics.RecordWalletOp(err)
	return w, err
}

// UpdateWallet replaces the nickname and address of the wallet with id.
func (s *Service) UpdateWallet(id, nickname, address string) (bool, error) {
	ok, err := s.wallets.Update(id, nickname, address)
	s.metrics.RecordWalletOp(err)
	return ok, err
}

// DeleteWallet removes the wallet with id.
func (s *Service) DeleteWallet(id string) (bool, error) {
	ok, err := s.wallets.Delete(id)
	s.metrics.RecordWalletOp(err)
	return ok, err
}

// ResolveWallet finds a saved wallet by id or nickname without touching the draft.
func (s *Service) ResolveWallet(ref string) (wallets.SavedWallet, error) {
	w, ok := s.wallets.Find(ref)
	if !ok {
		return wallets.SavedWallet{}, s.walletNotFound(ref)
	}
	return w, nil
}

func (s *Service) walletNotFound(ref string) error {
	err := pnlerr.WithDetails(pnlerr.ErrWalletNotFound, map[string]string{"ref": ref})
	if hint := s.wallets.Suggest(ref); hint != "" {
		return pnlerr.WithSuggestion(err, fmt.Sprintf("did you mean '%s'?", hint))
	}
	return pnlerr.WithSuggestion(err, "list saved wallets with: pnlink wallets list")
}
