// Package resolve merges the registry, wrapper, and registrar views of an ENS
// name into one classified ownership answer, optionally cross-checked against
// the off-chain index.
package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"ensowner/internal/chain"
	"ensowner/internal/name"
	"ensowner/internal/owner"
	"ensowner/internal/resolve/metrics"
	"ensowner/internal/subgraph"
)

// Options controls one resolution. The zero value is the fast path: chain
// reads only, no index cross-check.
type Options struct {
	// CrossCheck queries the off-chain index alongside the chain reads and
	// classifies any disagreement.
	CrossCheck bool
}

// Service resolves current ownership of a name.
type Service struct {
	chain          chain.Reader
	index          subgraph.Client
	wrapperAddr    common.Address
	suffix         string
	registrarGrace uint64
	wrapperGrace   uint64
	injector       Injector
	logger         *slog.Logger
	metrics        *metrics.Metrics
	tracer         trace.Tracer
}

type Option func(*Service)

// WithIndex enables cross-checking against the given indexed-store client.
func WithIndex(client subgraph.Client) Option {
	return func(s *Service) { s.index = client }
}

// WithInjector installs a debug error injector. Defaults to no injection.
func WithInjector(inj Injector) Option {
	return func(s *Service) { s.injector = inj }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithSuffix overrides the managed top-level suffix, "eth" by default.
func WithSuffix(suffix string) Option {
	return func(s *Service) { s.suffix = suffix }
}

// WithRegistrarGrace overrides the registrar's post-expiry grace window.
func WithRegistrarGrace(seconds uint64) Option {
	return func(s *Service) { s.registrarGrace = seconds }
}

// WithWrapperGrace sets a grace window for wrapper expiries, zero by default.
func WithWrapperGrace(seconds uint64) Option {
	return func(s *Service) { s.wrapperGrace = seconds }
}

// New constructs the resolver. wrapperAddr is the wrapper contract's own
// address; a registry owner equal to it means control was delegated to the
// wrapper and the effective owner is the token holder.
func New(reader chain.Reader, wrapperAddr common.Address, opts ...Option) (*Service, error) {
	if reader == nil {
		return nil, fmt.Errorf("chain reader is required")
	}
	s := &Service{
		chain:          reader,
		wrapperAddr:    wrapperAddr,
		suffix:         name.Suffix,
		registrarGrace: RegistrarGracePeriod,
		injector:       NopInjector{},
		tracer:         otel.Tracer("ensowner/resolve"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.injector == nil {
		s.injector = NopInjector{}
	}
	return s, nil
}

// ResolveOwner resolves current ownership of rawName. A nil Owner with a nil
// error means the name is unregistered at every queried layer. Classified
// errors carry the best-known on-chain value and the reference timestamp;
// transport failures are returned unclassified.
func (s *Service) ResolveOwner(ctx context.Context, rawName string, opts Options) (owner.Owner, error) {
	ctx, span := s.tracer.Start(ctx, "resolve.owner", trace.WithAttributes(
		attribute.String("ens.name", rawName),
		attribute.Bool("ens.cross_check", opts.CrossCheck),
	))
	defer span.End()
	start := time.Now()

	n := name.Parse(rawName)
	if n.LabelCount() == 0 {
		return nil, fmt.Errorf("name is required")
	}

	// Read the injected kind up front so its effect cannot depend on timing
	// relative to other resolutions in flight.
	forced := s.injector.ForcedKind()

	view, err := s.chain.Pin(ctx)
	if err != nil {
		s.observe("infrastructure", start)
		return nil, err
	}

	onchain, err := s.readChain(ctx, view, n)
	if err != nil {
		s.observe("infrastructure", start)
		return nil, err
	}

	crossCheck := opts.CrossCheck && n.IsTopLevel(s.suffix) && s.index != nil
	if !crossCheck {
		if opts.CrossCheck && s.index == nil && n.IsTopLevel(s.suffix) && s.logger != nil {
			// The caller asked for a cross-check this service cannot perform;
			// the answer is chain-only, not reconciled.
			s.logger.WarnContext(ctx, "cross-check requested but no index client configured",
				"name", n.String(),
			)
		}
		s.observe(outcomeOf(onchain), start)
		return onchain, nil
	}

	if forced != "" {
		s.observe("injected", start)
		return nil, owner.NewClassified(forced, "forced by error injection", onchain, view.Timestamp())
	}

	indexed, err := s.index.Domain(ctx, n.String())
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "index query failed",
				"name", n.String(),
				"block", view.BlockNumber(),
				"error", err,
			)
		}
		s.observe("unknown", start)
		return nil, owner.NewUnknownError(fmt.Sprintf("index query failed: %v", err), onchain, view.Timestamp())
	}

	result, err := s.reconcile(onchain, indexed, view.Timestamp())
	if err != nil {
		if owner.IsIndexingLag(err) {
			if s.metrics != nil {
				s.metrics.IncrementIndexingLag()
			}
			s.observe("indexing_lag", start)
		} else {
			s.observe("unknown", start)
		}
		if s.logger != nil {
			s.logger.WarnContext(ctx, "index disagrees with chain",
				"name", n.String(),
				"block", view.BlockNumber(),
				"error", err,
			)
		}
		return nil, err
	}

	s.observe(outcomeOf(result), start)
	return result, nil
}

// readChain derives ownership from chain state alone, always trustworthy.
func (s *Service) readChain(ctx context.Context, view chain.View, n name.Name) (owner.Owner, error) {
	node := n.Namehash()
	ts := view.Timestamp()

	if n.IsTopLevel(s.suffix) {
		// All three layers are independent for a top-level name; read them
		// concurrently against the same pinned block.
		var (
			registryOwner common.Address
			wrapped       chain.WrapperRecord
			lease         chain.RegistrarRecord
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			registryOwner, err = view.RegistryOwner(gctx, node)
			return err
		})
		g.Go(func() error {
			var err error
			wrapped, err = view.WrapperRecord(gctx, node)
			return err
		})
		g.Go(func() error {
			var err error
			lease, err = view.RegistrarRecord(gctx, name.LabelHash(n.Label()))
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		if wrapped.Owner != (common.Address{}) || registryOwner == s.wrapperAddr {
			var expired *bool
			if wrapped.Expiry != 0 {
				expired = owner.Flag(expiredAt(ts, wrapped.Expiry, s.wrapperGrace))
			}
			return owner.Wrapper{Owner: wrapped.Owner, Expired: expired}, nil
		}
		if lease.Registrant != (common.Address{}) || lease.Expiry != 0 {
			return owner.Registrar{
				Owner:      registryOwner,
				Registrant: registrantHex(lease.Registrant),
				Expired:    expiredAt(ts, lease.Expiry, s.registrarGrace),
			}, nil
		}
		if registryOwner != (common.Address{}) {
			return owner.Registry{Owner: registryOwner}, nil
		}
		return nil, nil
	}

	// Subname: the wrapper read depends on the registry answer, so these are
	// sequenced. Subnames never report an expired flag.
	registryOwner, err := view.RegistryOwner(ctx, node)
	if err != nil {
		return nil, err
	}
	if registryOwner == (common.Address{}) {
		return nil, nil
	}
	if registryOwner == s.wrapperAddr {
		wrapped, err := view.WrapperRecord(ctx, node)
		if err != nil {
			return nil, err
		}
		return owner.Wrapper{Owner: wrapped.Owner}, nil
	}
	return owner.Registry{Owner: registryOwner}, nil
}

// registrantHex renders a chain-sourced registrant in EIP-55 checksummed form,
// or empty for the zero address. Index-sourced registrants keep the index's
// lower-cased form; the two are never normalized to each other.
func registrantHex(addr common.Address) string {
	if addr == (common.Address{}) {
		return ""
	}
	return addr.Hex()
}

func outcomeOf(o owner.Owner) string {
	if o == nil {
		return "unregistered"
	}
	return "resolved"
}

func (s *Service) observe(outcome string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveResolution(outcome, start)
	}
}
