// Package fx resolves the exchange rate fixed into a monetary fact at
// creation time. A resolved rate is used once to construct the fact and is
// never refreshed for existing records.
package fx

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/dealerledger/internal/domain"
	"github.com/iho/dealerledger/internal/infrastructure/metrics"
)

// QuoteProvider supplies the current spot rate for a currency pair.
type QuoteProvider interface {
	GetRate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// Resolver decides which rate a new monetary fact is fixed at: a manual
// override always wins, otherwise the external quote provider is asked.
// It never defaults to 1 on provider failure.
type Resolver struct {
	provider QuoteProvider
	logger   zerolog.Logger
	metrics  *metrics.Metrics
}

// NewResolver creates a new Resolver. Metrics may be nil.
func NewResolver(provider QuoteProvider, logger zerolog.Logger, m *metrics.Metrics) *Resolver {
	return &Resolver{
		provider: provider,
		logger:   logger,
		metrics:  m,
	}
}

func (r *Resolver) countLookup(source string) {
	if r.metrics != nil {
		r.metrics.RateLookups.WithLabelValues(source).Inc()
	}
}

func (r *Resolver) countError() {
	if r.metrics != nil {
		r.metrics.RateErrors.Inc()
	}
}

// Resolve returns the rate from one currency to another. A same-currency pair
// resolves to 1. A manual rate is validated and returned unchanged with no
// cross-check against the market. Provider failures surface as
// domain.ErrRateUnavailable; retrying is caller policy.
func (r *Resolver) Resolve(ctx context.Context, from, to string, manual *decimal.Decimal) (decimal.Decimal, error) {
	from = domain.NormalizeCurrency(from)
	to = domain.NormalizeCurrency(to)

	if err := domain.ValidateCurrency(from); err != nil {
		return decimal.Zero, err
	}

	if err := domain.ValidateCurrency(to); err != nil {
		return decimal.Zero, err
	}

	if from == to {
		r.countLookup(metrics.RateSourceIdentity)
		return decimal.NewFromInt(1), nil
	}

	if manual != nil {
		if manual.LessThanOrEqual(decimal.Zero) {
			return decimal.Zero, fmt.Errorf("%w: manual rate %v", domain.ErrInvalidRate, manual)
		}

		r.countLookup(metrics.RateSourceManual)
		return *manual, nil
	}

	rate, err := r.provider.GetRate(ctx, from, to)
	if err != nil {
		r.logger.Warn().
			Err(err).
			Str("from", from).
			Str("to", to).
			Msg("rate quote provider failed")

		r.countError()
		return decimal.Zero, fmt.Errorf("%w: %s/%s: %v", domain.ErrRateUnavailable, from, to, err)
	}

	if rate.LessThanOrEqual(decimal.Zero) {
		r.countError()
		return decimal.Zero, fmt.Errorf("%w: provider returned %v for %s/%s",
			domain.ErrRateUnavailable, rate, from, to)
	}

	r.countLookup(metrics.RateSourceProvider)
	return rate, nil
}
