package mockapi

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/example/table-reservations/internal/config"
	"github.com/example/table-reservations/internal/domain/reservation"
)

const (
	defaultDelay       = 1500 * time.Millisecond
	defaultSuccessRate = 0.9
)

// Provider simulates the restaurant's booking API: availability comes from the
// deterministic slot generator, and submissions are accepted at random after a delay.
type Provider struct {
	delay       time.Duration
	successRate float64
	slots       reservation.SlotSource
	log         *zap.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

func New(cfg config.Config, log *zap.Logger) *Provider {
	p := &Provider{
		delay:       cfg.SubmitDelay,
		successRate: cfg.SubmitSuccessRate,
		slots:       reservation.GenerateSlots,
		log:         log,
		rnd:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	return p
}

// NewDefault returns a provider with the stock latency and 90% acceptance.
func NewDefault() *Provider {
	return New(config.Config{SubmitDelay: defaultDelay, SubmitSuccessRate: defaultSuccessRate}, nil)
}

// WithSource replaces the random source that decides acceptance.
func (p *Provider) WithSource(src rand.Source) *Provider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rnd = rand.New(src)
	return p
}

func (p *Provider) Name() string { return "mock" }

func (p *Provider) FindSlots(ctx context.Context, d reservation.Date) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.slots(d), nil
}

func (p *Provider) Submit(ctx context.Context, d reservation.Draft) (bool, error) {
	if p.delay > 0 {
		t := time.NewTimer(p.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return false, err
	}

	p.mu.Lock()
	accepted := p.rnd.Float64() < p.successRate
	p.mu.Unlock()

	p.log.Debug("mock booking api answered",
		zap.String("date", d.Date.String()),
		zap.String("time", d.Time),
		zap.Bool("accepted", accepted),
	)
	return accepted, nil
}
