package prober

import (
	"context"
	"sync"
	"time"

	"github.com/mileusna/crontab"

	"geofora/ai-gateway/internal/domain/gateway"
	"geofora/ai-gateway/internal/infrastructure/logger"
	"geofora/ai-gateway/internal/infrastructure/metrics"
	"geofora/ai-gateway/internal/utils/platformerrors"
)

const (
	// FullRoundSchedule probes every active provider.
	FullRoundSchedule = "*/5 * * * *"
	// FastRoundSchedule re-probes only providers currently marked unhealthy,
	// so recovery is noticed within a minute instead of a full round.
	FastRoundSchedule = "* * * * *"

	ProbeTimeout        = 10 * time.Second
	maxConcurrentProbes = 3
)

// Prober periodically health-checks provider backends and reports results to
// the gateway.
type Prober struct {
	ctab *crontab.Crontab
	gw   *gateway.Gateway
}

func NewProber(gw *gateway.Gateway) *Prober {
	return &Prober{
		ctab: crontab.New(),
		gw:   gw,
	}
}

// Run executes one probe round immediately, schedules the recurring rounds,
// and blocks until the context is cancelled.
func (p *Prober) Run(ctx context.Context) error {
	log := logger.GetLogger()

	// Probe once on startup so the initial healthy flags get corrected.
	p.probeProviders(ctx, p.gw.ActiveProviderIDs())

	if err := p.ctab.AddJob(FullRoundSchedule, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), ProbeTimeout+time.Minute)
		defer cancel()
		p.probeProviders(jobCtx, p.gw.ActiveProviderIDs())
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add full probe job")
	}

	if err := p.ctab.AddJob(FastRoundSchedule, func() {
		unhealthy := p.gw.UnhealthyProviderIDs()
		if len(unhealthy) == 0 {
			return
		}
		jobCtx, cancel := context.WithTimeout(context.Background(), ProbeTimeout+time.Minute)
		defer cancel()
		p.probeProviders(jobCtx, unhealthy)
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add fast probe job")
	}

	log.Info().
		Str("full_schedule", FullRoundSchedule).
		Str("fast_schedule", FastRoundSchedule).
		Msg("health prober scheduled")

	<-ctx.Done()
	p.ctab.Shutdown()
	return nil
}

func (p *Prober) probeProviders(ctx context.Context, providerIDs []string) {
	if len(providerIDs) == 0 {
		return
	}

	sem := make(chan struct{}, maxConcurrentProbes)
	var wg sync.WaitGroup

	for _, id := range providerIDs {
		wg.Add(1)
		go func(providerID string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			p.probe(ctx, providerID)
		}(id)
	}
	wg.Wait()
}

func (p *Prober) probe(ctx context.Context, providerID string) {
	log := logger.GetLogger()

	adapter, ok := p.gw.Adapter(providerID)
	if !ok {
		return
	}

	probeCtx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	start := time.Now()
	err := adapter.HealthCheck(probeCtx)
	latency := time.Since(start)

	healthy := err == nil
	p.gw.RecordProbe(providerID, healthy, latency)
	metrics.RecordProbe(providerID, healthy, latency.Seconds())

	if err != nil {
		log.Warn().
			Err(err).
			Str("provider", providerID).
			Dur("latency", latency).
			Msg("health probe failed")
		return
	}
	log.Debug().
		Str("provider", providerID).
		Dur("latency", latency).
		Msg("health probe ok")
}
