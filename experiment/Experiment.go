// Package experiment implements functionality for gathering samples
// from a domain and for evaluating policies on a domain
package experiment

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/samuelfneumann/golspi/environment"
	"github.com/samuelfneumann/golspi/experiment/tracker"
	"github.com/samuelfneumann/golspi/lspierr"
	"github.com/samuelfneumann/golspi/policy"
	"github.com/samuelfneumann/golspi/sample"
)

// Collector gathers samples from a domain by following a policy.
// Each sample is sent to the Collector's Trackers, whose data can be
// saved to disk with Save once collection has finished.
//
// The domain is reset whenever an absorbing sample is gathered, and
// every resetEvery samples if resetEvery > 0.
type Collector struct {
	domain     environment.Domain
	policy     *policy.Policy
	resetEvery int
	trackers   []tracker.Tracker
}

// NewCollector returns a new Collector
func NewCollector(d environment.Domain, p *policy.Policy, resetEvery int,
	t ...tracker.Tracker) (*Collector, error) {
	if d == nil {
		return nil, lspierr.Config("newCollector", "domain must be non-nil")
	}
	if p == nil {
		return nil, lspierr.Config("newCollector", "policy must be non-nil")
	}
	if p.NumActions() != d.NumActions() {
		return nil, lspierr.Config("newCollector", "policy has %d actions "+
			"but domain has %d", p.NumActions(), d.NumActions())
	}
	if resetEvery < 0 {
		return nil, lspierr.Config("newCollector", "resetEvery must be "+
			">= 0, have %d", resetEvery)
	}

	return &Collector{
		domain:     d,
		policy:     p,
		resetEvery: resetEvery,
		trackers:   t,
	}, nil
}

// Register registers a tracker.Tracker with the Collector so that the
// gathered samples can be tracked and saved
func (c *Collector) Register(t tracker.Tracker) {
	c.trackers = append(c.trackers, t)
}

// Run gathers n samples
func (c *Collector) Run(n int) ([]sample.Sample, error) {
	if n < 0 {
		return nil, lspierr.Config("run", "number of samples must be "+
			">= 0, have %d", n)
	}

	samples := make([]sample.Sample, 0, n)
	for i := 0; i < n; i++ {
		action, err := c.policy.SelectAction(c.domain.CurrentState())
		if err != nil {
			return nil, errors.Wrapf(err, "run: step %d", i)
		}

		s, err := c.domain.ApplyAction(action)
		if err != nil {
			return nil, errors.Wrapf(err, "run: step %d", i)
		}
		samples = append(samples, s)

		for _, t := range c.trackers {
			if err := t.Track(s); err != nil {
				return nil, errors.Wrapf(err, "run: could not track step %d",
					i)
			}
		}

		if s.Absorb || (c.resetEvery > 0 && (i+1)%c.resetEvery == 0) {
			if err := c.domain.Reset(nil); err != nil {
				return nil, errors.Wrapf(err, "run: could not reset "+
					"domain at step %d", i)
			}
		}
	}
	return samples, nil
}

// Save saves all the data cached by the Trackers to disk
func (c *Collector) Save() error {
	for _, t := range c.trackers {
		if err := t.Save(); err != nil {
			return fmt.Errorf("save: %v", err)
		}
	}
	return nil
}

// Collect gathers n samples from a domain by following the policy's
// SelectAction. The domain is never reset unless a sample absorbs.
func Collect(d environment.Domain, p *policy.Policy, n int,
	t ...tracker.Tracker) ([]sample.Sample, error) {
	c, err := NewCollector(d, p, 0, t...)
	if err != nil {
		return nil, err
	}
	return c.Run(n)
}

// Evaluate runs the policy on the domain for the given number of steps
// and returns the cumulative reward. Absorbing transitions end the
// evaluation early.
func Evaluate(d environment.Domain, p *policy.Policy,
	steps int) (float64, error) {
	if d == nil || p == nil {
		return 0, lspierr.Config("evaluate", "domain and policy must be "+
			"non-nil")
	}
	if steps < 0 {
		return 0, lspierr.Config("evaluate", "steps must be >= 0, have %d",
			steps)
	}

	total := 0.0
	for i := 0; i < steps; i++ {
		action, err := p.SelectAction(d.CurrentState())
		if err != nil {
			return 0, errors.Wrapf(err, "evaluate: step %d", i)
		}

		s, err := d.ApplyAction(action)
		if err != nil {
			return 0, errors.Wrapf(err, "evaluate: step %d", i)
		}
		total += s.Reward

		if s.Absorb {
			break
		}
	}
	return total, nil
}
