// Package availability runs date-range availability checks for booking
// flows. Each input tuple supersedes the previous one: a response only
// applies while its tuple is still the latest, so a slow early check can
// never overwrite the answer for the dates the user actually picked.
package availability

import (
	"context"
	"sync"
	"time"

	"buckler/config"
	"buckler/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Params is the exact input tuple a check is keyed by.
type Params struct {
	ListingID string
	CheckIn   time.Time
	CheckOut  time.Time
	Guests    int
}

// Complete reports whether every field needed to query is present.
func (p Params) Complete() bool {
	return p.ListingID != "" && !p.CheckIn.IsZero() && !p.CheckOut.IsZero() && p.Guests > 0
}

// Result is the current answer. A nil Available means "not yet queried" and
// renders distinctly from both true and false.
type Result struct {
	Available *bool
	Checking  bool
}

// QueryFunc performs the backend availability read for one tuple.
type QueryFunc func(ctx context.Context, p Params) (bool, error)

// Checker tracks the latest tuple and its answer.
type Checker struct {
	query   QueryFunc
	limiter *rate.Limiter
	logger  *zap.Logger

	mu     sync.Mutex
	seq    uint64
	params Params
	result Result
}

// NewChecker builds a checker with the configured re-check rate limit.
func NewChecker(query QueryFunc) *Checker {
	cfg := config.AppConfig
	perSec := cfg.AvailChecksPerSec
	if perSec <= 0 {
		perSec = 2
	}
	burst := cfg.AvailCheckBurst
	if burst <= 0 {
		burst = 5
	}
	return &Checker{
		query:   query,
		limiter: rate.NewLimiter(rate.Limit(perSec), burst),
		logger:  utils.GetLogger(),
	}
}

// SetParams registers the latest input tuple. Returns true when the tuple is
// complete and changed, meaning a new check is due. The prior answer belongs
// to a different tuple and is discarded immediately.
func (c *Checker) SetParams(p Params) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p == c.params {
		return false
	}
	c.params = p
	c.seq++
	if !p.Complete() {
		c.result = Result{}
		return false
	}
	c.result = Result{Checking: true}
	return true
}

// Run performs the check for the tuple registered at call time. The answer
// applies only if no newer tuple arrived while the request was in flight.
func (c *Checker) Run(ctx context.Context) (Result, error) {
	c.mu.Lock()
	seq := c.seq
	p := c.params
	c.mu.Unlock()
	if !p.Complete() {
		return c.Result(), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return c.Result(), err
	}

	available, err := c.query(ctx, p)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq != seq {
		c.logger.Debug("discarding superseded availability result",
			zap.String("listingID", p.ListingID))
		return c.result, nil
	}
	if err != nil {
		c.result = Result{}
		return c.result, err
	}
	c.result = Result{Available: &available}
	return c.result, nil
}

// Result returns the latest applied answer.
func (c *Checker) Result() Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Reset clears the tuple and answer, e.g. when the modal closes.
func (c *Checker) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params = Params{}
	c.result = Result{}
	c.seq++
}
