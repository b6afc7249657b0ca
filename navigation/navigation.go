// Package navigation guards the in-page navigation of a sandboxed embed page.
//
// A Session is created per page. It decides every navigation request, counts
// cross-host hops against a cap and runs a load-timeout watchdog.
package navigation

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/reelcast/reelcast/internal/hostname"
	"github.com/reelcast/reelcast/key"
	"github.com/reelcast/reelcast/log"
	"github.com/reelcast/reelcast/provider"
	"github.com/spf13/viper"
)

var (
	ErrNavigationBlocked    = errors.New("navigation blocked")
	ErrRedirectLoopExceeded = errors.New("redirect loop exceeded")
	ErrLoadTimeout          = errors.New("load timeout")
	ErrSessionClosed        = errors.New("session closed")
)

// blocked markers are matched against the lower-cased target URL.
var (
	blockedSchemes = []string{"mega://", "megaapp://", "intent://", "market://", "itms-apps://", "itms-appss://"}
	blockedMarkers = []string{
		"play.google.com/store/apps",
		"apps.apple.com",
		"/download",
		"/install",
		"?download",
		"#download",
		"action=download",
	}
)

// State is the lifecycle of a session.
type State int

const (
	Idle State = iota
	Loading
	Loaded
	TornDown
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case TornDown:
		return "torn down"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Rule names the rule that decided a navigation.
type Rule string

const (
	RuleClosed     Rule = "closed"
	RuleInvalid    Rule = "invalid"
	RuleBlockList  Rule = "block-list"
	RuleSameHost   Rule = "same-host"
	RuleFamily     Rule = "trusted-family"
	RuleAggregator Rule = "aggregator"
	RuleLoop       Rule = "redirect-loop"
	RuleDefault    Rule = "default-deny"
)

// Decision is the verdict on one navigation request.
type Decision struct {
	Allowed bool
	Rule    Rule
	// Hop is set when the navigation counted against the redirect cap.
	Hop bool
	Err error
}

// Options configure a session.
type Options struct {
	MaxRedirects          int
	LoadTimeout           time.Duration
	AggregatorLoadTimeout time.Duration
	// OnTerminal is called once, outside the session lock, when the session fails.
	OnTerminal func(error)
}

// Configured returns options from the current configuration.
func Configured() Options {
	return Options{
		MaxRedirects:          viper.GetInt(key.NavigationMaxRedirects),
		LoadTimeout:           viper.GetDuration(key.NavigationLoadTimeout),
		AggregatorLoadTimeout: viper.GetDuration(key.NavigationAggregatorLoadTimeout),
	}
}

// Session is the navigation state of one sandboxed page.
type Session struct {
	mu sync.Mutex

	registry *provider.Registry
	origin   *provider.Profile

	originHost    string
	currentHost   string
	redirectCount int
	maxRedirects  int
	startedAt     time.Time
	state         State
	err           error

	timeout    time.Duration
	timer      *time.Timer
	generation uint64
	onTerminal func(error)
}

// NewSession starts a session for a page loaded from originURL.
func NewSession(registry *provider.Registry, originURL string, options Options) *Session {
	host := hostname.FromURL(originURL)
	origin, _ := registry.MatchHost(host)

	s := &Session{
		registry:     registry,
		origin:       origin,
		originHost:   host,
		currentHost:  host,
		maxRedirects: options.MaxRedirects,
		onTerminal:   options.OnTerminal,
		timeout:      options.LoadTimeout,
	}

	switch {
	case origin != nil && origin.LoadTimeout > 0:
		s.timeout = origin.LoadTimeout
	case origin != nil && origin.Aggregator && options.AggregatorLoadTimeout > 0:
		s.timeout = options.AggregatorLoadTimeout
	}
	if s.timeout <= 0 {
		s.timeout = 30 * time.Second
	}
	if s.maxRedirects <= 0 {
		s.maxRedirects = 3
	}

	return s
}

// Timeout is the watchdog window of the session.
func (s *Session) Timeout() time.Duration {
	return s.timeout
}

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RedirectCount returns the number of cross-host hops allowed so far.
func (s *Session) RedirectCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.redirectCount
}

// Err returns the error that ended the session, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// ShouldAllow is the renderer callback for a navigation request.
func (s *Session) ShouldAllow(target string) bool {
	return s.Evaluate(target).Allowed
}

// Evaluate decides a navigation request to target.
func (s *Session) Evaluate(target string) Decision {
	s.mu.Lock()
	decision, notify := s.evaluate(target)
	s.mu.Unlock()

	if !decision.Allowed {
		log.Debugf("navigation to %s denied by %s: %v", target, decision.Rule, decision.Err)
	}
	if notify != nil {
		notify()
	}
	return decision
}

func (s *Session) evaluate(target string) (Decision, func()) {
	if s.state == TornDown {
		return Decision{Rule: RuleClosed, Err: ErrSessionClosed}, nil
	}

	lower := strings.ToLower(strings.TrimSpace(target))
	for _, scheme := range blockedSchemes {
		if strings.HasPrefix(lower, scheme) {
			return Decision{Rule: RuleBlockList, Err: ErrNavigationBlocked}, nil
		}
	}
	for _, marker := range blockedMarkers {
		if strings.Contains(lower, marker) {
			return Decision{Rule: RuleBlockList, Err: ErrNavigationBlocked}, nil
		}
	}

	host := hostname.FromURL(target)
	if host == "" {
		return Decision{Rule: RuleInvalid, Err: ErrNavigationBlocked}, nil
	}

	if host == s.currentHost {
		return Decision{Allowed: true, Rule: RuleSameHost}, nil
	}

	var rule Rule
	switch {
	case s.trustedHop(host):
		rule = RuleFamily
	case s.aggregatorHop(host):
		rule = RuleAggregator
	default:
		return Decision{Rule: RuleDefault, Err: ErrNavigationBlocked}, nil
	}

	s.redirectCount++
	if s.redirectCount > s.maxRedirects {
		notify := s.terminate(ErrRedirectLoopExceeded)
		return Decision{Rule: RuleLoop, Hop: true, Err: ErrRedirectLoopExceeded}, notify
	}

	s.currentHost = host
	return Decision{Allowed: true, Rule: rule, Hop: true}, nil
}

// trustedHop allows moves of a trusted origin inside its family and inside
// its own registrable domain.
func (s *Session) trustedHop(host string) bool {
	if s.origin == nil || !s.origin.Trusted {
		return false
	}
	if s.origin.MatchesHost(host) {
		return true
	}
	if s.origin.Family != provider.FamilyNone {
		if target, ok := s.registry.MatchHost(host); ok && target.Family == s.origin.Family {
			return true
		}
	}
	return hostname.SameRegistrable(host, s.originHost)
}

func (s *Session) aggregatorHop(host string) bool {
	if s.origin == nil || !s.origin.Aggregator {
		return false
	}
	return s.origin.MatchesHost(host) || s.origin.IsDownstream(host)
}

// OnLoadStarted arms the watchdog for a new page load.
func (s *Session) OnLoadStarted() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == TornDown {
		return
	}

	s.state = Loading
	s.startedAt = time.Now()
	s.generation++
	s.stopTimer()

	generation := s.generation
	s.timer = time.AfterFunc(s.timeout, func() {
		s.expire(generation)
	})
}

// OnLoadFinished disarms the watchdog.
func (s *Session) OnLoadFinished() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == TornDown {
		return
	}

	s.generation++
	s.stopTimer()
	if s.state == Loading {
		log.Debugf("page on %s loaded in %s", s.currentHost, time.Since(s.startedAt).Round(time.Millisecond))
		s.state = Loaded
	}
}

// OnTimeout reports a load timeout detected by the renderer.
func (s *Session) OnTimeout() {
	s.mu.Lock()
	var notify func()
	if s.state == Loading {
		notify = s.terminate(ErrLoadTimeout)
	}
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// Close tears the session down. It is safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.stopTimer()
	s.state = TornDown
}

func (s *Session) expire(generation uint64) {
	s.mu.Lock()
	var notify func()
	if generation == s.generation && s.state == Loading {
		notify = s.terminate(ErrLoadTimeout)
	}
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// terminate must be called with the lock held. The returned func reports the
// failure and must be called after unlocking.
func (s *Session) terminate(err error) func() {
	s.generation++
	s.stopTimer()
	s.state = TornDown
	s.err = err
	log.Warnf("navigation session on %s ended: %v", s.originHost, err)

	onTerminal := s.onTerminal
	return func() {
		if onTerminal != nil {
			onTerminal(err)
		}
	}
}

func (s *Session) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
