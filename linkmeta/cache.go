// Package linkmeta fetches and caches link preview metadata (Open Graph,
// Twitter card, or generic HTML tags) for URLs found in messages.
package linkmeta

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultTTL is how long a cache entry (including a cached failure)
	// stays valid before the next Get triggers a fresh fetch.
	DefaultTTL = time.Hour

	// DefaultTimeout bounds a single outbound fetch.
	DefaultTimeout = 3 * time.Second

	// DefaultMaxInFlight is the admission ceiling for concurrent fetches.
	DefaultMaxInFlight = 2

	// Some sites serve stripped pages to unknown clients; identify as a
	// desktop browser.
	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

// Metadata holds the preview fields of a page. Every field is independently
// optional; empty means absent.
type Metadata struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	SiteName    string `json:"site_name,omitempty"`
}

// Config controls cache behavior. Zero values take the defaults above.
type Config struct {
	TTL         time.Duration
	Timeout     time.Duration
	MaxInFlight int64
	UserAgent   string
	Client      *http.Client
}

// Cache maps URLs to optional preview metadata. It coalesces concurrent
// requests for the same URL into one outbound fetch, admits at most
// MaxInFlight fetches at a time (waiters queue FIFO, unbounded), and caches
// outcomes, failures included, for the configured TTL.
//
// A Cache is owned by whoever constructs it; there is no package-level
// instance. Construct one per session and Clear it when the session ends.
type Cache struct {
	ttl       time.Duration
	timeout   time.Duration
	userAgent string
	client    *http.Client
	sem       *semaphore.Weighted
	now       func() time.Time

	mu      sync.Mutex
	flights *singleflight.Group
	entries map[string]entry
}

// entry is the cached outcome of one fetch cycle. metadata is nil when the
// fetch failed; that outcome is cached too, so unreachable hosts are not
// hammered until the TTL re-opens the key.
type entry struct {
	metadata  *Metadata
	fetchedAt time.Time
}

// New creates a Cache from cfg, substituting defaults for zero values.
func New(cfg Config) *Cache {
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxInFlight == 0 {
		cfg.MaxInFlight = DefaultMaxInFlight
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{}
	}
	return &Cache{
		ttl:       cfg.TTL,
		timeout:   cfg.Timeout,
		userAgent: cfg.UserAgent,
		client:    cfg.Client,
		sem:       semaphore.NewWeighted(cfg.MaxInFlight),
		now:       time.Now,
		flights:   new(singleflight.Group),
		entries:   make(map[string]entry),
	}
}

// Get returns preview metadata for url, fetching it if no fresh cache entry
// exists. Concurrent calls for the same url share a single outbound fetch
// and observe the same outcome. A nil result means "no metadata" — fetch
// failures are never surfaced as errors.
//
// Get blocks until a cached value is available, the (possibly queued) fetch
// completes, or ctx is done; ctx only bounds this caller's wait, not the
// shared fetch. A caller that gives up gets nil while the fetch runs on and
// caches its real outcome for everyone else.
func (c *Cache) Get(ctx context.Context, url, domain string) *Metadata {
	if meta, ok := c.cached(url); ok {
		return meta
	}

	c.mu.Lock()
	flights := c.flights
	c.mu.Unlock()

	ch := flights.DoChan(url, func() (any, error) {
		// A fetch may have completed between the cache check and joining
		// the flight; don't issue a second one.
		if meta, ok := c.cached(url); ok {
			return meta, nil
		}
		// The fetch is shared by every waiter on this key, so it must not
		// carry any single caller's cancellation; the fetch timeout still
		// bounds it.
		meta := c.fetch(context.WithoutCancel(ctx), url, domain)
		c.mu.Lock()
		c.entries[url] = entry{metadata: meta, fetchedAt: c.now()}
		c.mu.Unlock()
		return meta, nil
	})

	select {
	case res := <-ch:
		meta, _ := res.Val.(*Metadata)
		return meta
	case <-ctx.Done():
		return nil
	}
}

// Preload schedules background fetches for the given URLs without waiting
// for any of them. Individual outcomes are discarded; later Get calls hit
// the warmed cache. domains pairs with urls by index and may be shorter.
func (c *Cache) Preload(urls, domains []string) {
	for i, url := range urls {
		domain := ""
		if i < len(domains) {
			domain = domains[i]
		}
		go c.Get(context.Background(), url, domain)
	}
}

// Clear drops every cache entry and detaches in-flight fetches, forcing all
// keys back to the unfetched state regardless of age.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	c.flights = new(singleflight.Group)
}

// cached returns the entry for url when one exists and is younger than the
// TTL. The second return distinguishes a cached nil (failed fetch, still a
// hit) from a miss.
func (c *Cache) cached(url string) (*Metadata, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[url]
	if !ok || c.now().Sub(e.fetchedAt) >= c.ttl {
		return nil, false
	}
	return e.metadata, true
}

// fetch performs one admission-controlled outbound GET. Any failure
// (admission abort, timeout, transport error, non-2xx status, unparsable
// body) degrades to nil.
func (c *Cache) fetch(ctx context.Context, url, domain string) *Metadata {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil
	}
	defer c.sem.Release(1)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		log.Debug("fetch link metadata", "url", url, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Debug("fetch link metadata", "url", url, "status", resp.StatusCode)
		return nil
	}

	return parseMetadata(resp.Body, url, domain)
}
