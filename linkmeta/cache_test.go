package linkmeta

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const previewPage = `<html><head>
<meta property="og:title" content="A Page">
<meta property="og:site_name" content="Example">
</head><body></body></html>`

// countingServer serves previewPage and counts requests.
func countingServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, previewPage)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestGetCachesResult(t *testing.T) {
	srv, hits := countingServer(t)
	c := New(Config{})

	first := c.Get(context.Background(), srv.URL, "example.com")
	require.NotNil(t, first)
	assert.Equal(t, "A Page", first.Title)
	assert.Equal(t, "Example", first.SiteName)

	second := c.Get(context.Background(), srv.URL, "example.com")
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), hits.Load(), "second Get must be a cache hit")
}

func TestGetCoalescesConcurrentCalls(t *testing.T) {
	var hits atomic.Int64
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		fmt.Fprint(w, previewPage)
	}))
	defer srv.Close()

	c := New(Config{})

	const callers = 10
	results := make([]*Metadata, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = c.Get(context.Background(), srv.URL, "example.com")
		}()
	}

	// Let every caller reach the flight before the fetch completes.
	require.Eventually(t, func() bool { return hits.Load() == 1 },
		time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int64(1), hits.Load(), "exactly one outbound fetch")
	for _, res := range results {
		require.NotNil(t, res)
		assert.Equal(t, "A Page", res.Title)
	}
}

func TestConcurrencyCeiling(t *testing.T) {
	var inFlight, peak atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(30 * time.Millisecond)
		inFlight.Add(-1)
		fmt.Fprint(w, previewPage)
	}))
	defer srv.Close()

	c := New(Config{})

	var wg sync.WaitGroup
	for i := range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Get(context.Background(), fmt.Sprintf("%s/p/%d", srv.URL, i), "example.com")
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int64(DefaultMaxInFlight))
}

func TestTTLExpiry(t *testing.T) {
	srv, hits := countingServer(t)
	c := New(Config{TTL: time.Hour})

	now := time.Now()
	c.now = func() time.Time { return now }

	c.Get(context.Background(), srv.URL, "example.com")
	require.Equal(t, int64(1), hits.Load())

	// Still fresh just under the TTL.
	now = now.Add(time.Hour - time.Second)
	c.Get(context.Background(), srv.URL, "example.com")
	assert.Equal(t, int64(1), hits.Load())

	// Stale: exactly one fresh fetch.
	now = now.Add(2 * time.Second)
	c.Get(context.Background(), srv.URL, "example.com")
	assert.Equal(t, int64(2), hits.Load())
}

func TestFailureIsCached(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(Config{})

	assert.Nil(t, c.Get(context.Background(), srv.URL, "example.com"))
	assert.Nil(t, c.Get(context.Background(), srv.URL, "example.com"))
	assert.Equal(t, int64(1), hits.Load(), "failure outcome must be served from cache")
}

func TestCancelledCallerDoesNotPoisonCache(t *testing.T) {
	var hits atomic.Int64
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		fmt.Fprint(w, previewPage)
	}))
	defer srv.Close()

	c := New(Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Nil(t, c.Get(ctx, srv.URL, "example.com"), "abandoned caller gets nil")
	close(release)

	meta := c.Get(context.Background(), srv.URL, "example.com")
	require.NotNil(t, meta, "a later caller must see the real outcome, not a cached failure")
	assert.Equal(t, "A Page", meta.Title)
	assert.Equal(t, int64(1), hits.Load(), "the detached fetch serves both callers")
}

func TestTimeoutYieldsNoMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		fmt.Fprint(w, previewPage)
	}))
	defer srv.Close()

	c := New(Config{Timeout: 20 * time.Millisecond})
	assert.Nil(t, c.Get(context.Background(), srv.URL, "example.com"))
}

func TestUnreachableHostYieldsNoMetadata(t *testing.T) {
	c := New(Config{Timeout: 100 * time.Millisecond})
	assert.Nil(t, c.Get(context.Background(), "http://127.0.0.1:1/x", "example.com"))
}

func TestClear(t *testing.T) {
	srv, hits := countingServer(t)
	c := New(Config{})

	c.Get(context.Background(), srv.URL, "example.com")
	c.Clear()
	c.Get(context.Background(), srv.URL, "example.com")
	assert.Equal(t, int64(2), hits.Load(), "Clear must force a refetch")
}

func TestPreload(t *testing.T) {
	srv, hits := countingServer(t)
	c := New(Config{})

	urls := []string{srv.URL + "/a", srv.URL + "/b", srv.URL + "/c"}
	c.Preload(urls, []string{"example.com"}) // domains may be shorter

	require.Eventually(t, func() bool { return hits.Load() == 3 },
		2*time.Second, 5*time.Millisecond)

	// All warmed: no further outbound traffic.
	for _, u := range urls {
		require.NotNil(t, c.Get(context.Background(), u, "example.com"))
	}
	assert.Equal(t, int64(3), hits.Load())
}

func TestUserAgentHeader(t *testing.T) {
	var ua atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua.Store(r.Header.Get("User-Agent"))
		fmt.Fprint(w, previewPage)
	}))
	defer srv.Close()

	c := New(Config{UserAgent: "sandesh-test/1.0"})
	c.Get(context.Background(), srv.URL, "example.com")
	assert.Equal(t, "sandesh-test/1.0", ua.Load())
}
