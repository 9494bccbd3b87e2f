package cache

import (
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

type Cacher interface {
	// Get returns true if get a hit in the cache and are able to deserialize
	// into the provided struct
	Get(key string, into any) bool

	// Set will serialize the provided data and store it in our cache
	Set(key string, val any)

	// Delete removes the key from the cache, if present
	Delete(key string)
}

type Statistics struct {
	TotalRequests int
	TotalHits     int
	TotalMisses   int
	Entries       int
}

var _ Cacher = &Client{}

// Client is an in-memory cache that evicts the least recently used entry when
// full, and drops entries once they are older than the configured ttl.
type Client struct {
	lru *expirable.LRU[string, []byte]
	log zerolog.Logger

	requests atomic.Int64
	hits     atomic.Int64

	lookups   *prometheus.CounterVec
	evictions prometheus.Counter
	entries   prometheus.GaugeFunc
}

func (c *Client) Get(key string, into any) bool {
	c.requests.Add(1)

	data, ok := c.lru.Get(key)
	if !ok {
		c.lookups.WithLabelValues("miss").Inc()
		c.log.Debug().Str("key", key).Msg("cache miss")

		return false
	}

	err := json.Unmarshal(data, into)
	if err != nil {
		c.lookups.WithLabelValues("miss").Inc()
		c.log.Info().Err(err).Str("key", key).Msg("deserializing cached value")

		return false
	}

	c.hits.Add(1)
	c.lookups.WithLabelValues("hit").Inc()

	return true
}

func (c *Client) Set(key string, val any) {
	data, err := json.Marshal(val)
	if err != nil {
		c.log.Info().Err(err).Str("key", key).Msg("serializing value for cache")
		return
	}

	c.lru.Add(key, data)
}

func (c *Client) Delete(key string) {
	c.lru.Remove(key)
}

func (c *Client) Stats() Statistics {
	requests := c.requests.Load()
	hits := c.hits.Load()

	return Statistics{
		TotalRequests: int(requests),
		TotalHits:     int(hits),
		TotalMisses:   int(requests - hits),
		Entries:       c.lru.Len(),
	}
}

// Metrics returns the collectors for cache lookups, evictions and the number
// of entries.
func (c *Client) Metrics() []prometheus.Collector {
	return []prometheus.Collector{
		c.lookups,
		c.evictions,
		c.entries,
	}
}

func New(size int, expiresAfter time.Duration, log zerolog.Logger) *Client {
	c := &Client{
		log: log,
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nada_tablemetadata",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Number of cache lookups by result",
		}, []string{"result"}),
		evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nada_tablemetadata",
			Subsystem: "cache",
			Name:      "evictions_total",
			Help:      "Number of entries removed from the cache",
		}),
	}

	c.entries = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "nada_tablemetadata",
		Subsystem: "cache",
		Name:      "entries",
		Help:      "Number of entries in the cache",
	}, func() float64 {
		return float64(c.Stats().Entries)
	})

	c.lru = expirable.NewLRU[string, []byte](size, func(string, []byte) {
		c.evictions.Inc()
	}, expiresAfter)

	return c
}
