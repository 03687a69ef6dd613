package noise

import "fmt"

// Sampler reads discrete samples by index.
type Sampler interface {
	At(pos int64) float64
}

// Counter is incremented by the number of samples generated.
// prometheus.Counter satisfies it.
type Counter interface {
	Add(float64)
}

// Cache generates filtered samples strictly forward over a raw/filtered ring
// pair and serves already-generated indices from the rings.
//
// Watermarks: latest is the newest generated index, earliest the oldest one
// still retained. Both start at -1 (nothing generated). Index -1 and any
// index between earliest and latest read back without touching the source.
type Cache struct {
	x, y     *Buffer
	capacity int64
	earliest int64
	latest   int64

	source Source
	filter Filter

	generated int64
	counter   Counter
}

// NewCache builds a Cache of the given capacity over source and filter.
// Panics if capacity < 1.
func NewCache(source Source, filter Filter, capacity int) *Cache {
	return &Cache{
		x:        NewBuffer(capacity),
		y:        NewBuffer(capacity),
		capacity: int64(capacity),
		earliest: -1,
		latest:   -1,
		source:   source,
		filter:   filter,
	}
}

// SetCounter attaches a generation counter; nil detaches it.
func (c *Cache) SetCounter(counter Counter) {
	c.counter = counter
}

// Capacity returns the retained window depth.
func (c *Cache) Capacity() int {
	return int(c.capacity)
}

// Watermarks returns the oldest retained and newest generated index.
func (c *Cache) Watermarks() (earliest, latest int64) {
	return c.earliest, c.latest
}

// Generated returns how many samples the source has filled since
// construction or the last Reset.
func (c *Cache) Generated() int64 {
	return c.generated
}

// At returns the filtered sample at pos, generating every missing index up to
// pos first. Negative positions are pre-run silence and read as 0 without
// generating anything. Panics if pos precedes the retained window: the index
// has been evicted and cannot be recomputed.
func (c *Cache) At(pos int64) float64 {
	if pos < 0 {
		return 0
	}
	if pos < c.earliest {
		panic(fmt.Sprintf("noise.Cache: index %d is older than the oldest retained index %d (capacity %d)",
			pos, c.earliest, c.capacity))
	}
	if pos > c.latest {
		c.generate(pos)
	}
	return c.y.At(pos)
}

func (c *Cache) generate(pos int64) {
	n := pos - c.latest
	for i := c.latest + 1; i <= pos; i++ {
		c.source.Fill(c.x, i)
		c.filter.Apply(c.x, c.y, i)
	}
	c.latest = pos
	if oldest := c.latest - c.capacity + 1; oldest > c.earliest {
		c.earliest = oldest
	}
	c.generated += n
	if c.counter != nil {
		c.counter.Add(float64(n))
	}
}

// Reset clears both rings and the watermarks and resets the source.
func (c *Cache) Reset() {
	c.source.Reset()
	c.x.Reset()
	c.y.Reset()
	c.earliest = -1
	c.latest = -1
	c.generated = 0
}
