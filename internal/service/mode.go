package service

// counter is a frequency count that remembers first-seen order,
// so ties resolve to the value encountered first.
type counter[K comparable] struct {
	order  []K
	counts map[K]int
}

func newCounter[K comparable]() *counter[K] {
	return &counter[K]{counts: make(map[K]int)}
}

func (c *counter[K]) add(k K) {
	if _, seen := c.counts[k]; !seen {
		c.order = append(c.order, k)
	}
	c.counts[k]++
}

// mode returns the most frequent value. ok is false when nothing was counted.
func (c *counter[K]) mode() (k K, ok bool) {
	best := 0
	for _, v := range c.order {
		if n := c.counts[v]; n > best {
			k, best, ok = v, n, true
		}
	}
	return k, ok
}

// snapshot returns a copy of the counts.
func (c *counter[K]) snapshot() map[K]int {
	out := make(map[K]int, len(c.counts))
	for k, n := range c.counts {
		out[k] = n
	}
	return out
}
