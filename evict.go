package cache

import (
	"context"
	"time"
)

// Purge removes entries exceeding capacity and then entries exceeding time to live.
//
// Capacity pass drops the earliest inserted entries, expiration pass scans every entry
// because overwritten entries may be younger than entries inserted after them.
func (c *Expiring) Purge() {
	ctx := context.Background()

	evicted := c.evictOverCapacity()
	expired := c.evictExpiredBefore(c.config.TimeNow().Add(-c.config.TimeToLive))

	if c.log != nil && (len(evicted) > 0 || len(expired) > 0) {
		c.log.Debug(ctx, "purged cache items",
			"name", c.config.Name,
			"evicted", evicted,
			"expired", expired,
		)
	}

	if c.stat != nil {
		if len(evicted) > 0 {
			c.stat.Add(ctx, MetricEvict, float64(len(evicted)), "name", c.config.Name)
		}

		if len(expired) > 0 {
			c.stat.Add(ctx, MetricExpired, float64(len(expired)), "name", c.config.Name)
		}

		c.stat.Set(ctx, MetricItems, float64(c.order.Len()), "name", c.config.Name)
	}
}

func (c *Expiring) evictOverCapacity() []string {
	if !c.bounded {
		return nil
	}

	excess := c.order.Len() - c.capacity
	if excess <= 0 {
		return nil
	}

	keys := make([]string, 0, excess)

	for i := 0; i < excess; i++ {
		keys = append(keys, c.remove(c.order.Front()))
	}

	return keys
}

// evictExpiredBefore removes entries inserted at or before boundary.
func (c *Expiring) evictExpiredBefore(boundary time.Time) []string {
	var keys []string

	for el := c.order.Front(); el != nil; {
		next := el.Next()

		if !el.Value.(*node).At.After(boundary) {
			keys = append(keys, c.remove(el))
		}

		el = next
	}

	return keys
}
