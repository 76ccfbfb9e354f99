// Package cache provides a capacity and time bounded in-memory cache that is purged explicitly by its owner.
//
// Features:
//
//  - Two independent bounds: entries count and entry age.
//  - Capacity eviction follows first insertion order, overwriting a key does not move it.
//  - Lazy expiration: stale entries stay readable until Purge is called.
//  - Deterministic, restartable iteration in insertion order.
//  - Misses are explicit results, not errors, for the non-context API.
//  - Allows logging, stats collection.
//  - Binary dump and restore with original insertion times.
//
// Expiring holds no locks, owner is responsible for synchronization.
package cache
