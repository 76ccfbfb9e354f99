// Package royale provides a client for game statistics API with cached player, clan and server lookups.
package royale
