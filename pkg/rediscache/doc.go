// Package rediscache puts a Redis read-through cache in front of a
// dictionary.Provider.
//
// Tables are cached as JSON under "<prefix>:<kind>:<scope>:<culture>" with a
// TTL. Redis failures are logged and the wrapped provider is queried
// directly, so an unavailable cache never turns a hit into a miss.
//
//	client, err := rediscache.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	provider := rediscache.New(client, pgstore.New(pool), rediscache.WithTTL(cfg.TTL))
package rediscache
