// Package redis wraps go-redis as a lifecycle component and provides
// TypedStore, a JSON key/value store with per-key TTL.
//
//	client := comp.Client()
//	scenes := redis.NewTypedStore[scene.Scene](client, "rescuedge:scene")
//	err := scenes.Save(ctx, "ACC-1", &s, 24*time.Hour)
package redis
