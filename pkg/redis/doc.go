// Package redis connects to Redis and exposes it as a small key/value store
// for persisting auth sessions across process restarts.
//
// Connect pings the server with retries before handing the client back:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Storage wraps the client with Load/Save/Remove, which is the shape the
// backend client expects for its session storage:
//
//	store := redis.NewStorage(client, 0)
//	_ = store.Save(ctx, "sb-session", payload)
//
// Healthcheck returns a readiness probe for httpserver.HealthCheckHandler.
//
// Errors are sentinel values joined with the underlying go-redis error via
// errors.Join, so errors.Is works against either.
package redis
