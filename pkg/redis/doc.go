// Package redis provides helpers for connecting to a Redis server used as an
// ephemeral session store backend.
//
// Connect retries the connection using the supplied configuration before
// giving up, and Healthcheck integrates the client into liveness and
// readiness probes. Configuration is described by the Config struct whose
// fields are populated from environment variables via github.com/caarlos0/env.
//
// Typical startup:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	store := session.NewRedisStore(client)
package redis
