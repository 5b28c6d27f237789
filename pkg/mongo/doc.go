// Package mongo provides helpers for connecting to MongoDB as a session
// store backend: a retrying client constructor, env-driven Config, and a
// health check for probes.
//
// Typical startup:
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "sportkit")
//	if err != nil {
//		return err
//	}
//
//	store := session.NewMongoStore(db)
package mongo
