// Package fixtures loads demo session data from YAML and replays it through
// the session service's public operations.
//
// Fixture replay is kept strictly outside the domain package: production code
// accepts data only through CreateSession, JoinSession and CancelSession, and
// so do fixtures — there is no side channel into a Store. Past-dated demo
// sessions are made possible by a replay clock positioned before each
// session's scheduled time.
//
//	set, err := fixtures.ParseFile("pkg/fixtures/testdata/demo.yaml")
//	if err != nil {
//		return err
//	}
//	if err := fixtures.Seed(ctx, store, set); err != nil {
//		return err
//	}
package fixtures
