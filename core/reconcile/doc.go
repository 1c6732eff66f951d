// Package reconcile resolves records of one dataset against another by normalized name.
//
// The licensing report and the client directory describe the same customers but share
// no identifier; the only join key is the customer name. This package owns that join.
//
// # Normalization
//
// Normalize trims surrounding whitespace and Unicode case folds the rest. Names that are
// empty after trimming are unkeyable: they are never indexed and never resolve.
//
// # Index
//
// BuildIndex walks the directory in input order and keeps the last record seen for each
// key (last write wins). Resolve is a single exact lookup on the normalized key; there
// is no fuzzy or partial matching.
//
// # Statistics
//
// MatchStats and NameSet are plain accumulators threaded through a pass and returned
// next to its result, so a pass can be run and asserted in isolation.
//
// # Cache
//
// Cache keeps a built index for a TTL. Rebuilds go through singleflight so concurrent
// requests trigger a single directory fetch.
//
// # Usage
//
//	ix := reconcile.BuildIndex(clients, func(c directory.Client) string { return c.Name })
//	client, ok := ix.Resolve(" ACME corp ")
package reconcile
