// Package precision holds the arbitrary-precision context used by the π
// engines and the policy that grows it during a run.
//
// A Context is an immutable value describing a working precision in decimal
// digits. Every operation that allocates a big.Float receives the context
// explicitly, so concurrent workers can each hold their own copy and no
// global precision setting exists.
//
// A Scheduler decides at which completed term counts the precision is
// raised, and by how much.
package precision
