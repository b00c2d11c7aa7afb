// Package algorithm implements four admission-control algorithms behind the
// same non-blocking decision, TryAdmit() bool:
//
//   - FixedWindow: counts admissions per window; a periodic tick resets the count.
//   - SlidingWindow: keeps a log of admission instants and evicts the expired ones on every call.
//   - LeakyBucket: a level that drains at a constant rate, computed lazily on every call.
//   - TokenBucket: a pool of tokens refilled one at a time by a periodic tick.
//
// # Thread Safety
//
// Each limiter guards all of its mutable state with a single mutex. The periodic
// tick of FixedWindow and TokenBucket takes the same mutex as TryAdmit, so a
// decision always sees a state that is entirely before or entirely after a tick.
//
// # Lifecycle
//
// Constructors validate their parameters and return a *ConfigError on failure.
// Close stops the periodic task, if any. It is idempotent and safe on limiters
// without a task.
package algorithm
