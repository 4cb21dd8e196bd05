// Package api contains the core building blocks used by the trilho
// process engine: step shapes and flattening, the Context merge rules,
// the Exit sentinel, the Switch combinator, and the Observer hooks.
//
// Most users interact with the higher-level trilho package, which
// re-exports selected types and helpers from this package. The api
// package is intended for custom combinators and integrations that need
// the primitives directly.
package api
