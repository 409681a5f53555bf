// Package expconf defines the experiment configuration data model and the
// operations that give a configuration a stable identity: canonical hashing,
// duplicate detection across an expanded list, and recursive structural
// subset matching for querying experiment sets by partial criteria.
//
// A Config is a nested string-keyed map whose values are scalars, lists of
// scalars, or further nested maps. Identity is a pure function of content:
// two configs that hold the same key/value pairs hash identically no matter
// what order the keys were inserted in, because every level is canonicalized
// by an explicit lexical sort before digesting. Callers must treat a Config
// as immutable once its hash has been computed, otherwise the identity goes
// stale relative to any artifacts persisted under it.
package expconf
