// Package types defines the domain views, collaborator contracts, and
// sentinel errors shared across the autoassign library.
//
// The root autoassign package re-exports everything here via type aliases,
// so embedders normally import only the root package. Internal packages
// depend on types directly, which keeps them free of import cycles with the
// root package.
package types
