// Package decl gives meaning to KDL nodes. Every node is classified once
// into a Decl variant (category, package, include, inert or unknown) and the
// walkers in this package traverse the combined forest of all loaded
// documents in a fixed preorder.
package decl
