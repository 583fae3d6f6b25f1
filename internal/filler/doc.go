// Package filler turns a copied skeleton into a customized application
// tree. Fill runs the whole pass: validation, resource replacement, the
// directive walk, local.properties and the package directory rename.
//
// The pass is synchronous and assumes exclusive ownership of the tree.
// Callers that fill several builds concurrently need one directory each.
package filler
