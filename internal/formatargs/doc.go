// Package formatargs declares the format arguments a skeleton can be filled
// with and resolves a raw configuration mapping against them. Missing
// arguments receive their defaults or are deferred to the skeleton's own
// literal text; invalid values fail the whole validation.
package formatargs
