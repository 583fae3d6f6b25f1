// Package skeleton knows where skeletons come from and what they look like.
// It clones and updates skeleton checkouts with git, copies them into a
// build directory, and reads the optional skeleton.yaml that declares the
// skeleton's layout and substitutable file extensions.
package skeleton
