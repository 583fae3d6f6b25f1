// Package build prepares an Android build directory for a Python program.
// Prepare stops right before the gradle invocation, which is left to the
// caller.
package build
