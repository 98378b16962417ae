// Package types defines the result types returned by the commands and
// consumed by the output renderer.
package types
