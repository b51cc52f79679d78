// Package lib groups helpers that do not belong to a single layer.
//
// Subpackages:
//   - utils: output helpers shared by the command line tools.
package lib
