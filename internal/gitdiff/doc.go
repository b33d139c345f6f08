// Package gitdiff computes the set of file paths touched by a revision,
// relative to its first parent. It is the only component that reads
// version-control metadata; everything downstream works on the plain
// changed-path set it produces.
package gitdiff
