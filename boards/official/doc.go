// Package official holds the boards maintained alongside the catalog itself. Importing the
// package registers them.
package official
