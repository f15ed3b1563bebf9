// Package community holds boards contributed by users. They are built in CI like the others but
// nobody is committed to testing them on hardware.
package community
