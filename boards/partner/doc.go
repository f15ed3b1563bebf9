// Package partner holds boards contributed and maintained by their manufacturers.
package partner
