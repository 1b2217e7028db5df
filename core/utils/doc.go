// Package utils converts loosely typed database values.
package utils
