// Package lib acts as a library for modules that do not fit
// strictly into other layers.
//
// It contains shared utilities such as output formatting.
package lib
