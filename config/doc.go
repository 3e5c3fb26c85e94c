// Package config holds the explicit configuration tree and its loader.
//
// Nothing in the library reads the process environment on its own;
// the environment is consulted exactly once, inside Loader.Load, and
// the result travels as a value from there on.
package config
