// Package types defines the domain entities, configuration, and standard
// error values for the DataScope catalog service.
package types
