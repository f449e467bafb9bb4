// Package types defines the store configuration, reserved identifiers, and
// standard errors shared by the catalog and table packages.
package types
