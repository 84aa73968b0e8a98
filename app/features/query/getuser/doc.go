// Package getuser implements the GetUser query use case.
package getuser
