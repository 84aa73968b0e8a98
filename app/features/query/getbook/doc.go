// Package getbook implements the GetBook query use case.
package getbook
