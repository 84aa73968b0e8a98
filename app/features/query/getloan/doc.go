// Package getloan implements the Get Loan query use case.
package getloan
