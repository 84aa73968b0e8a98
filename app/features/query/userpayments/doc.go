// Package userpayments implements the User Payments query use case: the payment history of one
// member, newest first.
package userpayments
