// Package circulation provides the core abstractions of the lending library engine.
//
// It defines the records kept by the store (authors, books, library users, loans and payments),
// the transactional store contract used by the loan workflow and the payment reconciliation,
// and the storable audit events that are appended inside the same transaction as the state change.
//
// The contract is split into small ledgers and repositories which are grouped into one Tx:
//   - InventoryLedger: reserve and release single book copies with conditional updates
//   - BalanceLedger: credit late fees and debit settled payments
//   - LoanRepository, PaymentRepository, CatalogRepository, UserRepository: row access
//   - EventAppender: the append-only audit trail
//
// Common usage pattern:
//
//	err := store.WithinTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
//		if _, err := tx.ReserveCopy(ctx, bookID); err != nil {
//			return err
//		}
//
//		_, err := tx.InsertLoan(ctx, loan)
//		return err
//	})
//
// Implementations live in the postgresengine and memoryengine packages.
package circulation
