// Package observable provides wrappers that instrument command and query handlers
// with metrics, tracing and logging while keeping the handlers free of observability code.
//
// The wrappers are applied externally when the application is wired:
//
//	coreHandler := issueloan.NewCommandHandler(store)
//
//	handler, err := observable.NewCommandWrapper(
//		coreHandler,
//		observable.WithCommandMetrics[issueloan.Command, circulation.LoanDetails](metricsCollector),
//		observable.WithCommandTracing[issueloan.Command, circulation.LoanDetails](tracingCollector),
//		observable.WithCommandContextualLogging[issueloan.Command, circulation.LoanDetails](contextualLogger),
//	)
//
// Business rule rejections are recorded with the status "rejected" and logged at info level,
// technical failures with "error" and logged at error level.
package observable
