package httpapi

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/app/features/command/addauthor"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/addbook"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/createcheckoutsession"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/deleteloan"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/handlepaymentnotification"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/issueloan"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/registeruser"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/removeauthor"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/removebook"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/removeuser"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/returnloan"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/updateauthor"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/updatebook"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/updateuser"
	"github.com/AntonStoeckl/library-circulation-go/app/features/query/getauthor"
	"github.com/AntonStoeckl/library-circulation-go/app/features/query/getbook"
	"github.com/AntonStoeckl/library-circulation-go/app/features/query/getloan"
	"github.com/AntonStoeckl/library-circulation-go/app/features/query/getuser"
	"github.com/AntonStoeckl/library-circulation-go/app/features/query/listauthors"
	"github.com/AntonStoeckl/library-circulation-go/app/features/query/listbooks"
	"github.com/AntonStoeckl/library-circulation-go/app/features/query/listloans"
	"github.com/AntonStoeckl/library-circulation-go/app/features/query/listusers"
	"github.com/AntonStoeckl/library-circulation-go/app/features/query/userpayments"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/shell"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/shell/observable"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// ErrMissingDependency is returned by BuildHandlers when a required dependency is nil.
var ErrMissingDependency = errors.New("missing dependency")

// PaymentProvider creates checkout sessions and verifies their notifications.
type PaymentProvider interface {
	createcheckoutsession.SessionCreator
	handlepaymentnotification.NotificationVerifier
}

// Observability bundles the optional collectors every handler is instrumented with.
// ContextualLogger is also used for the payment notification audit log and must not be nil.
type Observability struct {
	Logger           shell.Logger
	ContextualLogger shell.ContextualLogger
	Metrics          shell.MetricsCollector
	Tracing          shell.TracingCollector
}

// Dependencies is what BuildHandlers wires the handlers with.
type Dependencies struct {
	Store           circulation.Store
	PaymentProvider PaymentProvider
	FeePerDay       decimal.Decimal
	PublicBaseURL   string
	Observability   Observability
}

// Handlers holds one instrumented handler per route.
type Handlers struct {
	IssueLoan                 shell.CoreCommandHandler[issueloan.Command, circulation.LoanDetails]
	ReturnLoan                shell.CoreCommandHandler[returnloan.Command, circulation.LoanDetails]
	DeleteLoan                shell.CoreCommandHandler[deleteloan.Command, shell.NoOutput]
	CreateCheckoutSession     shell.CoreCommandHandler[createcheckoutsession.Command, createcheckoutsession.Output]
	HandlePaymentNotification shell.CoreCommandHandler[handlepaymentnotification.Command, handlepaymentnotification.Output]
	AddAuthor                 shell.CoreCommandHandler[addauthor.Command, circulation.Author]
	UpdateAuthor              shell.CoreCommandHandler[updateauthor.Command, circulation.Author]
	RemoveAuthor              shell.CoreCommandHandler[removeauthor.Command, shell.NoOutput]
	AddBook                   shell.CoreCommandHandler[addbook.Command, circulation.Book]
	UpdateBook                shell.CoreCommandHandler[updatebook.Command, circulation.Book]
	RemoveBook                shell.CoreCommandHandler[removebook.Command, shell.NoOutput]
	RegisterUser              shell.CoreCommandHandler[registeruser.Command, circulation.LibraryUser]
	UpdateUser                shell.CoreCommandHandler[updateuser.Command, circulation.LibraryUser]
	RemoveUser                shell.CoreCommandHandler[removeuser.Command, shell.NoOutput]

	ListLoans    shell.CoreQueryHandler[listloans.Query, []circulation.LoanDetails]
	GetLoan      shell.CoreQueryHandler[getloan.Query, circulation.LoanDetails]
	UserPayments shell.CoreQueryHandler[userpayments.Query, []circulation.Payment]
	ListAuthors  shell.CoreQueryHandler[listauthors.Query, []circulation.Author]
	GetAuthor    shell.CoreQueryHandler[getauthor.Query, circulation.Author]
	ListBooks    shell.CoreQueryHandler[listbooks.Query, []circulation.Book]
	GetBook      shell.CoreQueryHandler[getbook.Query, circulation.Book]
	ListUsers    shell.CoreQueryHandler[listusers.Query, []circulation.LibraryUser]
	GetUser      shell.CoreQueryHandler[getuser.Query, circulation.LibraryUser]

	Health circulation.Store
}

// BuildHandlers creates all feature handlers on top of deps.Store and wraps them with observability.
func BuildHandlers(deps Dependencies) (Handlers, error) {
	if deps.Store == nil || deps.PaymentProvider == nil || deps.Observability.ContextualLogger == nil {
		return Handlers{}, ErrMissingDependency
	}

	store := deps.Store
	obs := deps.Observability
	var errs []error

	h := Handlers{
		IssueLoan: wrapCommand(
			issueloan.NewCommandHandler(store, retryOptionsFor(issueloan.Command{}, obs)...), obs, &errs),
		ReturnLoan: wrapCommand(
			returnloan.NewCommandHandler(store, deps.FeePerDay, retryOptionsFor(returnloan.Command{}, obs)...), obs, &errs),
		DeleteLoan: wrapCommand(
			deleteloan.NewCommandHandler(store, retryOptionsFor(deleteloan.Command{}, obs)...), obs, &errs),
		CreateCheckoutSession: wrapCommand(
			createcheckoutsession.NewCommandHandler(store, deps.PaymentProvider, deps.PublicBaseURL,
				retryOptionsFor(createcheckoutsession.Command{}, obs)...), obs, &errs),
		HandlePaymentNotification: wrapCommand(
			handlepaymentnotification.NewCommandHandler(store, deps.PaymentProvider, obs.ContextualLogger,
				retryOptionsFor(handlepaymentnotification.Command{}, obs)...), obs, &errs),
		AddAuthor: wrapCommand(
			addauthor.NewCommandHandler(store, retryOptionsFor(addauthor.Command{}, obs)...), obs, &errs),
		UpdateAuthor: wrapCommand(
			updateauthor.NewCommandHandler(store, retryOptionsFor(updateauthor.Command{}, obs)...), obs, &errs),
		RemoveAuthor: wrapCommand(
			removeauthor.NewCommandHandler(store, retryOptionsFor(removeauthor.Command{}, obs)...), obs, &errs),
		AddBook: wrapCommand(
			addbook.NewCommandHandler(store, retryOptionsFor(addbook.Command{}, obs)...), obs, &errs),
		UpdateBook: wrapCommand(
			updatebook.NewCommandHandler(store, retryOptionsFor(updatebook.Command{}, obs)...), obs, &errs),
		RemoveBook: wrapCommand(
			removebook.NewCommandHandler(store, retryOptionsFor(removebook.Command{}, obs)...), obs, &errs),
		RegisterUser: wrapCommand(
			registeruser.NewCommandHandler(store, retryOptionsFor(registeruser.Command{}, obs)...), obs, &errs),
		UpdateUser: wrapCommand(
			updateuser.NewCommandHandler(store, retryOptionsFor(updateuser.Command{}, obs)...), obs, &errs),
		RemoveUser: wrapCommand(
			removeuser.NewCommandHandler(store, retryOptionsFor(removeuser.Command{}, obs)...), obs, &errs),

		ListLoans:    wrapQuery(listloans.NewQueryHandler(store), obs, &errs),
		GetLoan:      wrapQuery(getloan.NewQueryHandler(store), obs, &errs),
		UserPayments: wrapQuery(userpayments.NewQueryHandler(store), obs, &errs),
		ListAuthors:  wrapQuery(listauthors.NewQueryHandler(store), obs, &errs),
		GetAuthor:    wrapQuery(getauthor.NewQueryHandler(store), obs, &errs),
		ListBooks:    wrapQuery(listbooks.NewQueryHandler(store), obs, &errs),
		GetBook:      wrapQuery(getbook.NewQueryHandler(store), obs, &errs),
		ListUsers:    wrapQuery(listusers.NewQueryHandler(store), obs, &errs),
		GetUser:      wrapQuery(getuser.NewQueryHandler(store), obs, &errs),

		Health: store,
	}

	if err := errors.Join(errs...); err != nil {
		return Handlers{}, err
	}

	return h, nil
}

func retryOptionsFor(command shell.Command, obs Observability) []shell.RetryOption {
	if obs.Metrics == nil {
		return nil
	}

	return []shell.RetryOption{shell.WithMetrics(obs.Metrics, command.CommandType())}
}

func wrapCommand[C shell.Command, R any](
	coreHandler shell.CoreCommandHandler[C, R],
	obs Observability,
	errs *[]error,
) shell.CoreCommandHandler[C, R] {

	wrapper, err := observable.NewCommandWrapper(
		coreHandler,
		observable.WithCommandMetrics[C, R](obs.Metrics),
		observable.WithCommandTracing[C, R](obs.Tracing),
		observable.WithCommandContextualLogging[C, R](obs.ContextualLogger),
		observable.WithCommandLogging[C, R](obs.Logger),
	)
	if err != nil {
		*errs = append(*errs, err)
		return coreHandler
	}

	return wrapper
}

func wrapQuery[Q shell.Query, R any](
	coreHandler shell.CoreQueryHandler[Q, R],
	obs Observability,
	errs *[]error,
) shell.CoreQueryHandler[Q, R] {

	wrapper, err := observable.NewQueryWrapper(
		coreHandler,
		observable.WithQueryMetrics[Q, R](obs.Metrics),
		observable.WithQueryTracing[Q, R](obs.Tracing),
		observable.WithQueryContextualLogging[Q, R](obs.ContextualLogger),
		observable.WithQueryLogging[Q, R](obs.Logger),
	)
	if err != nil {
		*errs = append(*errs, err)
		return coreHandler
	}

	return wrapper
}
