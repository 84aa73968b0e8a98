package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-circulation-go/app/features/command/deleteloan"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/issueloan"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/returnloan"
	"github.com/AntonStoeckl/library-circulation-go/app/features/query/getloan"
	"github.com/AntonStoeckl/library-circulation-go/app/features/query/listloans"
)

func (a api) issueLoan(c *gin.Context) {
	var req issueLoanRequest
	if !bindJSON(c, &req) {
		return
	}

	command := issueloan.BuildCommand(
		newID(),
		parseUUIDOrNil(req.BookID),
		parseUUIDOrNil(req.UserID),
		parseDate(req.DueDate),
		req.Notes,
		a.now(),
	)

	loan, _, err := a.h.IssueLoan.Handle(c.Request.Context(), command)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, loan)
}

func (a api) returnLoan(c *gin.Context) {
	loanID, ok := pathID(c, "id")
	if !ok {
		return
	}

	loan, _, err := a.h.ReturnLoan.Handle(c.Request.Context(), returnloan.BuildCommand(loanID, a.now()))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loan)
}

func (a api) deleteLoan(c *gin.Context) {
	loanID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, _, err := a.h.DeleteLoan.Handle(c.Request.Context(), deleteloan.BuildCommand(loanID, a.now())); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse{Success: true})
}

func (a api) listLoans(c *gin.Context) {
	query := listloans.BuildQuery(c.Query("status"), c.Query("search"), a.now())

	loans, err := a.h.ListLoans.Handle(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loans)
}

func (a api) getLoan(c *gin.Context) {
	loanID, ok := pathID(c, "id")
	if !ok {
		return
	}

	loan, err := a.h.GetLoan.Handle(c.Request.Context(), getloan.BuildQuery(loanID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loan)
}
