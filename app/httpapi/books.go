package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-circulation-go/app/features/command/addbook"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/removebook"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/updatebook"
	"github.com/AntonStoeckl/library-circulation-go/app/features/query/getbook"
	"github.com/AntonStoeckl/library-circulation-go/app/features/query/listbooks"
)

func (a api) listBooks(c *gin.Context) {
	books, err := a.h.ListBooks.Handle(c.Request.Context(), listbooks.BuildQuery(c.Query("search")))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, books)
}

func (a api) getBook(c *gin.Context) {
	bookID, ok := pathID(c, "id")
	if !ok {
		return
	}

	book, err := a.h.GetBook.Handle(c.Request.Context(), getbook.BuildQuery(bookID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

func (a api) addBook(c *gin.Context) {
	var req bookRequest
	if !bindJSON(c, &req) {
		return
	}

	command := addbook.BuildCommand(
		newID(),
		parseUUIDOrNil(req.AuthorID),
		req.Title,
		req.copiesTotal(),
		req.details(),
		a.now(),
	)

	book, _, err := a.h.AddBook.Handle(c.Request.Context(), command)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, book)
}

func (a api) updateBook(c *gin.Context) {
	bookID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req bookRequest
	if !bindJSON(c, &req) {
		return
	}

	command := updatebook.BuildCommand(
		bookID,
		parseUUIDOrNil(req.AuthorID),
		req.Title,
		req.copiesTotal(),
		req.details(),
		a.now(),
	)

	book, _, err := a.h.UpdateBook.Handle(c.Request.Context(), command)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, book)
}

func (a api) removeBook(c *gin.Context) {
	bookID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, _, err := a.h.RemoveBook.Handle(c.Request.Context(), removebook.BuildCommand(bookID, a.now())); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse{Success: true})
}
