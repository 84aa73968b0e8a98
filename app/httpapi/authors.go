package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-circulation-go/app/features/command/addauthor"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/removeauthor"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/updateauthor"
	"github.com/AntonStoeckl/library-circulation-go/app/features/query/getauthor"
	"github.com/AntonStoeckl/library-circulation-go/app/features/query/listauthors"
)

func (a api) listAuthors(c *gin.Context) {
	authors, err := a.h.ListAuthors.Handle(c.Request.Context(), listauthors.BuildQuery(c.Query("search")))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, authors)
}

func (a api) getAuthor(c *gin.Context) {
	authorID, ok := pathID(c, "id")
	if !ok {
		return
	}

	author, err := a.h.GetAuthor.Handle(c.Request.Context(), getauthor.BuildQuery(authorID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, author)
}

func (a api) addAuthor(c *gin.Context) {
	var req authorRequest
	if !bindJSON(c, &req) {
		return
	}

	birthDate, err := parseOptionalDate("birth_date", req.BirthDate, "Fecha de nacimiento inválida")
	if err != nil {
		respondError(c, err)
		return
	}

	command := addauthor.BuildCommand(newID(), req.Name, req.Biography, req.Nationality, birthDate, a.now())

	author, _, err := a.h.AddAuthor.Handle(c.Request.Context(), command)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, author)
}

func (a api) updateAuthor(c *gin.Context) {
	authorID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req authorRequest
	if !bindJSON(c, &req) {
		return
	}

	birthDate, err := parseOptionalDate("birth_date", req.BirthDate, "Fecha de nacimiento inválida")
	if err != nil {
		respondError(c, err)
		return
	}

	command := updateauthor.BuildCommand(authorID, req.Name, req.Biography, req.Nationality, birthDate)

	author, _, err := a.h.UpdateAuthor.Handle(c.Request.Context(), command)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, author)
}

func (a api) removeAuthor(c *gin.Context) {
	authorID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, _, err := a.h.RemoveAuthor.Handle(c.Request.Context(), removeauthor.BuildCommand(authorID, a.now())); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse{Success: true})
}
