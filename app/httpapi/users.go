package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-circulation-go/app/features/command/registeruser"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/removeuser"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/updateuser"
	"github.com/AntonStoeckl/library-circulation-go/app/features/query/getuser"
	"github.com/AntonStoeckl/library-circulation-go/app/features/query/listusers"
)

func (a api) listUsers(c *gin.Context) {
	users, err := a.h.ListUsers.Handle(c.Request.Context(), listusers.BuildQuery(c.Query("search")))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (a api) getUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := a.h.GetUser.Handle(c.Request.Context(), getuser.BuildQuery(userID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (a api) registerUser(c *gin.Context) {
	var req userRequest
	if !bindJSON(c, &req) {
		return
	}

	contact, err := req.contact()
	if err != nil {
		respondError(c, err)
		return
	}

	user, _, err := a.h.RegisterUser.Handle(
		c.Request.Context(),
		registeruser.BuildCommand(newID(), req.Name, req.Email, contact, a.now()),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (a api) updateUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req userRequest
	if !bindJSON(c, &req) {
		return
	}

	contact, err := req.contact()
	if err != nil {
		respondError(c, err)
		return
	}

	user, _, err := a.h.UpdateUser.Handle(
		c.Request.Context(),
		updateuser.BuildCommand(userID, req.Name, req.Email, contact, req.IsActive, a.now()),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (a api) removeUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, _, err := a.h.RemoveUser.Handle(c.Request.Context(), removeuser.BuildCommand(userID, a.now())); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse{Success: true})
}
