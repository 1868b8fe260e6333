package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/chronicle/internal/core/model"
)

func bindString(body string, dst any) error {
	if err := json.Unmarshal([]byte(body), dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func (s *Server) ListCharacters(c *gin.Context) {
	st, ok := s.current(c)
	if !ok {
		return
	}
	chars, err := st.Characters()
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, chars)
}

func (s *Server) GetCharacter(c *gin.Context) {
	st, ok := s.current(c)
	if !ok {
		return
	}
	ch, err := st.Character(c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

func (s *Server) CreateCharacter(c *gin.Context) {
	var req model.Character
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}
	st, ok := s.current(c)
	if !ok {
		return
	}
	ch, err := st.CreateCharacter(req)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ch)
}

func (s *Server) UpdateCharacter(c *gin.Context) {
	var req model.Character
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}
	st, ok := s.current(c)
	if !ok {
		return
	}
	ch, err := st.UpdateCharacter(c.Param("id"), req)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

func (s *Server) DeleteCharacter(c *gin.Context) {
	st, ok := s.current(c)
	if !ok {
		return
	}
	if err := st.DeleteCharacter(c.Param("id")); err != nil {
		s.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) ListLocations(c *gin.Context) {
	st, ok := s.current(c)
	if !ok {
		return
	}
	locs, err := st.Locations()
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, locs)
}

func (s *Server) GetLocation(c *gin.Context) {
	st, ok := s.current(c)
	if !ok {
		return
	}
	l, err := st.Location(c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (s *Server) CreateLocation(c *gin.Context) {
	var req model.Location
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}
	st, ok := s.current(c)
	if !ok {
		return
	}
	l, err := st.CreateLocation(req)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (s *Server) UpdateLocation(c *gin.Context) {
	var req model.Location
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}
	st, ok := s.current(c)
	if !ok {
		return
	}
	l, err := st.UpdateLocation(c.Param("id"), req)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (s *Server) DeleteLocation(c *gin.Context) {
	st, ok := s.current(c)
	if !ok {
		return
	}
	if err := st.DeleteLocation(c.Param("id")); err != nil {
		s.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
