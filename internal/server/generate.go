package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/agenthands/chronicle/internal/core/model"
	"github.com/agenthands/chronicle/internal/store"
)

// GenerateRecordRequest asks for a character or location draft. Name and
// Existing (text already written in the editor) seed the description. With
// Save the draft is added to the roster.
type GenerateRecordRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Existing    string `json:"existing"`
	Save        bool   `json:"save"`
}

func (r GenerateRecordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(0, 200)),
		validation.Field(&r.Description,
			validation.Length(0, 4000),
			validation.When(strings.TrimSpace(r.Name) == "", validation.Required.Error("name or description is required")),
		),
		validation.Field(&r.Existing, validation.Length(0, 20000)),
	)
}

func (r GenerateRecordRequest) prompt() string {
	var parts []string
	if n := strings.TrimSpace(r.Name); n != "" {
		parts = append(parts, "Name: "+n)
	}
	if d := strings.TrimSpace(r.Description); d != "" {
		parts = append(parts, d)
	}
	if e := strings.TrimSpace(r.Existing); e != "" {
		parts = append(parts, "Keep consistent with what is already written:\n"+e)
	}
	return strings.Join(parts, "\n\n")
}

// GenerateImageRequest asks for an image. With Category (and ID for
// characters and locations) the image is stored and linked; otherwise it is
// returned inline.
type GenerateImageRequest struct {
	Prompt   string `json:"prompt"`
	Category string `json:"category"`
	ID       string `json:"id"`
}

func (r GenerateImageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Prompt, validation.Length(0, 4000), validation.When(r.Category == "", validation.Required)),
		validation.Field(&r.Category, validation.In(model.ImagePlayer, model.ImageCharacters, model.ImageLocations)),
		validation.Field(&r.ID, validation.When(r.Category == model.ImageCharacters || r.Category == model.ImageLocations, validation.Required)),
	)
}

func bindValidated(c *gin.Context, req validation.Validatable) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return fmt.Errorf("%w: invalid JSON", store.ErrValidation)
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrValidation, err)
	}
	return nil
}

func (s *Server) GenerateCharacter(c *gin.Context) {
	var req GenerateRecordRequest
	if err := bindValidated(c, &req); err != nil {
		s.handleError(c, err)
		return
	}
	if !req.Save {
		draft, err := s.Engine.DraftCharacter(c.Request.Context(), req.prompt())
		if err != nil {
			s.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, draft)
		return
	}

	st, ok := s.current(c)
	if !ok {
		return
	}
	ch, err := s.Engine.GenerateCharacter(c.Request.Context(), st, req.prompt())
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ch)
}

func (s *Server) GenerateLocation(c *gin.Context) {
	var req GenerateRecordRequest
	if err := bindValidated(c, &req); err != nil {
		s.handleError(c, err)
		return
	}
	if !req.Save {
		draft, err := s.Engine.DraftLocation(c.Request.Context(), req.prompt())
		if err != nil {
			s.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, draft)
		return
	}

	st, ok := s.current(c)
	if !ok {
		return
	}
	l, err := s.Engine.GenerateLocation(c.Request.Context(), st, req.prompt())
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (s *Server) GenerateImage(c *gin.Context) {
	var req GenerateImageRequest
	if err := bindValidated(c, &req); err != nil {
		s.handleError(c, err)
		return
	}

	if req.Category == "" {
		img, err := s.Engine.PaintImage(c.Request.Context(), req.Prompt)
		if err != nil {
			s.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"imageData": img.Base64, "mimeType": img.MIMEType})
		return
	}

	st, ok := s.current(c)
	if !ok {
		return
	}
	id := req.ID
	if req.Category == model.ImagePlayer {
		id = model.PlayerImageID
	}
	path, err := s.Engine.GenerateImage(c.Request.Context(), st, req.Category, id, req.Prompt)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": imageURL(req.Category, id), "path": path})
}
