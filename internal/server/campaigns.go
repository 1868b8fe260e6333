package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/chronicle/internal/store"
	"github.com/agenthands/chronicle/internal/wire"
)

// PostNewCampaign creates and selects a campaign. The body is
// {"campaignName", "playerName", "playerRole"}; "playerClass" is accepted in
// place of "playerRole".
func (s *Server) PostNewCampaign(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		badRequest(c, "Invalid request")
		return
	}
	field := func(key string) string {
		return wire.Unescape(wire.ExtractString(body, key))
	}
	init := store.CampaignInit{
		Name:       field("campaignName"),
		PlayerName: field("playerName"),
		PlayerRole: field("playerRole"),
	}
	if init.PlayerRole == "" {
		init.PlayerRole = field("playerClass")
	}

	_, meta, err := s.Registry.Create(init)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "roleplay": meta})
}

func (s *Server) ListCampaigns(c *gin.Context) {
	metas, err := s.Registry.List()
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, metas)
}

// CreateCampaign takes {"name", "playerName", "playerRole"}.
func (s *Server) CreateCampaign(c *gin.Context) {
	var init store.CampaignInit
	if err := c.ShouldBindJSON(&init); err != nil {
		badRequest(c, "Invalid request")
		return
	}
	_, meta, err := s.Registry.Create(init)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meta)
}

func (s *Server) CurrentCampaign(c *gin.Context) {
	st, ok := s.current(c)
	if !ok {
		return
	}
	meta, err := st.Metadata()
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, meta)
}

func (s *Server) LoadCampaign(c *gin.Context) {
	st, err := s.Registry.Load(c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	meta, err := st.Metadata()
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, meta)
}

func (s *Server) DeleteCampaign(c *gin.Context) {
	if err := s.Registry.Delete(c.Param("id")); err != nil {
		s.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportCampaign returns the whole campaign as a YAML download.
func (s *Server) ExportCampaign(c *gin.Context) {
	st, err := s.Registry.Open(c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	out, err := st.ExportYAML()
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+st.ID()+`.yaml"`)
	c.Data(http.StatusOK, "application/yaml", out)
}

// CompactDocument rewrites one document of a campaign. The document may be
// named with or without its ".md" suffix.
func (s *Server) CompactDocument(c *gin.Context) {
	st, err := s.Registry.Open(c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	doc := c.Param("doc")
	if !strings.HasSuffix(doc, ".md") {
		doc += ".md"
	}
	content, err := s.Engine.CompactDocument(c.Request.Context(), st, doc)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": doc, "content": content})
}
