package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"

	"github.com/agenthands/chronicle/internal/core/model"
	"github.com/agenthands/chronicle/internal/store"
	"github.com/agenthands/chronicle/internal/wire"
)

// PostMessage plays one turn. The body is {"message": "..."}.
func (s *Server) PostMessage(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		badRequest(c, "Invalid request")
		return
	}
	message := wire.Unescape(wire.ExtractString(body, "message"))
	if strings.TrimSpace(message) == "" {
		badRequest(c, "Missing message")
		return
	}

	st, ok := s.current(c)
	if !ok {
		return
	}
	res, err := s.Engine.PlayTurn(c.Request.Context(), st, message)
	if err != nil {
		s.handleError(c, err)
		return
	}

	b := wire.NewBuilder()
	b.BeginObject()
	b.KVString("narrative", res.Narrative)
	b.Key("playerState")
	b.BeginObject()
	b.KVBool("updated", len(res.Updates) > 0)
	b.EndObject()
	b.Key("updates")
	b.BeginArray()
	for _, u := range res.Updates {
		b.ValueString(u.Filename)
	}
	b.EndArray()
	b.EndObject()
	c.Data(http.StatusOK, "application/json", []byte(b.String()))
}

// GetHistory returns history.json as stored.
func (s *Server) GetHistory(c *gin.Context) {
	st, ok := s.current(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "application/json", []byte(st.RawHistory()))
}

func imageURL(category, id string) string {
	return "/api/images/" + category + "/" + id
}

// GetPlayer returns player.md both raw and parsed.
func (s *Server) GetPlayer(c *gin.Context) {
	st, ok := s.current(c)
	if !ok {
		return
	}
	profile, err := st.PlayerProfile()
	if err != nil {
		s.handleError(c, err)
		return
	}
	resp := gin.H{
		"content": st.PlayerState(),
		"profile": profile,
	}
	if st.ImageExists(model.ImagePlayer, model.PlayerImageID) {
		resp["imageUrl"] = imageURL(model.ImagePlayer, model.PlayerImageID)
	}
	c.JSON(http.StatusOK, resp)
}

// PutPlayer accepts either {"content": "<markdown>"}, which replaces
// player.md verbatim, or a profile object.
func (s *Server) PutPlayer(c *gin.Context) {
	st, ok := s.current(c)
	if !ok {
		return
	}
	body, err := readBody(c)
	if err != nil || !gjson.Valid(body) {
		badRequest(c, "Invalid request")
		return
	}

	if content := gjson.Get(body, "content"); content.Type == gjson.String {
		if err := st.WriteDocument(store.DocPlayer, content.String()); err != nil {
			s.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	var profile model.PlayerProfile
	if err := bindString(body, &profile); err != nil {
		badRequest(c, "Invalid request")
		return
	}
	updated, err := st.UpdatePlayerProfile(profile)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// PostPlayerNote appends a note. The body is {"note": "..."}.
func (s *Server) PostPlayerNote(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		badRequest(c, "Invalid request")
		return
	}
	note := wire.Unescape(wire.ExtractString(body, "note"))
	if strings.TrimSpace(note) == "" {
		badRequest(c, "Missing note")
		return
	}
	st, ok := s.current(c)
	if !ok {
		return
	}
	if err := st.AddPlayerNote(note); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PostPlayerImage stores an uploaded avatar. The body is
// {"imageData": "<base64>", "mimeType": "image/png"}.
func (s *Server) PostPlayerImage(c *gin.Context) {
	body, err := readBody(c)
	if err != nil {
		badRequest(c, "Invalid request")
		return
	}
	data := wire.ExtractString(body, "imageData")
	if data == "" {
		badRequest(c, "Missing imageData")
		return
	}
	mime := wire.Unescape(wire.ExtractString(body, "mimeType"))

	st, ok := s.current(c)
	if !ok {
		return
	}
	if _, err := s.Engine.AttachImage(st, model.ImagePlayer, model.PlayerImageID, data, mime); err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageUrl": imageURL(model.ImagePlayer, model.PlayerImageID)})
}

// GetImage serves a stored image of the current campaign.
func (s *Server) GetImage(c *gin.Context) {
	st, ok := s.current(c)
	if !ok {
		return
	}
	data, mime, err := st.ReadImage(c.Param("category"), c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, mime, data)
}
