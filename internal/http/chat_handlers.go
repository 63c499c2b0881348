package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"phuongnam/internal/service"
)

type chatReq struct {
	Message string            `json:"message"`
	History []service.Message `json:"history"`
}

// @Summary Chat with the restaurant assistant
// @Tags chat
// @Accept json
// @Produce json
// @Param input body chatReq true "User message plus prior conversation"
// @Success 200 {object} Envelope{data=service.ChatReply}
// @Failure 400 {object} Envelope
// @Router /chat [post]
func (s *Server) postChat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid json")
		return
	}
	reply, err := s.chat.Chat(c, req.Message, req.History)
	if err != nil {
		abortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "Chat reply generated successfully", reply)
}
