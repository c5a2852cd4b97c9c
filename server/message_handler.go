package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	errs "github.com/worklinehq/workline/errors"
	"github.com/worklinehq/workline/models"
	"github.com/worklinehq/workline/server/response"
)

// handleSendMessage is the synchronous fallback to the realtime channel.
// The stored message is still fanned out to any live connections of both
// parties.
func (s *Server) handleSendMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		var req models.SendMessageRequest
		if err := c.ShouldBind(&req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("Invalid request body", http.StatusBadRequest))
			return
		}

		msg, err := s.MessageService.SendMessage(user.ID, req.RecipientID, req.Content)
		if err != nil {
			if apiErr, ok := err.(*errs.Error); ok {
				response.JSON(c, "", apiErr.Status, nil, apiErr)
				return
			}
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		s.Hub.SendToUsers(msg, msg.SenderID, msg.RecipientID)

		response.JSON(c, "Message sent successfully", http.StatusCreated, msg, nil)
	}
}

// handleGetConversation returns the dialog with one companion, oldest first.
func (s *Server) handleGetConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		companionID, err := parseUserIDParam(c, "userID")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("Invalid user ID", http.StatusBadRequest))
			return
		}

		messages, err := s.MessageService.GetConversation(user.ID, companionID)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		response.JSON(c, "Conversation retrieved successfully", http.StatusOK, messages, nil)
	}
}

// handleMarkConversationRead flips every unread message from the companion
// to the caller. Calling it again is a no-op.
func (s *Server) handleMarkConversationRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		companionID, err := parseUserIDParam(c, "userID")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("Invalid user ID", http.StatusBadRequest))
			return
		}

		if err := s.MessageService.MarkConversationRead(user.ID, companionID); err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		response.JSON(c, "Conversation marked as read", http.StatusOK, gin.H{"success": true}, nil)
	}
}

func (s *Server) handleGetInbox() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		inbox, err := s.MessageService.GetInbox(user.ID)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		response.JSON(c, "Inbox retrieved successfully", http.StatusOK, inbox, nil)
	}
}

func parseUserIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
