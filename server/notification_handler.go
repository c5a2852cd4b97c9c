package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/worklinehq/workline/errors"
	"github.com/worklinehq/workline/server/response"
)

func (s *Server) handleGetNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		notifications, err := s.NotificationService.List(user.ID)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		response.JSON(c, "Notifications retrieved successfully", http.StatusOK, notifications, nil)
	}
}

func (s *Server) handleMarkNotificationRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		notificationID, err := parseUserIDParam(c, "id")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("Invalid notification ID", http.StatusBadRequest))
			return
		}

		if err := s.NotificationService.MarkRead(notificationID, user.ID); err != nil {
			if apiErr, ok := err.(*errs.Error); ok {
				response.JSON(c, "", apiErr.Status, nil, apiErr)
				return
			}
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		response.JSON(c, "Notification marked as read", http.StatusOK, gin.H{"success": true}, nil)
	}
}

func (s *Server) handleGetUnreadNotificationCount() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		count, err := s.NotificationService.UnreadCount(user.ID)
		if err != nil {
			response.JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		response.JSON(c, "Unread count retrieved successfully", http.StatusOK, gin.H{"count": count}, nil)
	}
}
