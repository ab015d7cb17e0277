package twin

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/livechat/errors"
)

var (
	errChatNotFound = errors.New("chat not found")
	errChatActive   = errors.New("chat is already active")
	errChatInactive = errors.New("chat is inactive")
)

// respondError writes err in the API error format. Non-AppErrors become 500s.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal(err)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToResponse())
}

func abort(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.HTTPStatus, err.ToResponse())
}

// chatError maps store errors to API errors.
func chatError(err error, chatID string) *apperrors.AppError {
	switch {
	case errors.Is(err, errChatNotFound):
		return apperrors.NotFound("chat", chatID)
	case errors.Is(err, errChatActive):
		return apperrors.ChatActive(chatID)
	case errors.Is(err, errChatInactive):
		return apperrors.ChatInactive(chatID)
	default:
		return apperrors.Internal(err)
	}
}
