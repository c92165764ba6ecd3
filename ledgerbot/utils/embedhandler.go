package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/guildforge/ledgerbot/internal/domain/contributions"
	"github.com/guildforge/ledgerbot/ledgerbot/ai"
	"github.com/guildforge/ledgerbot/ledgerbot/config"
	"github.com/guildforge/ledgerbot/ledgerbot/database/repositories"
)

// ResponseHandler provides standardized response methods for commands
type ResponseHandler struct{}

var EH = &ResponseHandler{}

// ErrorType represents different categories of errors for consistent handling
type ErrorType int

const (
	// UserError - bad input, rejected before anything is written
	UserError ErrorType = iota
	// SystemError - database failures, provider outages, internal errors
	SystemError
	// NotFoundError - requested resources don't exist
	NotFoundError
	// PermissionError - unauthorized actions
	PermissionError
	// BusinessLogicError - quotas and other rule violations
	BusinessLogicError
)

func getErrorPrefix(errorType ErrorType) string {
	switch errorType {
	case UserError:
		return "⚠️"
	case SystemError:
		return "🔧"
	case NotFoundError:
		return "🔍"
	case PermissionError:
		return "🚫"
	case BusinessLogicError:
		return "⏰"
	default:
		return "❌"
	}
}

func getErrorColor(errorType ErrorType) int {
	switch errorType {
	case UserError, BusinessLogicError:
		return config.WarningColor
	case NotFoundError:
		return config.InfoColor
	default:
		return config.ErrorColor
	}
}

// ClassifiedEmbed builds the embed every error response uses.
func ClassifiedEmbed(errorType ErrorType, message string) discord.Embed {
	return discord.Embed{
		Description: getErrorPrefix(errorType) + " " + message,
		Color:       getErrorColor(errorType),
	}
}

func SuccessEmbed(title, message string) discord.Embed {
	return discord.Embed{
		Title:       title,
		Description: message,
		Color:       config.SuccessColor,
	}
}

func InfoEmbed(title, message string) discord.Embed {
	return discord.Embed{
		Title:       title,
		Description: message,
		Color:       config.InfoColor,
	}
}

// CreateClassifiedError creates an error response with automatic categorization
func (h *ResponseHandler) CreateClassifiedError(event *handler.CommandEvent, errorType ErrorType, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{ClassifiedEmbed(errorType, message)},
		Flags:  ephemeralFor(errorType),
	})
}

// UpdateClassifiedError replaces a deferred response with an error.
func (h *ResponseHandler) UpdateClassifiedError(event *handler.CommandEvent, errorType ErrorType, message string) error {
	_, err := event.UpdateInteractionResponse(discord.MessageUpdate{
		Embeds: &[]discord.Embed{ClassifiedEmbed(errorType, message)},
	})
	return err
}

func ephemeralFor(errorType ErrorType) discord.MessageFlags {
	if errorType == UserError || errorType == PermissionError {
		return discord.MessageFlagEphemeral
	}
	return discord.MessageFlagsNone
}

func (h *ResponseHandler) CreateUserError(event *handler.CommandEvent, message string) error {
	return h.CreateClassifiedError(event, UserError, message)
}

func (h *ResponseHandler) CreateSystemError(event *handler.CommandEvent, message string) error {
	return h.CreateClassifiedError(event, SystemError, message)
}

func (h *ResponseHandler) CreateNotFoundError(event *handler.CommandEvent, resource, identifier string) error {
	return h.CreateClassifiedError(event, NotFoundError, fmt.Sprintf("%s '%s' not found", resource, identifier))
}

func (h *ResponseHandler) CreateBusinessLogicError(event *handler.CommandEvent, message string) error {
	return h.CreateClassifiedError(event, BusinessLogicError, message)
}

// CreateSuccessEmbed creates a standard success embed for command events
func (h *ResponseHandler) CreateSuccessEmbed(event *handler.CommandEvent, title, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{SuccessEmbed(title, message)},
	})
}

// CreateInfoEmbed creates a standard info embed for command events
func (h *ResponseHandler) CreateInfoEmbed(event *handler.CommandEvent, title, message string) error {
	return event.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{InfoEmbed(title, message)},
	})
}

// RespondError answers a command with the message and class of err. action
// completes "Failed to ..." for persistence errors.
func (h *ResponseHandler) RespondError(event *handler.CommandEvent, action string, err error) error {
	errorType, message := Describe(action, err)
	return h.CreateClassifiedError(event, errorType, message)
}

// Describe maps an error from the domain layers to what the member sees.
func Describe(action string, err error) (ErrorType, string) {
	var (
		validation *contributions.ValidationError
		limit      *ai.LimitError
		request    *ai.RequestError
	)
	switch {
	case errors.As(err, &validation):
		return UserError, validation.Reason
	case errors.As(err, &limit):
		return BusinessLogicError, limit.Error()
	case errors.As(err, &request):
		return SystemError, request.UserMessage()
	case errors.Is(err, ai.ErrUsageCheck):
		return SystemError, "Error checking usage limits"
	case repositories.IsNotFound(err):
		return NotFoundError, "Nothing was found for that request"
	case repositories.IsRepositoryError(err):
		return SystemError, fmt.Sprintf("Failed to %s, please try again later", action)
	}
	return ClassifyErrorByMessage(err.Error()), fmt.Sprintf("Failed to %s, please try again later", action)
}

// ClassifyErrorByMessage attempts to classify error type based on message content
func ClassifyErrorByMessage(message string) ErrorType {
	lowerMsg := strings.ToLower(message)

	switch {
	case strings.Contains(lowerMsg, "not found"),
		strings.Contains(lowerMsg, "no results"),
		strings.Contains(lowerMsg, "doesn't exist"):
		return NotFoundError
	case strings.Contains(lowerMsg, "invalid"),
		strings.Contains(lowerMsg, "must be"),
		strings.Contains(lowerMsg, "required"),
		strings.Contains(lowerMsg, "please provide"):
		return UserError
	case strings.Contains(lowerMsg, "limit"),
		strings.Contains(lowerMsg, "insufficient"),
		strings.Contains(lowerMsg, "already"):
		return BusinessLogicError
	case strings.Contains(lowerMsg, "permission"),
		strings.Contains(lowerMsg, "unauthorized"),
		strings.Contains(lowerMsg, "access denied"):
		return PermissionError
	}
	return SystemError
}
