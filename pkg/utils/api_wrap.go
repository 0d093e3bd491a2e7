package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"facturo/pkg/i18n"
	"facturo/pkg/validation"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Key     string      `json:"key,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, key string) {
	respond(c, http.StatusOK, true, key, data)
}

func RespondCreated(c *gin.Context, data interface{}, key string) {
	respond(c, http.StatusCreated, true, key, data)
}

func RespondError(c *gin.Context, code int, key string) {
	respond(c, code, false, key, nil)
}

// AbortWithError writes the error envelope and stops the handler chain.
func AbortWithError(c *gin.Context, code int, key string) {
	RespondError(c, code, key)
	c.Abort()
}

func RespondValidationError(c *gin.Context, fields map[string][]string) {
	respond(c, http.StatusUnprocessableEntity, false, i18n.KeyValidation, fields)
}

func respond(c *gin.Context, code int, success bool, key string, data interface{}) {
	c.JSON(code, APIResponse{
		Success: success,
		Message: i18n.T(i18n.FromContext(c.Request.Context()), key),
		Key:     key,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

// RespondBindError reports a failed ShouldBind call: validator errors become
// 422 with translated field messages, anything else is a malformed body.
func RespondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		RespondValidationError(c, validation.Translate(i18n.FromContext(c.Request.Context()), verrs))
		return
	}
	RespondError(c, http.StatusBadRequest, i18n.KeyBadRequest)
}

func HandleServiceError(c *gin.Context, err error) {
	var verr *ValidationError

	switch {
	case errors.As(err, &verr):
		tag := i18n.FromContext(c.Request.Context())
		fields := make(map[string][]string, len(verr.Fields))
		for field, keys := range verr.Fields {
			for _, key := range keys {
				fields[field] = append(fields[field], i18n.T(tag, key))
			}
		}
		RespondValidationError(c, fields)
	case errors.Is(err, ErrNotFound):
		RespondError(c, http.StatusNotFound, i18n.KeyNotFound)
	case errors.Is(err, ErrForbidden):
		RespondError(c, http.StatusForbidden, i18n.KeyForbidden)
	case errors.Is(err, ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, i18n.KeyInvalidCredentials)
	case errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, i18n.KeyUnauthenticated)
	case errors.Is(err, ErrInvalidToken):
		RespondError(c, http.StatusUnauthorized, i18n.KeyTokenInvalid)
	case errors.Is(err, ErrInvalidResetToken):
		RespondError(c, http.StatusBadRequest, i18n.KeyResetTokenInvalid)
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, i18n.KeyInvalidPage)
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, i18n.KeyInvalidPageSize)
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, i18n.KeyBadRequest)
	case errors.Is(err, ErrDatabaseError):
		zap.L().Error("database error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusInternalServerError, i18n.KeyInternal)
	default:
		zap.L().Error("unhandled error", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
		RespondError(c, http.StatusInternalServerError, i18n.KeyInternal)
	}
}
