package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/layer-3/dropregards/core"
)

type apiError struct {
	status  int
	title   string
	message string
}

// knownErrors is checked in order; the first match wins. An empty message
// means the error text itself is shown.
var knownErrors = []struct {
	target error
	apiError
}{
	{core.ErrValidation, apiError{http.StatusBadRequest, "Invalid request", ""}},
	{core.ErrInvalidSignature, apiError{http.StatusUnauthorized, "Invalid signature", "The wallet signature could not be verified."}},
	{core.ErrInvalidNonce, apiError{http.StatusUnauthorized, "Invalid nonce", "The signed message was not issued to this wallet. Request a new nonce."}},
	{core.ErrNonceNotFound, apiError{http.StatusUnauthorized, "Invalid nonce", "The nonce has expired or was already used. Request a new nonce."}},
	{core.ErrMissingToken, apiError{http.StatusUnauthorized, "Authentication token is missing", "Access denied. Please provide a valid token."}},
	{core.ErrTokenExpired, apiError{http.StatusUnauthorized, "Token expired", "Authentication token has expired. Please log in again."}},
	{core.ErrInvalidToken, apiError{http.StatusUnauthorized, "Invalid token", "Invalid authentication token. Please log in again."}},
	{core.ErrNotFound, apiError{http.StatusNotFound, "Not Found", ""}},
	{core.ErrConflict, apiError{http.StatusConflict, "Conflict", ""}},
	{core.ErrVerificationFailed, apiError{http.StatusBadRequest, "Invalid transaction", "The transaction could not be verified on chain."}},
}

var internalError = apiError{http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred."}

func toAPIError(err error) apiError {
	for _, known := range knownErrors {
		if errors.Is(err, known.target) {
			e := known.apiError
			if e.message == "" {
				e.message = err.Error()
			}
			return e
		}
	}
	return internalError
}

// abortWithError writes the response for err and stops the handler chain
func abortWithError(c *gin.Context, log *zap.Logger, err error) {
	e := toAPIError(err)
	if e.status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(e.status, gin.H{"error": e.title, "message": e.message})
}
