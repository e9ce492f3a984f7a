package server_response

import (
	"certschool.io/infrastructure/logger"
	"github.com/gin-gonic/gin"
)

type ginResponder struct{}

var Responder = ginResponder{}

func (gr ginResponder) ginContext(ctx interface{}) (*gin.Context, bool) {
	ginCtx, ok := (ctx).(*gin.Context)
	if !ok {
		logger.Error("could not transform *interface{} to gin.Context in serverResponse package", logger.LoggerOptions{
			Key:  "payload",
			Data: ctx,
		})
		return nil, false
	}
	ginCtx.Abort()
	return ginCtx, true
}

// Respond writes body as JSON unchanged.
func (gr ginResponder) Respond(ctx interface{}, code int, body interface{}) {
	ginCtx, ok := gr.ginContext(ctx)
	if !ok {
		return
	}
	ginCtx.JSON(code, body)
}

// RespondWithData wraps payload as {status: true, data: payload}.
func (gr ginResponder) RespondWithData(ctx interface{}, code int, payload interface{}) {
	gr.Respond(ctx, code, map[string]any{
		"status": true,
		"data":   payload,
	})
}

// RespondWithError writes {error, message} plus the individual validation
// messages when there are any.
func (gr ginResponder) RespondWithError(ctx interface{}, code int, errName string, message string, errs []error) {
	response := map[string]any{
		"error":   errName,
		"message": message,
	}
	if len(errs) != 0 {
		errMsgs := []string{}
		for _, err := range errs {
			errMsgs = append(errMsgs, err.Error())
		}
		response["errors"] = errMsgs
	}
	gr.Respond(ctx, code, response)
}

func (gr ginResponder) RespondWithText(ctx interface{}, code int, text string) {
	ginCtx, ok := gr.ginContext(ctx)
	if !ok {
		return
	}
	ginCtx.String(code, text)
}
