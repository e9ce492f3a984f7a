package middlewares

import (
	"certschool.io/application/interfaces"
	"certschool.io/application/middlewares"
	"github.com/gin-gonic/gin"
)

func UserAuthenticationMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		appContext, next := middlewares.UserAuthenticationMiddleware(&interfaces.ApplicationContext[any]{
			Ctx:    ctx,
			Keys:   ctx.Keys,
			Header: ctx.Request.Header,
		}, ctx.GetHeader("Authorization"))
		if next {
			ctx.Set("AppContext", appContext)
			ctx.Next()
		}
	}
}
