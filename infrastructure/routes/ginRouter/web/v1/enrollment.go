package routev1

import (
	apperrors "certschool.io/application/appErrors"
	"certschool.io/application/controller"
	"certschool.io/application/controller/dto"
	"certschool.io/application/interfaces"
	middlewares "certschool.io/infrastructure/middleware"
	"github.com/gin-gonic/gin"
)

func EnrollmentRouter(router *gin.RouterGroup) {
	router.POST("/enroll", middlewares.UserAuthenticationMiddleware(), func(ctx *gin.Context) {
		appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
		var body dto.EnrollDTO
		if err := ctx.ShouldBindJSON(&body); err != nil {
			apperrors.ErrorProcessingPayload(ctx)
			return
		}
		controller.Enroll(&interfaces.ApplicationContext[dto.EnrollDTO]{
			Ctx:  ctx,
			Body: &body,
			Keys: appContext.Keys,
		})
	})

	router.GET("/billing", middlewares.UserAuthenticationMiddleware(), func(ctx *gin.Context) {
		appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
		controller.FetchBilling(&interfaces.ApplicationContext[any]{
			Ctx:  ctx,
			Keys: appContext.Keys,
		})
	})
}
