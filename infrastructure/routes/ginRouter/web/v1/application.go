package routev1

import (
	apperrors "certschool.io/application/appErrors"
	"certschool.io/application/controller"
	"certschool.io/application/controller/dto"
	"certschool.io/application/interfaces"
	middlewares "certschool.io/infrastructure/middleware"
	"github.com/gin-gonic/gin"
)

func ApplicationRouter(router *gin.RouterGroup) {
	router.POST("/applications", middlewares.UserAuthenticationMiddleware(), func(ctx *gin.Context) {
		appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
		var body dto.CreateApplicationDTO
		if err := ctx.ShouldBindJSON(&body); err != nil {
			apperrors.ErrorProcessingPayload(ctx)
			return
		}
		controller.CreateApplication(&interfaces.ApplicationContext[dto.CreateApplicationDTO]{
			Ctx:  ctx,
			Body: &body,
			Keys: appContext.Keys,
		})
	})

	adminRouter := router.Group("/admin")
	adminRouter.Use(middlewares.UserAuthenticationMiddleware())
	{
		adminRouter.PATCH("/applications/:id/status", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.UpdateApplicationStatusDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.UpdateApplicationStatus(&interfaces.ApplicationContext[dto.UpdateApplicationStatusDTO]{
				Ctx:   ctx,
				Body:  &body,
				Keys:  appContext.Keys,
				Param: map[string]string{"id": ctx.Param("id")},
			})
		})

		adminRouter.PATCH("/enrollments/:id/payment-status", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.UpdateEnrollmentPaymentStatusDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.UpdateEnrollmentPaymentStatus(&interfaces.ApplicationContext[dto.UpdateEnrollmentPaymentStatusDTO]{
				Ctx:   ctx,
				Body:  &body,
				Keys:  appContext.Keys,
				Param: map[string]string{"id": ctx.Param("id")},
			})
		})
	}
}
