package routev1

import (
	apperrors "certschool.io/application/appErrors"
	"certschool.io/application/controller"
	"certschool.io/application/controller/dto"
	"certschool.io/application/interfaces"
	"github.com/gin-gonic/gin"
)

func PaymentRouter(router *gin.RouterGroup) {
	paymentRouter := router.Group("/payments")
	{
		paymentRouter.POST("/card/initiate", func(ctx *gin.Context) {
			var body dto.InitiatePaymentDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.InitiateCardPayment(&interfaces.ApplicationContext[dto.InitiatePaymentDTO]{
				Ctx:    ctx,
				Body:   &body,
				Header: ctx.Request.Header,
			})
		})

		paymentRouter.POST("/paystack/initiate", func(ctx *gin.Context) {
			var body dto.InitiatePaymentDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.InitiatePaystackPayment(&interfaces.ApplicationContext[dto.InitiatePaymentDTO]{
				Ctx:    ctx,
				Body:   &body,
				Header: ctx.Request.Header,
			})
		})

		// the bank-redirect checkout runs on the order-tracking provider
		for _, path := range []string{"/order-tracking/initiate", "/bank-redirect/initiate"} {
			paymentRouter.POST(path, func(ctx *gin.Context) {
				var body dto.InitiatePaymentDTO
				if err := ctx.ShouldBindJSON(&body); err != nil {
					apperrors.ErrorProcessingPayload(ctx)
					return
				}
				controller.InitiateOrderTrackingPayment(&interfaces.ApplicationContext[dto.InitiatePaymentDTO]{
					Ctx:    ctx,
					Body:   &body,
					Header: ctx.Request.Header,
				})
			})
		}

		paymentRouter.GET("/bank-redirect/verify", func(ctx *gin.Context) {
			var query dto.VerifyPaymentDTO
			if err := ctx.ShouldBindQuery(&query); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.VerifyPayment(&interfaces.ApplicationContext[dto.VerifyPaymentDTO]{
				Ctx:  ctx,
				Body: &query,
			})
		})

		paymentRouter.GET("/order-tracking/verify", func(ctx *gin.Context) {
			var query dto.VerifyPaymentDTO
			if err := ctx.ShouldBindQuery(&query); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.VerifyOrderTrackingPayment(&interfaces.ApplicationContext[dto.VerifyPaymentDTO]{
				Ctx:  ctx,
				Body: &query,
			})
		})

		for _, path := range []string{"/paystack/webhook", "/bank-redirect/webhook"} {
			paymentRouter.POST(path, func(ctx *gin.Context) {
				body, err := ctx.GetRawData()
				if err != nil {
					apperrors.ErrorProcessingPayload(ctx)
					return
				}
				controller.ProcessPaystackWebhook(&interfaces.ApplicationContext[[]byte]{
					Ctx:    ctx,
					Body:   &body,
					Header: ctx.Request.Header,
				})
			})
		}

		for _, path := range []string{"/order-tracking/ipn", "/bank-redirect/ipn"} {
			paymentRouter.Match([]string{"GET", "POST"}, path, processIPN)
		}
	}
}

// processIPN reads the notification from the query string, falling back to
// a JSON body for POSTs.
func processIPN(ctx *gin.Context) {
	var query dto.VerifyPaymentDTO
	ctx.ShouldBindQuery(&query)
	if query.OrderTrackingID == "" && ctx.Request.Method == "POST" {
		var body struct {
			OrderTrackingID        string `json:"OrderTrackingId"`
			OrderMerchantReference string `json:"OrderMerchantReference"`
			OrderNotificationType  string `json:"OrderNotificationType"`
		}
		if err := ctx.ShouldBindJSON(&body); err == nil {
			query.OrderTrackingID = body.OrderTrackingID
			query.OrderMerchantReference = body.OrderMerchantReference
			query.OrderNotificationType = body.OrderNotificationType
		}
	}
	controller.ProcessOrderTrackingIPN(&interfaces.ApplicationContext[dto.VerifyPaymentDTO]{
		Ctx:  ctx,
		Body: &query,
	})
}
