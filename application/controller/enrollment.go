package controller

import (
	"net/http"

	apperrors "certschool.io/application/appErrors"
	"certschool.io/application/controller/dto"
	"certschool.io/application/interfaces"
	server_response "certschool.io/infrastructure/serverResponse"
	"certschool.io/infrastructure/validator"
)

func Enroll(ctx *interfaces.ApplicationContext[dto.EnrollDTO]) {
	if valiedationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body); valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr)
		return
	}
	enrollment, err := Services.Admission.Enroll(ctx.Ctx, ctx.GetStringContextData("UserID"), ctx.Body.CertificationID)
	if err != nil {
		apperrors.HandleError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, map[string]any{
		"success":    true,
		"enrollment": enrollment,
	})
}

func FetchBilling(ctx *interfaces.ApplicationContext[any]) {
	summary, err := Services.Billing.ForLearner(ctx.Ctx, ctx.GetStringContextData("UserID"))
	if err != nil {
		apperrors.HandleError(ctx.Ctx, err)
		return
	}
	server_response.Responder.RespondWithData(ctx.Ctx, http.StatusOK, summary)
}
