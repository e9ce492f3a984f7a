package controller

import (
	"net/http"

	apperrors "certschool.io/application/appErrors"
	"certschool.io/application/controller/dto"
	"certschool.io/application/interfaces"
	application_usecases "certschool.io/application/usecases/applications"
	"certschool.io/entities"
	server_response "certschool.io/infrastructure/serverResponse"
	"certschool.io/infrastructure/validator"
)

func CreateApplication(ctx *interfaces.ApplicationContext[dto.CreateApplicationDTO]) {
	if valiedationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body); valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr)
		return
	}
	application, err := Services.Applications.CreateApplication(ctx.Ctx, ctx.GetStringContextData("UserID"), application_usecases.CreateApplicationInput{
		FirstName:       ctx.Body.FirstName,
		LastName:        ctx.Body.LastName,
		Email:           ctx.Body.Email,
		Phone:           ctx.Body.Phone,
		ProgramName:     ctx.Body.ProgramName,
		ProgramCategory: ctx.Body.ProgramCategory,
		CertificationID: ctx.Body.CertificationID,
	})
	if err != nil {
		apperrors.HandleError(ctx.Ctx, err)
		return
	}
	server_response.Responder.RespondWithData(ctx.Ctx, http.StatusCreated, application)
}

func UpdateApplicationStatus(ctx *interfaces.ApplicationContext[dto.UpdateApplicationStatusDTO]) {
	if valiedationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body); valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr)
		return
	}
	application, err := Services.Applications.UpdateStatus(ctx.Ctx, ctx.GetStringContextData("UserID"), ctx.Param["id"], entities.ApplicationStatus(ctx.Body.Status))
	if err != nil {
		apperrors.HandleError(ctx.Ctx, err)
		return
	}
	server_response.Responder.RespondWithData(ctx.Ctx, http.StatusOK, application)
}

func UpdateEnrollmentPaymentStatus(ctx *interfaces.ApplicationContext[dto.UpdateEnrollmentPaymentStatusDTO]) {
	if valiedationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body); valiedationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, valiedationErr)
		return
	}
	enrollment, err := Services.Applications.SetEnrollmentPaymentStatus(ctx.Ctx, ctx.GetStringContextData("UserID"), ctx.Param["id"], entities.EnrollmentPaymentStatus(ctx.Body.PaymentStatus))
	if err != nil {
		apperrors.HandleError(ctx.Ctx, err)
		return
	}
	server_response.Responder.RespondWithData(ctx.Ctx, http.StatusOK, enrollment)
}
