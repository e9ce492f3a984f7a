package billing_usecases

import (
	"context"
	"strings"

	apperrors "certschool.io/application/appErrors"
	"certschool.io/application/utils"
	"certschool.io/entities"
	"github.com/shopspring/decimal"
)

// TaxRate is applied to every certification's base price.
var TaxRate = decimal.RequireFromString("0.16")

const UnknownCertificationTitle = "Unknown certification"

type BillingLine struct {
	Enrollment    entities.UserEnrollment `json:"enrollment"`
	Certification entities.Certification  `json:"certification"`
	// Missing is set when the certification could not be found; the line
	// then carries a zero price.
	Missing   bool    `json:"missing,omitempty"`
	BasePrice float64 `json:"basePrice"`
	Tax       float64 `json:"tax"`
	Total     float64 `json:"total"`
}

type BillingTotals struct {
	Count        int     `json:"count"`
	TotalCost    float64 `json:"totalCost"`
	TotalPaid    float64 `json:"totalPaid"`
	TotalBalance float64 `json:"totalBalance"`
}

type BillingSummary struct {
	Enrollments []BillingLine `json:"enrollments"`
	Totals      BillingTotals `json:"totals"`
}

// ComputeBilling prices each enrollment and sums the totals. An enrollment
// only counts as paid when its paymentStatus is paid.
func ComputeBilling(enrollments []entities.UserEnrollment, certifications []entities.Certification) BillingSummary {
	byID := make(map[string]entities.Certification, len(certifications))
	for _, c := range certifications {
		byID[c.ID] = c
	}

	summary := BillingSummary{Enrollments: make([]BillingLine, 0, len(enrollments))}
	totalCost, totalPaid := decimal.Zero, decimal.Zero
	for _, enrollment := range enrollments {
		certification, found := byID[enrollment.CertificationID]
		if !found {
			certification = entities.Certification{
				ID:    enrollment.CertificationID,
				Title: UnknownCertificationTitle,
			}
		}
		base, tax, total := Price(decimal.NewFromFloat(certification.Price))
		summary.Enrollments = append(summary.Enrollments, BillingLine{
			Enrollment:    enrollment,
			Certification: certification,
			Missing:       !found,
			BasePrice:     base.InexactFloat64(),
			Tax:           tax.InexactFloat64(),
			Total:         total.InexactFloat64(),
		})
		totalCost = totalCost.Add(total)
		if enrollment.PaymentStatus == entities.EnrollmentPaymentPaid {
			totalPaid = totalPaid.Add(total)
		}
	}
	summary.Totals = BillingTotals{
		Count:        len(enrollments),
		TotalCost:    utils.RoundMoney(totalCost).InexactFloat64(),
		TotalPaid:    utils.RoundMoney(totalPaid).InexactFloat64(),
		TotalBalance: utils.RoundMoney(totalCost.Sub(totalPaid)).InexactFloat64(),
	}
	return summary
}

// Price returns base, tax and total rounded to two decimal places.
func Price(base decimal.Decimal) (decimal.Decimal, decimal.Decimal, decimal.Decimal) {
	base = utils.RoundMoney(base)
	tax := utils.RoundMoney(base.Mul(TaxRate))
	return base, tax, base.Add(tax)
}

type EnrollmentLister interface {
	FindByUser(ctx context.Context, userID string) ([]entities.UserEnrollment, error)
}

type CertificationLister interface {
	FindByIDs(ctx context.Context, ids []string) ([]entities.Certification, error)
}

type BillingService struct {
	Enrollments    EnrollmentLister
	Certifications CertificationLister
}

func (b *BillingService) ForLearner(ctx context.Context, learnerID string) (*BillingSummary, error) {
	if strings.TrimSpace(learnerID) == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	enrollments, err := b.Enrollments.FindByUser(ctx, learnerID)
	if err != nil {
		return nil, apperrors.Persistence("list enrollments", err)
	}
	ids := []string{}
	for _, e := range enrollments {
		if !utils.HasItemString(&ids, e.CertificationID) {
			ids = append(ids, e.CertificationID)
		}
	}
	certifications, err := b.Certifications.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Persistence("list certifications", err)
	}
	summary := ComputeBilling(enrollments, certifications)
	return &summary, nil
}
