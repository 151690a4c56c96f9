package billing

import (
	"context"
	"time"

	"github.com/eyrie/backend/internal/domain/billing"
	"github.com/eyrie/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentService records installment payments and serves reconciled
// statements. Recording runs entirely inside one transaction: the cursor
// check and the insert see the same ledger rows, and the storage-level
// uniqueness constraint rejects whichever racing duplicate loses.
type PaymentService struct {
	scope TransactionScope
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(scope TransactionScope) *PaymentService {
	return &PaymentService{scope: scope}
}

// Create records one installment payment. The targeted installment must
// be the next payable one in an unlocked category; anything already paid
// fails with INSTALLMENT_ALREADY_PAID, a monthly or half-yearly payment
// attempted before the allotment is settled fails with
// ALLOTMENT_NOT_PAID, and anything else past the cursor or in a locked
// category fails with INSTALLMENT_LOCKED.
func (s *PaymentService) Create(ctx context.Context, req CreatePaymentRequest) (*PaymentResponse, error) {
	category := billing.Category(req.Category)
	if err := billing.ValidateInstallmentNumber(category, req.InstallmentNumber); err != nil {
		return nil, err
	}

	var resp *PaymentResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		allocation, err := repos.AllocationRepo().FindByMembershipAndUnit(ctx, req.ClientMembership, req.UnitID)
		if err != nil {
			return err
		}

		payments, err := repos.PaymentRepo().FindByMembershipAndUnit(ctx, req.ClientMembership, req.UnitID)
		if err != nil {
			return err
		}
		ledger, err := billing.NewLedger(allocation.DiscountedPrice, payments)
		if err != nil {
			return err
		}

		if ledger.IsPaid(category, req.InstallmentNumber) {
			return shared.ErrInstallmentPaid
		}
		if !ledger.IsInstallmentPayable(category, req.InstallmentNumber) {
			if category.HasComputedDueDate() && !ledger.IsCategoryPayable(category) {
				return shared.ErrAllotmentNotPaid
			}
			return shared.ErrInstallmentLocked
		}

		amount := req.Amount
		if amount.IsZero() {
			amount = ledger.Schedule().ExpectedAmount(category, req.InstallmentNumber).Round(0)
		}

		paidDate := timeOrZero(req.PaidDate)
		payment, err := billing.NewPayment(req.ClientMembership, req.UnitID, category, req.InstallmentNumber, amount, billing.PaymentMethod(req.Method), paidDate)
		if err != nil {
			return err
		}
		payment.SetDueDate(ledger.NextDueDate(category))
		if req.Reference != "" {
			payment.SetReference(req.Reference)
		}
		if req.Remarks != "" {
			payment.SetRemarks(req.Remarks)
		}

		if err := repos.PaymentRepo().Save(ctx, payment); err != nil {
			return err
		}

		resp = ToPaymentResponse(payment)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetStatement builds the reconciled installment statement for one
// allocation
func (s *PaymentService) GetStatement(ctx context.Context, membership string, unitID uuid.UUID) (*StatementResponse, error) {
	var resp *StatementResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		c, err := repos.ClientRepo().FindByMembership(ctx, membership)
		if err != nil {
			return err
		}
		allocation, err := repos.AllocationRepo().FindByMembershipAndUnit(ctx, membership, unitID)
		if err != nil {
			return err
		}
		unit, err := repos.UnitRepo().FindByID(ctx, unitID)
		if err != nil {
			return err
		}
		payments, err := repos.PaymentRepo().FindByMembershipAndUnit(ctx, membership, unitID)
		if err != nil {
			return err
		}

		ledger, err := billing.NewLedger(allocation.DiscountedPrice, payments)
		if err != nil {
			return err
		}
		stmt := ledger.BuildStatement()

		resp = &StatementResponse{
			ClientMembership:   membership,
			ClientName:         c.Name,
			UnitID:             unitID,
			FloorID:            unit.FloorID,
			UnitNumber:         unit.Number,
			BasePrice:          unit.Price,
			DiscountPercentage: allocation.DiscountPercentage,
			TotalPayable:       stmt.Total,
			TotalReceived:      stmt.TotalReceived,
			TotalRemaining:     stmt.Total.Sub(stmt.TotalReceived),
			Progress:           stmt.Progress,
			AllotmentPaidDate:  ledger.AllotmentPaidDate(),
			Notes:              allocation.Notes,
			Categories:         make([]CategoryStatementResponse, 0, len(stmt.Categories)),
		}
		for _, cs := range stmt.Categories {
			csr := CategoryStatementResponse{
				Category:     string(cs.Category),
				Label:        cs.Label,
				Payable:      ledger.IsCategoryPayable(cs.Category),
				Installments: make([]InstallmentRowResponse, 0, len(cs.Rows)),
			}
			for _, row := range cs.Rows {
				r := InstallmentRowResponse{
					InstallmentNumber: row.InstallmentNumber,
					Expected:          row.Expected,
					State:             string(row.State),
					DueDate:           row.DueDate,
				}
				if row.Payment != nil {
					r.Payment = ToPaymentResponse(row.Payment)
				}
				csr.Installments = append(csr.Installments, r)
			}
			resp.Categories = append(resp.Categories, csr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetProgress reports how much of one allocation's payable has been
// received
func (s *PaymentService) GetProgress(ctx context.Context, membership string, unitID uuid.UUID) (*ProgressResponse, error) {
	var resp *ProgressResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		allocation, err := repos.AllocationRepo().FindByMembershipAndUnit(ctx, membership, unitID)
		if err != nil {
			return err
		}
		payments, err := repos.PaymentRepo().FindByMembershipAndUnit(ctx, membership, unitID)
		if err != nil {
			return err
		}
		ledger, err := billing.NewLedger(allocation.DiscountedPrice, payments)
		if err != nil {
			return err
		}
		resp = &ProgressResponse{
			ClientMembership: membership,
			UnitID:           unitID,
			TotalPayable:     allocation.DiscountedPrice,
			TotalReceived:    ledger.TotalReceived(),
			TotalRemaining:   allocation.DiscountedPrice.Sub(ledger.TotalReceived()),
			Progress:         ledger.Progress(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// List retrieves recorded payments, newest first. Optional membership
// and unit filters narrow the listing to one client or one allocation.
func (s *PaymentService) List(ctx context.Context, membership string, unitID uuid.UUID, filter shared.Filter) ([]PaymentResponse, error) {
	var responses []PaymentResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var payments []billing.Payment
		var err error
		switch {
		case membership != "" && unitID != uuid.Nil:
			payments, err = repos.PaymentRepo().FindByMembershipAndUnit(ctx, membership, unitID)
		case membership != "":
			payments, err = repos.PaymentRepo().FindByMembership(ctx, membership)
		default:
			payments, err = repos.PaymentRepo().FindAll(ctx, filter)
		}
		if err != nil {
			return err
		}
		responses = make([]PaymentResponse, len(payments))
		for i := range payments {
			responses[i] = *ToPaymentResponse(&payments[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
