// Package sales implements the point-of-sale sessions: open per machine, add
// scanned items with atomic stock decrements, close with final totals.
package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/automaten-pro/automaten-api/internal/application/dto"
	"github.com/automaten-pro/automaten-api/internal/application/inventory"
	"github.com/automaten-pro/automaten-api/internal/domain"
	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
	"github.com/automaten-pro/automaten-api/internal/observability"
	"github.com/automaten-pro/automaten-api/pkg/logger"
)

// UseCase drives the sales session lifecycle. At most one open session exists
// per machine; the DB enforces this with a partial unique index.
type UseCase struct {
	txRunner    TxRunner
	salesRepo   repository.SalesRepository
	productRepo repository.ProductRepository
	notifier    Notifier
	log         *logger.Logger
}

// NewUseCase builds the sales use case.
func NewUseCase(
	txRunner TxRunner,
	salesRepo repository.SalesRepository,
	productRepo repository.ProductRepository,
	notifier Notifier,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		salesRepo:   salesRepo,
		productRepo: productRepo,
		notifier:    notifier,
		log:         log,
	}
}

// OpenSession opens a session for the machine. Fails with
// ErrSessionAlreadyOpen when one is still open.
func (uc *UseCase) OpenSession(ctx context.Context, machineID, userID string) (*dto.SessionResponse, error) {
	if machineID == "" {
		return nil, domain.ErrInvalidInput
	}
	open, err := uc.salesRepo.GetOpenByMachine(machineID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, domain.ErrSessionAlreadyOpen
	}

	session := &entity.SalesSession{
		ID:           uuid.New().String(),
		MachineID:    machineID,
		Status:       entity.SessionStatusOpen,
		TotalNet:     decimal.Zero,
		TotalVAT:     decimal.Zero,
		TotalDeposit: decimal.Zero,
		TotalGross:   decimal.Zero,
		OpenedBy:     userID,
		OpenedAt:     time.Now(),
	}
	// the partial unique index catches the race between the check and here
	if err := uc.salesRepo.CreateSession(session); err != nil {
		return nil, err
	}

	uc.log.Info().Str("session_id", session.ID).Str("machine_id", machineID).Msg("sales session opened")
	return sessionResponse(session), nil
}

// AddItem books one sold line into an open session. The stock decrement and
// the line commit together; a shortfall rolls both back.
func (uc *UseCase) AddItem(ctx context.Context, sessionID string, req dto.AddItemRequest, userID string) (*dto.SessionItemDTO, error) {
	session, err := uc.salesRepo.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	if session.Status != entity.SessionStatusOpen {
		return nil, domain.ErrSessionClosed
	}
	if req.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := uc.productRepo.GetByBarcode(req.Barcode)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active() {
		return nil, domain.ErrProductNotFound
	}

	item := &entity.SalesItem{
		ID:        uuid.New().String(),
		SessionID: session.ID,
		ProductID: product.ID,
		Quantity:  req.Quantity,
		UnitPrice: product.SellPrice,
		VATRate:   product.VATRate,
		Deposit:   product.Deposit,
		LineTotal: product.SellPrice.Add(product.Deposit).Mul(decimal.NewFromInt(int64(req.Quantity))),
		CreatedAt: time.Now(),
	}

	err = uc.txRunner.RunSale(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		salesRepo repository.SalesRepository,
	) error {
		if err := salesRepo.AddItem(item); err != nil {
			return err
		}
		_, err := inventory.ApplyMovementInTx(movRepo, productRepo, inventory.MovementInput{
			ProductID:     product.ID,
			Type:          entity.MovementTypeOut,
			Quantity:      req.Quantity,
			ReferenceType: "sales_item",
			ReferenceID:   item.ID,
			UserID:        userID,
		}, item.CreatedAt)
		return err
	})
	if err != nil {
		return nil, err
	}

	return itemDTO(item), nil
}

// CloseSession finalizes the session: totals are computed from the captured
// line prices and never change afterwards.
func (uc *UseCase) CloseSession(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	session, err := uc.salesRepo.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	if session.Status != entity.SessionStatusOpen {
		return nil, domain.ErrSessionClosed
	}

	items, err := uc.salesRepo.ListItems(session.ID)
	if err != nil {
		return nil, err
	}

	net, vat, deposit, gross := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	count := 0
	for _, it := range items {
		net = net.Add(it.Net())
		vat = vat.Add(it.VAT())
		deposit = deposit.Add(it.DepositTotal())
		gross = gross.Add(it.LineTotal)
		count += it.Quantity
	}
	now := time.Now()
	session.Status = entity.SessionStatusClosed
	session.TotalNet = net.Round(2)
	session.TotalVAT = vat.Round(2)
	session.TotalDeposit = deposit.Round(2)
	session.TotalGross = gross.Round(2)
	session.ItemCount = count
	session.ClosedAt = &now

	if err := uc.salesRepo.CloseSession(session); err != nil {
		return nil, err
	}

	observability.SessionsClosedTotal.Inc()
	uc.log.Info().
		Str("session_id", session.ID).
		Str("machine_id", session.MachineID).
		Int("items", count).
		Str("gross", session.TotalGross.StringFixed(2)).
		Msg("sales session closed")

	if uc.notifier != nil {
		uc.notifier.SessionClosed(session, items)
	}
	return sessionResponse(session), nil
}

// GetSessionDetails returns the session with its items.
func (uc *UseCase) GetSessionDetails(ctx context.Context, sessionID string) (*dto.SessionDetailsResponse, error) {
	session, err := uc.salesRepo.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	items, err := uc.salesRepo.ListItems(session.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.SessionDetailsResponse{Session: *sessionResponse(session)}
	out.Items = make([]dto.SessionItemDTO, 0, len(items))
	for _, it := range items {
		out.Items = append(out.Items, *itemDTO(it))
	}
	return out, nil
}

// ListSessions pages through the sessions of a period, newest first.
func (uc *UseCase) ListSessions(ctx context.Context, from, to time.Time, page dto.PageRequest) ([]dto.SessionResponse, error) {
	page.DefaultPage()
	sessions, err := uc.salesRepo.ListSessions(from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, *sessionResponse(s))
	}
	return out, nil
}

// MarkEmailSent flags the summary email as delivered.
func (uc *UseCase) MarkEmailSent(ctx context.Context, sessionID string) error {
	return uc.salesRepo.MarkEmailSent(sessionID)
}

func sessionResponse(s *entity.SalesSession) *dto.SessionResponse {
	return &dto.SessionResponse{
		ID:           s.ID,
		MachineID:    s.MachineID,
		Status:       s.Status,
		TotalNet:     s.TotalNet,
		TotalVAT:     s.TotalVAT,
		TotalDeposit: s.TotalDeposit,
		TotalGross:   s.TotalGross,
		ItemCount:    s.ItemCount,
		EmailSent:    s.EmailSent,
		OpenedAt:     s.OpenedAt,
		ClosedAt:     s.ClosedAt,
	}
}

func itemDTO(it *entity.SalesItem) *dto.SessionItemDTO {
	return &dto.SessionItemDTO{
		ID:        it.ID,
		ProductID: it.ProductID,
		Quantity:  it.Quantity,
		UnitPrice: it.UnitPrice,
		VATRate:   it.VATRate,
		Deposit:   it.Deposit,
		LineTotal: it.LineTotal,
		CreatedAt: it.CreatedAt,
	}
}
