package register

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pdvlojas/pdv-api/internal/application/dto"
	"github.com/pdvlojas/pdv-api/internal/domain"
	"github.com/pdvlojas/pdv-api/internal/domain/entity"
	"github.com/pdvlojas/pdv-api/internal/domain/repository"
)

// UseCase controla o caixa da loja: CLOSED → OPEN → CLOSED.
// Invariante: no máximo um caixa OPEN por loja (verificado aqui e garantido
// pelo índice único parcial na tabela).
type UseCase struct {
	sessionRepo repository.RegisterSessionRepository
}

// NewUseCase constrói o caso de uso do caixa.
func NewUseCase(sessionRepo repository.RegisterSessionRepository) *UseCase {
	return &UseCase{sessionRepo: sessionRepo}
}

// Open abre o caixa da loja do ator com o saldo inicial informado.
// Falha com ErrRegisterAlreadyOpen se a loja já tem caixa aberto.
func (uc *UseCase) Open(ctx context.Context, actor domain.Actor, openingBalance decimal.Decimal) (*dto.RegisterSessionResponse, error) {
	if openingBalance.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.sessionRepo.GetOpenByStore(ctx, actor.StoreID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrRegisterAlreadyOpen
	}
	session := &entity.RegisterSession{
		ID:             uuid.New().String(),
		StoreID:        actor.StoreID,
		Status:         entity.RegisterStatusOpen,
		OpenedBy:       actor.UserID,
		OpeningBalance: openingBalance,
		OpenedAt:       time.Now(),
	}
	// O índice único parcial cobre a corrida entre o check e o insert.
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return toResponse(session), nil
}

// Close fecha o caixa aberto da loja do ator.
func (uc *UseCase) Close(ctx context.Context, actor domain.Actor) (*dto.RegisterSessionResponse, error) {
	session, err := uc.sessionRepo.GetOpenByStore(ctx, actor.StoreID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNoOpenRegister
	}
	now := time.Now()
	ok, err := uc.sessionRepo.Close(ctx, session.ID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNoOpenRegister
	}
	session.Status = entity.RegisterStatusClosed
	session.ClosedAt = &now
	return toResponse(session), nil
}

// Current devolve o caixa aberto da loja do ator, ou ErrNoOpenRegister.
func (uc *UseCase) Current(ctx context.Context, actor domain.Actor) (*dto.RegisterSessionResponse, error) {
	session, err := uc.sessionRepo.GetOpenByStore(ctx, actor.StoreID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domain.ErrNoOpenRegister
	}
	return toResponse(session), nil
}

func toResponse(s *entity.RegisterSession) *dto.RegisterSessionResponse {
	resp := &dto.RegisterSessionResponse{
		ID:             s.ID,
		StoreID:        s.StoreID,
		Status:         s.Status,
		OpenedBy:       s.OpenedBy,
		OpeningBalance: s.OpeningBalance,
		OpenedAt:       s.OpenedAt.Format(time.RFC3339),
	}
	if s.ClosedAt != nil {
		resp.ClosedAt = s.ClosedAt.Format(time.RFC3339)
	}
	return resp
}
