package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Suscripciones-api/internal/application/dto"
	"github.com/jhoicas/Suscripciones-api/internal/domain"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/Suscripciones-api/internal/domain/repository"
	"github.com/jhoicas/Suscripciones-api/pkg/logger"
)

// CreateOrderUseCase cumple la lista de deseos del comprador: valida
// pertenencia, resuelve módulos contra el catálogo, garantiza el módulo
// básico, calcula el total con precios instantánea y persiste la orden con
// sus líneas en una sola transacción. Luego entrega la orden al libro de
// suscripciones y notifica aprovisionamiento.
type CreateOrderUseCase struct {
	txRunner   TxRunner
	moduleRepo repository.ModuleRepository
	orderRepo  repository.OrderRepository // lecturas fuera de transacción
	members    MembershipChecker
	ledger     CreditLedger
	notifier   ProvisioningNotifier
	metrics    Metrics
	log        *logger.Logger
	now        Clock
}

// NewCreateOrderUseCase construye el caso de uso. now nil = time.Now.
func NewCreateOrderUseCase(
	txRunner TxRunner,
	moduleRepo repository.ModuleRepository,
	orderRepo repository.OrderRepository,
	members MembershipChecker,
	ledger CreditLedger,
	notifier ProvisioningNotifier,
	metrics Metrics,
	log *logger.Logger,
	now Clock,
) *CreateOrderUseCase {
	if now == nil {
		now = time.Now
	}
	return &CreateOrderUseCase{
		txRunner:   txRunner,
		moduleRepo: moduleRepo,
		orderRepo:  orderRepo,
		members:    members,
		ledger:     ledger,
		notifier:   notifier,
		metrics:    metrics,
		log:        log,
		now:        now,
	}
}

// CreateOrder crea la orden de módulos para la empresa.
//
// Reglas:
//   - El usuario debe pertenecer a la empresa (domain.ErrForbidden si no).
//   - Los ids se resuelven contra el catálogo; los inexistentes se descartan
//     en silencio. Conjunto resuelto vacío, o cualquier fallo del catálogo,
//     es domain.ErrModuleNotExists: jamás se crea una orden solo de ids
//     irresolubles.
//   - Si ningún módulo resuelto es básico, se sintetiza la línea del módulo
//     básico del catálogo; si el catálogo no tiene básico, la orden falla.
//   - Reenviar la misma petición crea una orden nueva: aquí no hay
//     deduplicación de idempotencia.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, userID, companyID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if userID == "" || companyID == "" || len(in.ModuleIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}

	isMember, err := uc.members.IsMember(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, domain.ErrForbidden
	}

	resolved, err := uc.resolveWithBaseline(ctx, in.ModuleIDs)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	order := &entity.Order{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		UserID:      userID,
		SaleDate:    now,
		Status:      entity.OrderStatusCompleted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	details := make([]*entity.OrderDetail, 0, len(resolved))
	total := decimal.Zero
	for _, module := range resolved {
		details = append(details, &entity.OrderDetail{
			ID:       uuid.New().String(),
			OrderID:  order.ID,
			ModuleID: module.ID,
			Price:    module.Price, // instantánea del precio de catálogo
		})
		total = total.Add(module.Price)
	}
	order.TotalAmount = total

	err = uc.txRunner.RunOrder(ctx, func(orderRepo repository.OrderRepository) error {
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		for _, detail := range details {
			if err := orderRepo.CreateDetail(ctx, detail); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sub, err := uc.ledger.CreateCreditsForOrder(ctx, order, details, companyID)
	if err != nil {
		return nil, err
	}

	grantedTypes := moduleTypes(resolved)
	if uc.notifier != nil {
		// Fuego y olvido: el aprovisionamiento externo no revierte la orden.
		if err := uc.notifier.NotifyModulesGranted(ctx, companyID, grantedTypes); err != nil {
			uc.log.Warn().Err(err).
				Str("order_id", order.ID).
				Str("company_id", companyID).
				Msg("notificación de aprovisionamiento fallida")
		}
	}

	uc.metrics.IncOrderCreated()
	uc.metrics.AddCreditsGranted(len(details))

	uc.log.Info().
		Str("order_id", order.ID).
		Str("company_id", companyID).
		Str("subscription_id", sub.ID).
		Str("total", total.StringFixed(2)).
		Int("lines", len(details)).
		Msg("orden creada")

	return uc.toResponse(order, details, resolved, sub.ID), nil
}

// resolveWithBaseline resuelve los ids pedidos y, si hace falta, agrega el
// módulo básico: resolver primero, anexar después, sobre una lista plana.
// Cualquier fallo del catálogo se traduce a ErrModuleNotExists: para quien
// ordena, "no existe" y "el catálogo falló" colapsan en "no se puede armar
// esta orden".
func (uc *CreateOrderUseCase) resolveWithBaseline(ctx context.Context, moduleIDs []string) ([]*entity.Module, error) {
	byID, err := uc.moduleRepo.GetByIDs(ctx, moduleIDs)
	if err != nil {
		uc.log.Error().Err(err).Msg("fallo resolviendo módulos del catálogo")
		return nil, domain.ErrModuleNotExists
	}
	if len(byID) == 0 {
		return nil, domain.ErrModuleNotExists
	}

	// Preservar el orden pedido por el comprador, descartando repetidos.
	resolved := make([]*entity.Module, 0, len(byID)+1)
	seen := make(map[string]struct{}, len(byID))
	hasBaseline := false
	for _, id := range moduleIDs {
		module, ok := byID[id]
		if !ok {
			continue // id inexistente: ausencia silenciosa
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		resolved = append(resolved, module)
		if module.IsBasic() {
			hasBaseline = true
		}
	}

	if !hasBaseline {
		basic, err := uc.moduleRepo.GetByType(ctx, entity.ModuleTypeBasic)
		if err != nil {
			uc.log.Error().Err(err).Msg("fallo buscando el módulo básico")
			return nil, domain.ErrModuleNotExists
		}
		if basic == nil {
			return nil, domain.ErrModuleNotExists
		}
		resolved = append(resolved, basic)
		uc.metrics.IncBaselineSynthesized()
	}

	return resolved, nil
}

// GetOrder obtiene una orden de la empresa con sus líneas.
func (uc *CreateOrderUseCase) GetOrder(ctx context.Context, companyID, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	details, err := uc.orderRepo.GetDetailsByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}
	modules, err := uc.modulesForDetails(ctx, details)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(order, details, modules, ""), nil
}

// ListOrders lista las órdenes de la empresa con paginación (sin líneas).
func (uc *CreateOrderUseCase) ListOrders(ctx context.Context, companyID string, limit, offset int) (*dto.OrderListResponse, error) {
	list, err := uc.orderRepo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, dto.OrderResponse{
			ID:          o.ID,
			CompanyID:   o.CompanyID,
			UserID:      o.UserID,
			TotalAmount: o.TotalAmount,
			SaleDate:    o.SaleDate,
			Status:      o.Status,
			Details:     []dto.OrderDetailResponse{},
		})
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *CreateOrderUseCase) modulesForDetails(ctx context.Context, details []*entity.OrderDetail) ([]*entity.Module, error) {
	ids := make([]string, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.ModuleID)
	}
	byID, err := uc.moduleRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Module, 0, len(byID))
	for _, id := range ids {
		if m, ok := byID[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// moduleTypes devuelve los tipos de los módulos resueltos, deduplicados y en
// el orden de la orden.
func moduleTypes(modules []*entity.Module) []string {
	seen := make(map[string]struct{}, len(modules))
	out := make([]string, 0, len(modules))
	for _, m := range modules {
		if _, ok := seen[m.Type]; ok {
			continue
		}
		seen[m.Type] = struct{}{}
		out = append(out, m.Type)
	}
	return out
}

func (uc *CreateOrderUseCase) toResponse(order *entity.Order, details []*entity.OrderDetail, modules []*entity.Module, subscriptionID string) *dto.OrderResponse {
	byID := make(map[string]*entity.Module, len(modules))
	for _, m := range modules {
		byID[m.ID] = m
	}
	resp := &dto.OrderResponse{
		ID:             order.ID,
		CompanyID:      order.CompanyID,
		UserID:         order.UserID,
		TotalAmount:    order.TotalAmount,
		SaleDate:       order.SaleDate,
		Status:         order.Status,
		SubscriptionID: subscriptionID,
		Details:        make([]dto.OrderDetailResponse, 0, len(details)),
	}
	for _, d := range details {
		item := dto.OrderDetailResponse{
			ID:       d.ID,
			ModuleID: d.ModuleID,
			Price:    d.Price,
		}
		if m, ok := byID[d.ModuleID]; ok {
			item.ModuleName = m.Name
			item.ModuleType = m.Type
		}
		resp.Details = append(resp.Details, item)
	}
	return resp
}
