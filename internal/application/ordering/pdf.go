package ordering

import (
	"context"
	"fmt"

	"github.com/jhoicas/Suscripciones-api/internal/domain"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
	"github.com/jhoicas/Suscripciones-api/internal/domain/repository"
)

// OrderDetailForPDF línea de orden enriquecida con los datos de catálogo que
// el comprobante imprime.
type OrderDetailForPDF struct {
	entity.OrderDetail
	ModuleName string
	ModuleType string
}

// OrderPDFGenerator genera el comprobante gráfico de una orden.
// Lo implementa *pdf.MarotoPDFGenerator.
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, order *entity.Order, company *entity.Company, details []OrderDetailForPDF) ([]byte, error)
}

// PDFUseCase genera el comprobante de compra (PDF) de una orden.
type PDFUseCase struct {
	orderRepo   repository.OrderRepository
	companyRepo repository.CompanyRepository
	moduleRepo  repository.ModuleRepository
	generator   OrderPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	orderRepo repository.OrderRepository,
	companyRepo repository.CompanyRepository,
	moduleRepo repository.ModuleRepository,
	generator OrderPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		orderRepo:   orderRepo,
		companyRepo: companyRepo,
		moduleRepo:  moduleRepo,
		generator:   generator,
	}
}

// DownloadOrderPDF recupera la orden con sus líneas, verifica que pertenece a
// la empresa del token y genera el comprobante.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la orden no existe.
//   - domain.ErrForbidden        si la orden no pertenece a la empresa del token.
func (uc *PDFUseCase) DownloadOrderPDF(ctx context.Context, companyID, orderID string) (pdfBytes []byte, filename string, err error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener orden: %w", err)
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}
	if order.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}

	rawDetails, err := uc.orderRepo.GetDetailsByOrderID(ctx, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener detalles: %w", err)
	}

	ids := make([]string, 0, len(rawDetails))
	for _, d := range rawDetails {
		ids = append(ids, d.ModuleID)
	}
	modules, err := uc.moduleRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener módulos: %w", err)
	}

	enriched := make([]OrderDetailForPDF, 0, len(rawDetails))
	for _, d := range rawDetails {
		name, typ := "Módulo "+d.ModuleID, "" // fallback
		if m, ok := modules[d.ModuleID]; ok {
			name, typ = m.Name, m.Type
		}
		enriched = append(enriched, OrderDetailForPDF{
			OrderDetail: *d,
			ModuleName:  name,
			ModuleType:  typ,
		})
	}

	pdfBytes, err = uc.generator.GenerateOrderPDF(ctx, order, company, enriched)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("orden_%s.pdf", order.ID)
	return pdfBytes, filename, nil
}
