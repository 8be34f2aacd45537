package sales

import (
	"context"
	"fmt"

	"github.com/tiendafacil/ventas-api/internal/domain"
	"github.com/tiendafacil/ventas-api/internal/domain/entity"
	"github.com/tiendafacil/ventas-api/internal/domain/repository"
)

// ReceiptUseCase genera el ticket PDF de una venta ya registrada.
type ReceiptUseCase struct {
	saleRepo  repository.SaleRepository
	localRepo repository.LocalRepository
	generator ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	localRepo repository.LocalRepository,
	generator ReceiptPDFGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{saleRepo: saleRepo, localRepo: localRepo, generator: generator}
}

// DownloadReceiptPDF recupera la venta, verifica que el solicitante pueda
// verla (un usuario "local" solo sus propias ventas) y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la venta no existe.
//   - domain.ErrForbidden        si la venta pertenece a otro local.
func (uc *ReceiptUseCase) DownloadReceiptPDF(ctx context.Context, role, tokenLocalID, saleID string) (pdfBytes []byte, filename string, err error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}
	if role != entity.RoleAdmin && sale.LocalID != tokenLocalID {
		return nil, "", domain.ErrForbidden
	}

	local, err := uc.localRepo.GetByID(sale.LocalID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener local: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, sale, local)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("ticket_%s.pdf", sale.ID)
	return pdfBytes, filename, nil
}
