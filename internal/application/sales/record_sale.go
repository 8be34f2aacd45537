package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tiendafacil/ventas-api/internal/application/dto"
	"github.com/tiendafacil/ventas-api/internal/domain"
	"github.com/tiendafacil/ventas-api/internal/domain/entity"
	"github.com/tiendafacil/ventas-api/internal/domain/repository"
)

// RecordSaleUseCase registra ventas de forma transaccional: valida el carrito,
// bloquea las filas de productos (SELECT FOR UPDATE), verifica stock, descuenta
// y persiste un único registro de venta con sus líneas embebidas. Si cualquier
// línea falla, no se escribe nada (Commit/Rollback vía TxRunner).
type RecordSaleUseCase struct {
	txRunner  TxRunner
	localRepo repository.LocalRepository
	saleRepo  repository.SaleRepository
	feed      SaleFeed
}

// NewRecordSaleUseCase construye el caso de uso.
func NewRecordSaleUseCase(
	txRunner TxRunner,
	localRepo repository.LocalRepository,
	saleRepo repository.SaleRepository,
	feed SaleFeed,
) *RecordSaleUseCase {
	return &RecordSaleUseCase{
		txRunner:  txRunner,
		localRepo: localRepo,
		saleRepo:  saleRepo,
		feed:      feed,
	}
}

// RecordSale registra una venta para el usuario autenticado.
//
// Para rol "local" el local sale del token (tokenLocalID); si el usuario no
// tiene local asignado se rechaza con ErrNoAssignedLocal antes de tocar la DB.
// Un admin debe indicar el local destino en in.LocalID.
//
// En caso de stock insuficiente el error envuelve ErrInsufficientStock e
// indica el producto y su stock actual; la transacción completa se revierte.
func (uc *RecordSaleUseCase) RecordSale(ctx context.Context, userID, role, tokenLocalID string, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentMethod != entity.PaymentCash && in.PaymentMethod != entity.PaymentCard {
		return nil, domain.ErrInvalidInput
	}

	// Resolver el local que produce la venta (invariante de rol local).
	localID := tokenLocalID
	if role == entity.RoleAdmin && in.LocalID != "" {
		localID = in.LocalID
	}
	if localID == "" {
		return nil, domain.ErrNoAssignedLocal
	}
	local, err := uc.localRepo.GetByID(localID)
	if err != nil {
		return nil, err
	}
	if local == nil {
		return nil, fmt.Errorf("%w: local %s", domain.ErrNotFound, localID)
	}

	// Consolidar líneas repetidas del mismo producto: un solo descuento por producto.
	quantities, order, err := mergeItems(in.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		LocalID:       localID,
		PaymentMethod: in.PaymentMethod,
		Date:          now,
		CreatedBy:     userID,
	}

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		total := decimal.Zero
		for _, productID := range order {
			qty := quantities[productID]

			// Bloquea la fila del producto para serializar ventas concurrentes.
			product, err := productRepo.GetForUpdate(productID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
			}
			if product.Stock < qty {
				return fmt.Errorf("%w: %s (stock actual %d, solicitado %d)",
					domain.ErrInsufficientStock, product.Name, product.Stock, qty)
			}
			if err := productRepo.UpdateStock(productID, product.Stock-qty); err != nil {
				return err
			}

			subtotal := product.Price.Mul(decimal.NewFromInt(int64(qty)))
			total = total.Add(subtotal)
			sale.Items = append(sale.Items, entity.SaleItem{
				ID:          uuid.New().String(),
				SaleID:      sale.ID,
				ProductID:   productID,
				ProductName: product.Name, // snapshot: sobrevive renombres y bajas
				Quantity:    qty,
				UnitPrice:   product.Price,
				Subtotal:    subtotal,
			})
		}
		sale.Total = total
		return saleRepo.Create(sale)
	})
	if err != nil {
		return nil, err
	}

	// Feed en tiempo real: best-effort, nunca falla la venta ya confirmada.
	_ = uc.feed.Publish(ctx, SaleEvent{
		SaleID:        sale.ID,
		LocalID:       sale.LocalID,
		Total:         sale.Total,
		PaymentMethod: sale.PaymentMethod,
		Date:          sale.Date,
	})

	return ToSaleResponse(sale), nil
}

// mergeItems valida cantidades y consolida líneas duplicadas, preservando el
// orden de primera aparición para que la respuesta sea estable.
func mergeItems(items []dto.SaleItemRequest) (map[string]int, []string, error) {
	quantities := make(map[string]int, len(items))
	order := make([]string, 0, len(items))
	for _, item := range items {
		if item.ProductID == "" || item.Quantity < 1 {
			return nil, nil, domain.ErrInvalidInput
		}
		if _, seen := quantities[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		quantities[item.ProductID] += item.Quantity
	}
	return quantities, order, nil
}

// ToSaleResponse convierte la entidad en DTO de salida.
func ToSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	resp := &dto.SaleResponse{
		ID:            s.ID,
		LocalID:       s.LocalID,
		PaymentMethod: s.PaymentMethod,
		Total:         s.Total,
		Date:          s.Date,
		Items:         make([]dto.SaleItemResponse, 0, len(s.Items)),
	}
	for _, it := range s.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return resp
}
