package repository

import (
	"time"

	"github.com/tiendafacil/ventas-api/internal/domain/entity"
)

// SaleFilter filtros para listar ventas. LocalID vacío = todos los locales
// (solo admin); From/To en cero = sin acotar por fecha.
type SaleFilter struct {
	LocalID string
	From    time.Time
	To      time.Time
	Limit   int
	Offset  int
}

// SaleRepository define el puerto de persistencia para Sale (DIP).
// Las ventas son append-only: no hay Update ni Delete.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	List(filter SaleFilter) ([]*entity.Sale, error)
}
