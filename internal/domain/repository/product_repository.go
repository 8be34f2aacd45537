package repository

import "github.com/tiendafacil/ventas-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene sentido
// dentro de una transacción (ver sales.TxRunner).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, stock int) error
	List(limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
