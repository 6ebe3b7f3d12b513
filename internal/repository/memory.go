package repository

import (
	"context"
	"sync"

	"github.com/mmeshcher/retail-store/internal/model"
)

// MemoryRepository хранит покупателей и товары в памяти процесса.
// Используется, если адрес БД не задан.
type MemoryRepository struct {
	mu sync.Mutex

	lastCustomerID int64
	lastProductID  int64
	customers      map[int64]model.Customer
	products       map[int64]model.Product
}

// NewMemoryRepository создаёт пустое хранилище в памяти.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		customers: make(map[int64]model.Customer),
		products:  make(map[int64]model.Product),
	}
}

// Close ничего не делает, ресурсов у хранилища нет.
func (r *MemoryRepository) Close() error {
	return nil
}

// CreateCustomer сохраняет нового покупателя и возвращает его идентификатор.
func (r *MemoryRepository) CreateCustomer(ctx context.Context, c model.Customer) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastCustomerID++
	c.ID = r.lastCustomerID
	r.customers[c.ID] = c
	return c.ID, nil
}

// GetCustomer возвращает копию покупателя.
func (r *MemoryRepository) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.customers[id]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	return &c, nil
}

// UpdateCustomer передаёт копию покупателя в fn и сохраняет её, только если fn не вернула ошибку.
func (r *MemoryRepository) UpdateCustomer(ctx context.Context, id int64, fn func(*model.Customer) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.customers[id]
	if !ok {
		return ErrCustomerNotFound
	}

	if err := fn(&c); err != nil {
		return err
	}

	r.customers[id] = c
	return nil
}

// CreateProduct сохраняет новый товар и возвращает его идентификатор.
func (r *MemoryRepository) CreateProduct(ctx context.Context, p model.Product) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastProductID++
	p.ID = r.lastProductID
	r.products[p.ID] = p
	return p.ID, nil
}

// GetProduct возвращает копию товара.
func (r *MemoryRepository) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

// UpdatePurchase передаёт копии товара и покупателя в fn и сохраняет обе, только если fn не вернула ошибку.
func (r *MemoryRepository) UpdatePurchase(ctx context.Context, productID, customerID int64, fn func(*model.Product, *model.Customer) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[productID]
	if !ok {
		return ErrProductNotFound
	}
	c, ok := r.customers[customerID]
	if !ok {
		return ErrCustomerNotFound
	}

	if err := fn(&p, &c); err != nil {
		return err
	}

	r.products[productID] = p
	r.customers[customerID] = c
	return nil
}
