package services

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshmart/api/app/models"
	"github.com/freshmart/api/app/repositories"
)

// memDB is an in-memory stand-in for the MongoDB collections. The fake
// transaction runner snapshots the whole state before running fn and
// restores it when fn fails, giving the same all-or-nothing visibility
// the real session transaction provides.
type memDB struct {
	mu         sync.Mutex
	users      map[primitive.ObjectID]models.User
	categories map[primitive.ObjectID]models.Category
	products   map[primitive.ObjectID]models.Product
	orders     []models.Order
}

func newMemDB() *memDB {
	return &memDB{
		users:      map[primitive.ObjectID]models.User{},
		categories: map[primitive.ObjectID]models.Category{},
		products:   map[primitive.ObjectID]models.Product{},
	}
}

func (db *memDB) snapshot() *memDB {
	db.mu.Lock()
	defer db.mu.Unlock()

	snap := newMemDB()
	for id, u := range db.users {
		u.Orders = append([]primitive.ObjectID(nil), u.Orders...)
		snap.users[id] = u
	}
	for id, c := range db.categories {
		snap.categories[id] = c
	}
	for id, p := range db.products {
		snap.products[id] = p
	}
	snap.orders = append([]models.Order(nil), db.orders...)
	return snap
}

func (db *memDB) restore(snap *memDB) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.users = snap.users
	db.categories = snap.categories
	db.products = snap.products
	db.orders = snap.orders
}

// addProduct seeds a product and returns its generated ID.
func (db *memDB) addProduct(name string, price float64, stock int64) primitive.ObjectID {
	db.mu.Lock()
	defer db.mu.Unlock()

	id := primitive.NewObjectID()
	db.products[id] = models.Product{ID: id, Name: name, Price: price, Stock: stock}
	return id
}

// addUser seeds a user and returns its generated ID.
func (db *memDB) addUser(email, hash, role string) primitive.ObjectID {
	db.mu.Lock()
	defer db.mu.Unlock()

	id := primitive.NewObjectID()
	db.users[id] = models.User{ID: id, Email: email, Password: hash, Role: role, Orders: []primitive.ObjectID{}}
	return id
}

func (db *memDB) productStock(id primitive.ObjectID) int64 {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.products[id].Stock
}

type memUserStore struct{ db *memDB }

func (s *memUserStore) Create(_ context.Context, user *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, u := range s.db.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	if user.Orders == nil {
		user.Orders = []primitive.ObjectID{}
	}
	s.db.users[user.ID] = *user
	return nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, u := range s.db.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *memUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u, ok := s.db.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	found := u
	return &found, nil
}

func (s *memUserStore) All(_ context.Context) ([]models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	users := []models.User{}
	for _, u := range s.db.users {
		users = append(users, u)
	}
	return users, nil
}

func (s *memUserStore) UpdatePassword(_ context.Context, id primitive.ObjectID, hash string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u, ok := s.db.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.Password = hash
	s.db.users[id] = u
	return nil
}

func (s *memUserStore) AppendOrder(_ context.Context, userID, orderID primitive.ObjectID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	u, ok := s.db.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	u.Orders = append(u.Orders, orderID)
	s.db.users[userID] = u
	return nil
}

type memCategoryStore struct{ db *memDB }

func (s *memCategoryStore) Create(_ context.Context, category *models.Category) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, c := range s.db.categories {
		if c.Name == category.Name {
			return repositories.ErrDuplicate
		}
	}
	category.ID = primitive.NewObjectID()
	s.db.categories[category.ID] = *category
	return nil
}

func (s *memCategoryStore) FindByName(_ context.Context, name string) (*models.Category, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, c := range s.db.categories {
		if c.Name == name {
			found := c
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *memCategoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, ok := s.db.categories[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	found := c
	return &found, nil
}

type memProductStore struct{ db *memDB }

func (s *memProductStore) Create(_ context.Context, product *models.Product) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	product.ID = primitive.NewObjectID()
	s.db.products[product.ID] = *product
	return nil
}

func (s *memProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	found := p
	return &found, nil
}

func (s *memProductStore) All(_ context.Context) ([]models.Product, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	products := []models.Product{}
	for _, p := range s.db.products {
		products = append(products, p)
	}
	return products, nil
}

func (s *memProductStore) Update(_ context.Context, id primitive.ObjectID, patch repositories.ProductPatch) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.products[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	s.db.products[id] = p
	return nil
}

func (s *memProductStore) IncrementStock(_ context.Context, id primitive.ObjectID, quantity int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.products[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Stock += quantity
	s.db.products[id] = p
	return nil
}

func (s *memProductStore) DecrementStock(_ context.Context, id primitive.ObjectID, quantity int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, ok := s.db.products[id]
	if !ok || p.Stock < quantity {
		// Same contract as the guarded mongo update: no match when the
		// stock filter rejects the decrement.
		return repositories.ErrNotFound
	}
	p.Stock -= quantity
	s.db.products[id] = p
	return nil
}

func (s *memProductStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.products[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.db.products, id)
	return nil
}

type memOrderStore struct{ db *memDB }

func (s *memOrderStore) Create(_ context.Context, order *models.Order) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	order.ID = primitive.NewObjectID()
	s.db.orders = append(s.db.orders, *order)
	return nil
}

func (s *memOrderStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	orders := []models.Order{}
	for _, o := range s.db.orders {
		if o.User == userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

// memTx restores the pre-transaction state when fn fails.
type memTx struct{ db *memDB }

func (t *memTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := t.db.snapshot()
	if err := fn(ctx); err != nil {
		t.db.restore(snap)
		return err
	}
	return nil
}

// recordingMailer captures outbound reset emails.
type recordingMailer struct {
	mu     sync.Mutex
	sent   []string
	tokens []string
}

func (m *recordingMailer) SendPasswordReset(email, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, email)
	m.tokens = append(m.tokens, token)
	return nil
}
