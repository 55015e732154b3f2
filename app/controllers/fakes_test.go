package controllers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/freshmart/api/app/models"
	"github.com/freshmart/api/app/repositories"
)

// fakeStore is a minimal in-memory backing for the store interfaces used
// by the handler tests. One instance implements all of them; the state is
// plain maps, snapshotted by the fake transaction runner.
type fakeStore struct {
	users      map[primitive.ObjectID]models.User
	categories map[primitive.ObjectID]models.Category
	products   map[primitive.ObjectID]models.Product
	orders     []models.Order
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      map[primitive.ObjectID]models.User{},
		categories: map[primitive.ObjectID]models.Category{},
		products:   map[primitive.ObjectID]models.Product{},
	}
}

func (f *fakeStore) addCategory(name string) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.categories[id] = models.Category{ID: id, Name: name}
	return id
}

func (f *fakeStore) addProduct(name string, price float64, category primitive.ObjectID, stock int64) primitive.ObjectID {
	id := primitive.NewObjectID()
	f.products[id] = models.Product{ID: id, Name: name, Price: price, Category: category, Stock: stock}
	return id
}

func (f *fakeStore) addUser(email, hash, role string) models.User {
	id := primitive.NewObjectID()
	u := models.User{ID: id, Email: email, Password: hash, Role: role, Orders: []primitive.ObjectID{}}
	f.users[id] = u
	return u
}

type userStore struct{ f *fakeStore }

func (s userStore) Create(_ context.Context, user *models.User) error {
	for _, u := range s.f.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	if user.Orders == nil {
		user.Orders = []primitive.ObjectID{}
	}
	s.f.users[user.ID] = *user
	return nil
}

func (s userStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.f.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s userStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := s.f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	found := u
	return &found, nil
}

func (s userStore) All(_ context.Context) ([]models.User, error) {
	users := []models.User{}
	for _, u := range s.f.users {
		users = append(users, u)
	}
	return users, nil
}

func (s userStore) UpdatePassword(_ context.Context, id primitive.ObjectID, hash string) error {
	u, ok := s.f.users[id]
	if !ok {
		return repositories.ErrNotFound
	}
	u.Password = hash
	s.f.users[id] = u
	return nil
}

func (s userStore) AppendOrder(_ context.Context, userID, orderID primitive.ObjectID) error {
	u, ok := s.f.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	u.Orders = append(u.Orders, orderID)
	s.f.users[userID] = u
	return nil
}

type categoryStore struct{ f *fakeStore }

func (s categoryStore) Create(_ context.Context, category *models.Category) error {
	for _, c := range s.f.categories {
		if c.Name == category.Name {
			return repositories.ErrDuplicate
		}
	}
	category.ID = primitive.NewObjectID()
	s.f.categories[category.ID] = *category
	return nil
}

func (s categoryStore) FindByName(_ context.Context, name string) (*models.Category, error) {
	for _, c := range s.f.categories {
		if c.Name == name {
			found := c
			return &found, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s categoryStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	c, ok := s.f.categories[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	found := c
	return &found, nil
}

type productStore struct{ f *fakeStore }

func (s productStore) Create(_ context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	s.f.products[product.ID] = *product
	return nil
}

func (s productStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := s.f.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	found := p
	return &found, nil
}

func (s productStore) All(_ context.Context) ([]models.Product, error) {
	products := []models.Product{}
	for _, p := range s.f.products {
		products = append(products, p)
	}
	return products, nil
}

func (s productStore) Update(_ context.Context, id primitive.ObjectID, patch repositories.ProductPatch) error {
	p, ok := s.f.products[id]
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
	s.f.products[id] = p
	return nil
}

func (s productStore) IncrementStock(_ context.Context, id primitive.ObjectID, quantity int64) error {
	p, ok := s.f.products[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Stock += quantity
	s.f.products[id] = p
	return nil
}

func (s productStore) DecrementStock(_ context.Context, id primitive.ObjectID, quantity int64) error {
	p, ok := s.f.products[id]
	if !ok || p.Stock < quantity {
		return repositories.ErrNotFound
	}
	p.Stock -= quantity
	s.f.products[id] = p
	return nil
}

func (s productStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.f.products[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.f.products, id)
	return nil
}

type orderStore struct{ f *fakeStore }

func (s orderStore) Create(_ context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	s.f.orders = append(s.f.orders, *order)
	return nil
}

func (s orderStore) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	orders := []models.Order{}
	for _, o := range s.f.orders {
		if o.User == userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

// fakeTx snapshots the store and restores it when fn fails.
type fakeTx struct{ f *fakeStore }

func (t fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := newFakeStore()
	for id, u := range t.f.users {
		u.Orders = append([]primitive.ObjectID(nil), u.Orders...)
		snap.users[id] = u
	}
	for id, c := range t.f.categories {
		snap.categories[id] = c
	}
	for id, p := range t.f.products {
		snap.products[id] = p
	}
	snap.orders = append([]models.Order(nil), t.f.orders...)

	if err := fn(ctx); err != nil {
		t.f.users = snap.users
		t.f.categories = snap.categories
		t.f.products = snap.products
		t.f.orders = snap.orders
		return err
	}
	return nil
}

// noopMailer satisfies the Mailer interface for handler tests.
type noopMailer struct{}

func (noopMailer) SendPasswordReset(string, string) error { return nil }
