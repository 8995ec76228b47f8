package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/storefront/storefront-backend/models"
	"github.com/storefront/storefront-backend/repositories"
)

// CartRepository also serves the order usecase, which reads and clears the cart.
type CartRepository struct {
	mock.Mock
}

func (m *CartRepository) GetProductById(ctx context.Context, exec repositories.Executor, productId int64) (models.Product, error) {
	args := m.Called(exec, productId)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *CartRepository) ListCartItems(ctx context.Context, exec repositories.Executor, userId int64) ([]models.CartItem, error) {
	args := m.Called(exec, userId)
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *CartRepository) GetCartItem(ctx context.Context, exec repositories.Executor, cartItemId int64) (models.CartItem, error) {
	args := m.Called(exec, cartItemId)
	return args.Get(0).(models.CartItem), args.Error(1)
}

func (m *CartRepository) GetCartItemByProduct(ctx context.Context, exec repositories.Executor,
	userId, productId int64,
) (*models.CartItem, error) {
	args := m.Called(exec, userId, productId)
	return args.Get(0).(*models.CartItem), args.Error(1)
}

func (m *CartRepository) CreateCartItem(ctx context.Context, exec repositories.Executor, item models.CartItem) (models.CartItem, error) {
	args := m.Called(exec, item)
	return args.Get(0).(models.CartItem), args.Error(1)
}

func (m *CartRepository) UpdateCartItem(ctx context.Context, exec repositories.Executor,
	cartItemId int64, quantity int, price float64,
) (models.CartItem, error) {
	args := m.Called(exec, cartItemId, quantity, price)
	return args.Get(0).(models.CartItem), args.Error(1)
}

func (m *CartRepository) DeleteCartItem(ctx context.Context, exec repositories.Executor, cartItemId int64) error {
	args := m.Called(exec, cartItemId)
	return args.Error(0)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) ListCartItems(ctx context.Context, exec repositories.Executor, userId int64) ([]models.CartItem, error) {
	args := m.Called(exec, userId)
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *OrderRepository) ClearCart(ctx context.Context, exec repositories.Executor, userId int64) error {
	args := m.Called(exec, userId)
	return args.Error(0)
}

func (m *OrderRepository) LockProducts(ctx context.Context, exec repositories.Executor, productIds []int64) ([]models.Product, error) {
	args := m.Called(exec, productIds)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *OrderRepository) AdjustStock(ctx context.Context, exec repositories.Executor, productId int64, delta int) error {
	args := m.Called(exec, productId, delta)
	return args.Error(0)
}

func (m *OrderRepository) CreateOrder(ctx context.Context, exec repositories.Executor,
	userId int64, items []models.OrderItem,
) (models.Order, error) {
	args := m.Called(exec, userId, items)
	return args.Get(0).(models.Order), args.Error(1)
}

func (m *OrderRepository) GetOrderById(ctx context.Context, exec repositories.Executor, orderId int64) (models.Order, error) {
	args := m.Called(exec, orderId)
	return args.Get(0).(models.Order), args.Error(1)
}

func (m *OrderRepository) GetOrderByIdForUpdate(ctx context.Context, exec repositories.Executor, orderId int64) (models.Order, error) {
	args := m.Called(exec, orderId)
	return args.Get(0).(models.Order), args.Error(1)
}

func (m *OrderRepository) ListOrders(ctx context.Context, exec repositories.Executor, filters models.OrderFilters) ([]models.Order, error) {
	args := m.Called(exec, filters)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *OrderRepository) UpdateOrderStatus(ctx context.Context, exec repositories.Executor, update models.UpdateOrderStatus) error {
	args := m.Called(exec, update)
	return args.Error(0)
}

// PaymentRepository embeds the order reads and writes the payment flow needs.
type PaymentRepository struct {
	OrderRepository
}

func (m *PaymentRepository) CreatePayment(ctx context.Context, exec repositories.Executor,
	payment models.CreatePayment,
) (models.Payment, error) {
	args := m.Called(exec, payment)
	return args.Get(0).(models.Payment), args.Error(1)
}

func (m *PaymentRepository) GetPaymentBySessionId(ctx context.Context, exec repositories.Executor,
	sessionId string, forUpdate bool,
) (models.Payment, error) {
	args := m.Called(exec, sessionId, forUpdate)
	return args.Get(0).(models.Payment), args.Error(1)
}

func (m *PaymentRepository) ListPaymentsOfOrder(ctx context.Context, exec repositories.Executor, orderId int64) ([]models.Payment, error) {
	args := m.Called(exec, orderId)
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *PaymentRepository) HasCompletedPayment(ctx context.Context, exec repositories.Executor, orderId int64) (bool, error) {
	args := m.Called(exec, orderId)
	return args.Bool(0), args.Error(1)
}

func (m *PaymentRepository) UpdatePaymentStatus(ctx context.Context, exec repositories.Executor,
	paymentId int64, status models.PaymentStatus,
) error {
	args := m.Called(exec, paymentId, status)
	return args.Error(0)
}

type PaymentGateway struct {
	mock.Mock
}

func (m *PaymentGateway) CreateCheckoutSession(ctx context.Context, order models.Order, currency string) (models.CheckoutSession, error) {
	args := m.Called(order, currency)
	return args.Get(0).(models.CheckoutSession), args.Error(1)
}

type ReviewRepository struct {
	mock.Mock
}

func (m *ReviewRepository) GetProductById(ctx context.Context, exec repositories.Executor, productId int64) (models.Product, error) {
	args := m.Called(exec, productId)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *ReviewRepository) CreateReview(ctx context.Context, exec repositories.Executor,
	userId int64, input models.CreateReviewInput,
) (models.Review, error) {
	args := m.Called(exec, userId, input)
	return args.Get(0).(models.Review), args.Error(1)
}

func (m *ReviewRepository) GetReviewById(ctx context.Context, exec repositories.Executor, reviewId int64) (models.Review, error) {
	args := m.Called(exec, reviewId)
	return args.Get(0).(models.Review), args.Error(1)
}

func (m *ReviewRepository) GetReviewByIdForUpdate(ctx context.Context, exec repositories.Executor, reviewId int64) (models.Review, error) {
	args := m.Called(exec, reviewId)
	return args.Get(0).(models.Review), args.Error(1)
}

func (m *ReviewRepository) ListReviewsOfProduct(ctx context.Context, exec repositories.Executor, productId int64) ([]models.Review, error) {
	args := m.Called(exec, productId)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *ReviewRepository) UpdateReview(ctx context.Context, exec repositories.Executor,
	reviewId int64, input models.UpdateReviewInput,
) (models.Review, error) {
	args := m.Called(exec, reviewId, input)
	return args.Get(0).(models.Review), args.Error(1)
}

func (m *ReviewRepository) DeleteReview(ctx context.Context, exec repositories.Executor, reviewId int64) error {
	args := m.Called(exec, reviewId)
	return args.Error(0)
}

func (m *ReviewRepository) GetReaction(ctx context.Context, exec repositories.Executor, reviewId, userId int64) (*models.Reaction, error) {
	args := m.Called(exec, reviewId, userId)
	return args.Get(0).(*models.Reaction), args.Error(1)
}

func (m *ReviewRepository) UpsertReaction(ctx context.Context, exec repositories.Executor,
	reviewId, userId int64, reaction models.Reaction,
) error {
	args := m.Called(exec, reviewId, userId, reaction)
	return args.Error(0)
}

func (m *ReviewRepository) AdjustReactionCounts(ctx context.Context, exec repositories.Executor,
	reviewId int64, likesDelta, dislikesDelta int,
) (models.Review, error) {
	args := m.Called(exec, reviewId, likesDelta, dislikesDelta)
	return args.Get(0).(models.Review), args.Error(1)
}

func (m *ReviewRepository) ProductRatingStats(ctx context.Context, exec repositories.Executor,
	productId int64,
) (models.ProductRatingStats, error) {
	args := m.Called(exec, productId)
	return args.Get(0).(models.ProductRatingStats), args.Error(1)
}

func (m *ReviewRepository) SetProductRatingStats(ctx context.Context, exec repositories.Executor,
	productId int64, stats models.ProductRatingStats,
) error {
	args := m.Called(exec, productId, stats)
	return args.Error(0)
}

// UserRepository serves both the auth and the user usecases.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) GetUserById(ctx context.Context, exec repositories.Executor, userId int64) (models.User, error) {
	args := m.Called(exec, userId)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *UserRepository) GetUserByUsername(ctx context.Context, exec repositories.Executor, username string) (*models.User, error) {
	args := m.Called(exec, username)
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepository) CreateUser(ctx context.Context, exec repositories.Executor, user models.CreateUser) (models.User, error) {
	args := m.Called(exec, user)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *UserRepository) ListUsers(ctx context.Context, exec repositories.Executor, pagination models.Pagination) ([]models.User, error) {
	args := m.Called(exec, pagination)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *UserRepository) UpdateUser(ctx context.Context, exec repositories.Executor,
	userId int64, update models.UpdateUser,
) (models.User, error) {
	args := m.Called(exec, userId, update)
	return args.Get(0).(models.User), args.Error(1)
}

type CategoryRepository struct {
	mock.Mock
}

func (m *CategoryRepository) ListCategories(ctx context.Context, exec repositories.Executor) ([]models.Category, error) {
	args := m.Called(exec)
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *CategoryRepository) GetCategoryById(ctx context.Context, exec repositories.Executor, categoryId int64) (models.Category, error) {
	args := m.Called(exec, categoryId)
	return args.Get(0).(models.Category), args.Error(1)
}

func (m *CategoryRepository) CreateCategory(ctx context.Context, exec repositories.Executor,
	input models.CreateCategoryInput,
) (models.Category, error) {
	args := m.Called(exec, input)
	return args.Get(0).(models.Category), args.Error(1)
}

func (m *CategoryRepository) UpdateCategory(ctx context.Context, exec repositories.Executor, categoryId int64,
	input models.UpdateCategoryInput,
) (models.Category, error) {
	args := m.Called(exec, categoryId, input)
	return args.Get(0).(models.Category), args.Error(1)
}

func (m *CategoryRepository) CategoryUsage(ctx context.Context, exec repositories.Executor, categoryId int64) (int, error) {
	args := m.Called(exec, categoryId)
	return args.Int(0), args.Error(1)
}

func (m *CategoryRepository) DeleteCategory(ctx context.Context, exec repositories.Executor, categoryId int64) error {
	args := m.Called(exec, categoryId)
	return args.Error(0)
}

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) ListProducts(ctx context.Context, exec repositories.Executor,
	filters models.ProductFilters,
) (models.Page[models.Product], error) {
	args := m.Called(exec, filters)
	return args.Get(0).(models.Page[models.Product]), args.Error(1)
}

func (m *ProductRepository) SearchProducts(ctx context.Context, exec repositories.Executor,
	search models.ProductSearch,
) (models.Page[models.Product], error) {
	args := m.Called(exec, search)
	return args.Get(0).(models.Page[models.Product]), args.Error(1)
}

func (m *ProductRepository) GetProductById(ctx context.Context, exec repositories.Executor, productId int64) (models.Product, error) {
	args := m.Called(exec, productId)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *ProductRepository) GetProductByIdForUpdate(ctx context.Context, exec repositories.Executor, productId int64) (models.Product, error) {
	args := m.Called(exec, productId)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *ProductRepository) CreateProduct(ctx context.Context, exec repositories.Executor, vendorId int64,
	input models.CreateProductInput,
) (models.Product, error) {
	args := m.Called(exec, vendorId, input)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *ProductRepository) UpdateProduct(ctx context.Context, exec repositories.Executor, productId int64,
	input models.UpdateProductInput,
) (models.Product, error) {
	args := m.Called(exec, productId, input)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *ProductRepository) DeleteProduct(ctx context.Context, exec repositories.Executor, productId int64) error {
	args := m.Called(exec, productId)
	return args.Error(0)
}

func (m *ProductRepository) IncrementViewCount(ctx context.Context, exec repositories.Executor, productId int64) error {
	args := m.Called(exec, productId)
	return args.Error(0)
}

func (m *ProductRepository) GetCategoryById(ctx context.Context, exec repositories.Executor, categoryId int64) (models.Category, error) {
	args := m.Called(exec, categoryId)
	return args.Get(0).(models.Category), args.Error(1)
}
