package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shareit-rental/service-booking/internal/application"
)

type MockBookingService struct{ mock.Mock }

func (m *MockBookingService) CreateBooking(ctx context.Context, bookerID int64, req application.CreateBookingRequest) (*application.BookingDTO, error) {
	args := m.Called(ctx, bookerID, req)
	dto, _ := args.Get(0).(*application.BookingDTO)
	return dto, args.Error(1)
}

func (m *MockBookingService) DecideBooking(ctx context.Context, bookingID, actorID int64, approved bool) (*application.BookingDTO, error) {
	args := m.Called(ctx, bookingID, actorID, approved)
	dto, _ := args.Get(0).(*application.BookingDTO)
	return dto, args.Error(1)
}

func (m *MockBookingService) GetBooking(ctx context.Context, bookingID, actorID int64) (*application.BookingDTO, error) {
	args := m.Called(ctx, bookingID, actorID)
	dto, _ := args.Get(0).(*application.BookingDTO)
	return dto, args.Error(1)
}

func (m *MockBookingService) ListBookerBookings(ctx context.Context, bookerID int64, state string, from, size int) (*application.BookingPage, error) {
	args := m.Called(ctx, bookerID, state, from, size)
	page, _ := args.Get(0).(*application.BookingPage)
	return page, args.Error(1)
}

func (m *MockBookingService) ListOwnerBookings(ctx context.Context, ownerID int64, state string, from, size int) (*application.BookingPage, error) {
	args := m.Called(ctx, ownerID, state, from, size)
	page, _ := args.Get(0).(*application.BookingPage)
	return page, args.Error(1)
}

type MockItemService struct{ mock.Mock }

func (m *MockItemService) CreateItem(ctx context.Context, ownerID int64, req application.CreateItemRequest) (*application.ItemDTO, error) {
	args := m.Called(ctx, ownerID, req)
	dto, _ := args.Get(0).(*application.ItemDTO)
	return dto, args.Error(1)
}

func (m *MockItemService) UpdateItem(ctx context.Context, itemID, ownerID int64, req application.UpdateItemRequest) (*application.ItemDTO, error) {
	args := m.Called(ctx, itemID, ownerID, req)
	dto, _ := args.Get(0).(*application.ItemDTO)
	return dto, args.Error(1)
}

func (m *MockItemService) GetItem(ctx context.Context, itemID, viewerID int64) (*application.ItemDTO, error) {
	args := m.Called(ctx, itemID, viewerID)
	dto, _ := args.Get(0).(*application.ItemDTO)
	return dto, args.Error(1)
}

func (m *MockItemService) ListOwnerItems(ctx context.Context, ownerID int64, from, size int) ([]application.ItemDTO, error) {
	args := m.Called(ctx, ownerID, from, size)
	items, _ := args.Get(0).([]application.ItemDTO)
	return items, args.Error(1)
}

func (m *MockItemService) DeleteItem(ctx context.Context, itemID, ownerID int64) error {
	return m.Called(ctx, itemID, ownerID).Error(0)
}

type MockCommentService struct{ mock.Mock }

func (m *MockCommentService) AddComment(ctx context.Context, itemID, authorID int64, req application.AddCommentRequest) (*application.CommentDTO, error) {
	args := m.Called(ctx, itemID, authorID, req)
	dto, _ := args.Get(0).(*application.CommentDTO)
	return dto, args.Error(1)
}

type MockUserService struct{ mock.Mock }

func (m *MockUserService) CreateUser(ctx context.Context, req application.CreateUserRequest) (*application.UserDTO, error) {
	args := m.Called(ctx, req)
	dto, _ := args.Get(0).(*application.UserDTO)
	return dto, args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID int64, req application.UpdateUserRequest) (*application.UserDTO, error) {
	args := m.Called(ctx, userID, req)
	dto, _ := args.Get(0).(*application.UserDTO)
	return dto, args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, userID int64) (*application.UserDTO, error) {
	args := m.Called(ctx, userID)
	dto, _ := args.Get(0).(*application.UserDTO)
	return dto, args.Error(1)
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]application.UserDTO, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]application.UserDTO)
	return users, args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}
