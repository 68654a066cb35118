package user

import "context"

// UserRepository defines persistence operations for users.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*User, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// FindAll returns users ordered by id.
	FindAll(ctx context.Context) ([]*User, error)
	// Save inserts a new user. A duplicate email is a conflict.
	Save(ctx context.Context, user *User) error
	// Update persists changes. A duplicate email is a conflict.
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id int64) error
}
