package user

import (
	"Storybrush-Backend/domain"
	"Storybrush-Backend/entities"
	"Storybrush-Backend/pkg/filedb"
	"context"
	"strings"
	"time"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetUsers(ctx context.Context) ([]*entities.User, error)
		UpdateUser(ctx context.Context, user *entities.User) error
		DeleteUser(ctx context.Context, id string) error

		// Ledger primitives. Both run the balance check and the write as a
		// single step under the store lock, so concurrent debits cannot
		// both observe the same pre-balance.
		DebitCredits(ctx context.Context, userID string, amount int) (int, error)
		AddCredits(ctx context.Context, userID string, amount int) (int, error)
		AddTotalSpent(ctx context.Context, userID string, amount float64) error

		AppendEmailLog(ctx context.Context, entry *entities.EmailLog) error
	}

	userRepository struct {
		store *filedb.Store
	}
)

func NewUserRepository(store *filedb.Store) UserRepository {
	return &userRepository{
		store: store,
	}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.store.Update(func(d *filedb.Data) error {
		email := strings.ToLower(user.Email)
		for _, u := range d.Users {
			if strings.ToLower(u.Email) == email {
				return domain.ErrEmailAlreadyExists
			}
		}
		user.Email = email
		d.Users = append(d.Users, user)
		return nil
	})
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var found *entities.User
	err := r.store.View(func(d *filedb.Data) error {
		for _, u := range d.Users {
			if u.ID.String() == id {
				clone := *u
				found = &clone
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var found *entities.User
	err := r.store.View(func(d *filedb.Data) error {
		email = strings.ToLower(email)
		for _, u := range d.Users {
			if strings.ToLower(u.Email) == email {
				clone := *u
				found = &clone
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *userRepository) GetUsers(ctx context.Context) ([]*entities.User, error) {
	var users []*entities.User
	err := r.store.View(func(d *filedb.Data) error {
		users = make([]*entities.User, 0, len(d.Users))
		for _, u := range d.Users {
			clone := *u
			users = append(users, &clone)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	return r.store.Update(func(d *filedb.Data) error {
		for i, u := range d.Users {
			if u.ID == user.ID {
				user.Version = u.Version + 1
				user.UpdatedAt = time.Now()
				d.Users[i] = user
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
}

func (r *userRepository) DeleteUser(ctx context.Context, id string) error {
	return r.store.Update(func(d *filedb.Data) error {
		for i, u := range d.Users {
			if u.ID.String() == id {
				d.Users = append(d.Users[:i], d.Users[i+1:]...)
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
}

func (r *userRepository) DebitCredits(ctx context.Context, userID string, amount int) (int, error) {
	var balance int
	err := r.store.Update(func(d *filedb.Data) error {
		for _, u := range d.Users {
			if u.ID.String() == userID {
				if u.Credits < amount {
					return domain.ErrInsufficientCredits
				}
				u.Credits -= amount
				u.Version++
				u.UpdatedAt = time.Now()
				balance = u.Credits
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (r *userRepository) AddCredits(ctx context.Context, userID string, amount int) (int, error) {
	var balance int
	err := r.store.Update(func(d *filedb.Data) error {
		for _, u := range d.Users {
			if u.ID.String() == userID {
				u.Credits += amount
				u.Version++
				u.UpdatedAt = time.Now()
				balance = u.Credits
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

func (r *userRepository) AddTotalSpent(ctx context.Context, userID string, amount float64) error {
	return r.store.Update(func(d *filedb.Data) error {
		for _, u := range d.Users {
			if u.ID.String() == userID {
				u.TotalSpent += amount
				u.Version++
				u.UpdatedAt = time.Now()
				return nil
			}
		}
		return domain.ErrUserNotFound
	})
}

func (r *userRepository) AppendEmailLog(ctx context.Context, entry *entities.EmailLog) error {
	return r.store.Update(func(d *filedb.Data) error {
		d.EmailLogs = append(d.EmailLogs, entry)
		return nil
	})
}
