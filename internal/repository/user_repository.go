package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/nosql-mis/internal/domain"
	"github.com/spec-kit/nosql-mis/internal/persistence"
)

// UserRepository defines persistence access for login accounts.
type UserRepository interface {
	Store[domain.User]
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type userRepository struct {
	documentStore[domain.User]
}

// NewUserRepository returns a Mongo-backed implementation.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{newDocumentStore[domain.User](db, persistence.UsersCollection)}
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "user", bson.M{"username": username})
}
