package repository

import (
	"context"

	"github.com/invorya/inventario-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// La gestión de usuarios es externa; aquí solo lo necesario para login
// y para resolver el usuario actual.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
