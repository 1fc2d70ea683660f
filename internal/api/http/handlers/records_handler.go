package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/spec-kit/nosql-mis/internal/api/dto"
	"github.com/spec-kit/nosql-mis/internal/auth"
)

// RecordService is the CRUD surface a records handler drives.
type RecordService[T any] interface {
	List(ctx context.Context) ([]T, bool, error)
	Create(ctx context.Context, actor string, doc *T) (primitive.ObjectID, error)
	Update(ctx context.Context, actor, id string, fields map[string]any) (int64, error)
	Delete(ctx context.Context, actor, id string) (int64, error)
}

// RecordsHandler serves list/create/update/delete for one collection.
type RecordsHandler[T any] struct {
	records RecordService[T]
}

// NewRecordsHandler constructs handler.
func NewRecordsHandler[T any](records RecordService[T]) *RecordsHandler[T] {
	return &RecordsHandler[T]{records: records}
}

// List handles GET /api/<collection>.
func (h *RecordsHandler[T]) List(c *fiber.Ctx) error {
	items, fromCache, err := h.records.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.ListResponse[T]{Data: items, FromCache: fromCache})
}

// Create handles POST /api/<collection>.
func (h *RecordsHandler[T]) Create(c *fiber.Ctx) error {
	var doc T
	if err := c.BodyParser(&doc); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	id, err := h.records.Create(c.UserContext(), actor(c), &doc)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.CreatedResponse{Success: true, ID: id.Hex()})
}

// Update handles PUT /api/<collection>/:id.
func (h *RecordsHandler[T]) Update(c *fiber.Ctx) error {
	var fields map[string]any
	if err := c.BodyParser(&fields); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	modified, err := h.records.Update(c.UserContext(), actor(c), c.Params("id"), fields)
	if err != nil {
		return err
	}
	return c.JSON(dto.UpdatedResponse{Success: true, ModifiedCount: modified})
}

// Delete handles DELETE /api/<collection>/:id.
func (h *RecordsHandler[T]) Delete(c *fiber.Ctx) error {
	deleted, err := h.records.Delete(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.DeletedResponse{Success: true, DeletedCount: deleted})
}

func actor(c *fiber.Ctx) string {
	if username, ok := auth.UsernameFromContext(c); ok {
		return username
	}
	return "anonymous"
}
