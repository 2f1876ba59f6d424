package school

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core"
)

// Book statuses.
const (
	BookAvailable = "available"
	BookBorrowed  = "borrowed"
	BookReserved  = "reserved"
)

var ErrBookNotFound = core.NewNotFoundError("Book not found")

type Book struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	Author   string             `json:"author" bson:"author"`
	Category string             `json:"category" bson:"category"`
	Status   string             `json:"status" bson:"status"`
}

type NewBook struct {
	Name     string `json:"name" validate:"required"`
	Author   string `json:"author" validate:"required"`
	Category string `json:"category" validate:"required"`
	Status   string `json:"status" validate:"omitempty,oneof=available borrowed reserved"`
}

func (nb *NewBook) Validate() error {
	nb.Name = core.CleanString(nb.Name)
	nb.Author = core.CleanString(nb.Author)
	nb.Category = core.CleanString(nb.Category)
	nb.Status = core.CleanString(nb.Status, true /* lower */)
	return core.Validate.Struct(nb)
}

type UpdateBook struct {
	Name     string `json:"name"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Status   string `json:"status" validate:"omitempty,oneof=available borrowed reserved"`
}

type (
	LibraryRepository interface {
		CreateBook(ctx context.Context, book Book) (Book, error)
		QueryAllBooks(ctx context.Context, opts core.ListOptions) ([]Book, error)
		GetBookByID(ctx context.Context, id primitive.ObjectID) (Book, error)
		UpdateBook(ctx context.Context, book Book) (Book, error)
		DeleteBook(ctx context.Context, id primitive.ObjectID) error
	}

	LibraryService struct {
		repo LibraryRepository
	}
)

func NewLibraryService(repo LibraryRepository) *LibraryService {
	return &LibraryService{repo: repo}
}

func (svc *LibraryService) Create(ctx context.Context, nb NewBook) (Book, error) {
	book := Book{Name: nb.Name, Author: nb.Author, Category: nb.Category, Status: nb.Status}
	if book.Status == "" {
		book.Status = BookAvailable
	}
	return svc.repo.CreateBook(ctx, book)
}

func (svc *LibraryService) Query(ctx context.Context, opts core.ListOptions) ([]Book, error) {
	return svc.repo.QueryAllBooks(ctx, opts)
}

func (svc *LibraryService) GetByID(ctx context.Context, id string) (Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Book{}, ErrBookNotFound
	}
	return svc.repo.GetBookByID(ctx, oid)
}

func (svc *LibraryService) Update(ctx context.Context, id string, ub UpdateBook) (Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Book{}, ErrBookNotFound
	}
	book, err := svc.repo.GetBookByID(ctx, oid)
	if err != nil {
		return Book{}, err
	}

	ub.Status = core.CleanString(ub.Status, true /* lower */)
	if err := core.Validate.Struct(&ub); err != nil {
		return Book{}, err
	}
	if name := core.CleanString(ub.Name); name != "" {
		book.Name = name
	}
	if author := core.CleanString(ub.Author); author != "" {
		book.Author = author
	}
	if cat := core.CleanString(ub.Category); cat != "" {
		book.Category = cat
	}
	if ub.Status != "" {
		book.Status = ub.Status
	}
	return svc.repo.UpdateBook(ctx, book)
}

func (svc *LibraryService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrBookNotFound
	}
	return svc.repo.DeleteBook(ctx, oid)
}
