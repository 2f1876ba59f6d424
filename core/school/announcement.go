package school

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core"
)

var ErrAnnouncementNotFound = core.NewNotFoundError("Announcement not found")

type Announcement struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Author      string             `json:"author" bson:"author"`
	// ExpirationDate is optional; nil means the announcement never expires.
	ExpirationDate *time.Time `json:"expirationDate,omitempty" bson:"expirationDate,omitempty"`
	IsRead         bool       `json:"isRead" bson:"isRead"`
	CreatedAt      time.Time  `json:"createdAt" bson:"createdAt"` // UTC
}

type NewAnnouncement struct {
	Title          string     `json:"title" validate:"required"`
	Description    string     `json:"description" validate:"required"`
	Author         string     `json:"author" validate:"required"`
	ExpirationDate *time.Time `json:"expirationDate"`
}

func (na *NewAnnouncement) Validate() error {
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	na.Author = core.CleanString(na.Author)
	return core.Validate.Struct(na)
}

type UpdateAnnouncement struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Author         string     `json:"author"`
	ExpirationDate *time.Time `json:"expirationDate"`
}

type (
	AnnouncementRepository interface {
		CreateAnnouncement(ctx context.Context, ann Announcement) (Announcement, error)
		QueryAllAnnouncements(ctx context.Context, opts core.ListOptions) ([]Announcement, error)
		GetAnnouncementByID(ctx context.Context, id primitive.ObjectID) (Announcement, error)
		UpdateAnnouncement(ctx context.Context, ann Announcement) (Announcement, error)
		DeleteAnnouncement(ctx context.Context, id primitive.ObjectID) error
	}

	AnnouncementService struct {
		repo AnnouncementRepository
	}
)

func NewAnnouncementService(repo AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{repo: repo}
}

func (svc *AnnouncementService) Create(ctx context.Context, na NewAnnouncement) (Announcement, error) {
	ann := Announcement{
		Title:          na.Title,
		Description:    na.Description,
		Author:         na.Author,
		ExpirationDate: na.ExpirationDate,
		CreatedAt:      time.Now().UTC(),
	}
	return svc.repo.CreateAnnouncement(ctx, ann)
}

func (svc *AnnouncementService) Query(ctx context.Context, opts core.ListOptions) ([]Announcement, error) {
	return svc.repo.QueryAllAnnouncements(ctx, opts)
}

func (svc *AnnouncementService) Update(ctx context.Context, id string, ua UpdateAnnouncement) (Announcement, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Announcement{}, ErrAnnouncementNotFound
	}
	ann, err := svc.repo.GetAnnouncementByID(ctx, oid)
	if err != nil {
		return Announcement{}, err
	}

	if title := core.CleanString(ua.Title); title != "" {
		ann.Title = title
	}
	if desc := core.CleanString(ua.Description); desc != "" {
		ann.Description = desc
	}
	if author := core.CleanString(ua.Author); author != "" {
		ann.Author = author
	}
	if ua.ExpirationDate != nil {
		ann.ExpirationDate = ua.ExpirationDate
	}
	return svc.repo.UpdateAnnouncement(ctx, ann)
}

// MarkAsRead flags an announcement as read.
func (svc *AnnouncementService) MarkAsRead(ctx context.Context, id string) (Announcement, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Announcement{}, ErrAnnouncementNotFound
	}
	ann, err := svc.repo.GetAnnouncementByID(ctx, oid)
	if err != nil {
		return Announcement{}, err
	}
	ann.IsRead = true
	return svc.repo.UpdateAnnouncement(ctx, ann)
}

func (svc *AnnouncementService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrAnnouncementNotFound
	}
	return svc.repo.DeleteAnnouncement(ctx, oid)
}
