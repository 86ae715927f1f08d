package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/foodnest/foodnest/app/models"
	"github.com/foodnest/foodnest/app/permissions"
	"github.com/foodnest/foodnest/app/repositories"
	"github.com/foodnest/foodnest/pkg/apperr"
	"github.com/foodnest/foodnest/pkg/storage"
)

// UpdateUserInput carries a partial profile update. Nil fields are left
// untouched.
type UpdateUserInput struct {
	FirstName  *string `json:"first_name"`
	MiddleName *string `json:"middle_name"`
	LastName   *string `json:"last_name"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
}

// UpdateRoleInput changes an account's role; admin-only.
type UpdateRoleInput struct {
	Role models.Role `json:"role" validate:"required,in=admin,wholesaler,retailer,dispatch"`
}

// imageContentTypes are the upload types accepted for profile images.
var imageContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UserService covers profile reads and mutations.
type UserService struct {
	users repositories.UserRepository
	disk  storage.Disk
}

func NewUserService(users repositories.UserRepository, disk storage.Disk) *UserService {
	return &UserService{users: users, disk: disk}
}

// Get returns the user identified by id; requester must be that user or an
// admin.
func (s *UserService) Get(ctx context.Context, requester *models.User, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !permissions.Owns(requester, user.ID) {
		return nil, apperr.Forbidden("not allowed, contact Administrator")
	}
	return user, nil
}

// Update applies a partial profile update; requester must own the profile or
// be an admin.
func (s *UserService) Update(ctx context.Context, requester *models.User, id primitive.ObjectID, in UpdateUserInput) (*models.User, error) {
	if !permissions.Owns(requester, id) {
		return nil, apperr.Forbidden("not allowed, contact Administrator")
	}

	fields := bson.M{}
	set := func(key string, v *string) {
		if v != nil {
			fields[key] = *v
		}
	}
	set("first_name", in.FirstName)
	set("middle_name", in.MiddleName)
	set("last_name", in.LastName)
	set("phone", in.Phone)
	set("address", in.Address)

	if len(fields) > 0 {
		if err := s.users.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	return s.users.FindByID(ctx, id)
}

// UpdateRole changes an account's role; admin-only.
func (s *UserService) UpdateRole(ctx context.Context, requester *models.User, id primitive.ObjectID, in UpdateRoleInput) (*models.User, error) {
	if !permissions.HasAdmin(requester) {
		return nil, apperr.Forbidden("not allowed, contact Administrator")
	}

	if err := s.users.UpdateFields(ctx, id, bson.M{"role": in.Role}); err != nil {
		return nil, err
	}

	return s.users.FindByID(ctx, id)
}

// Delete removes an account; admin-only.
func (s *UserService) Delete(ctx context.Context, requester *models.User, id primitive.ObjectID) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	if !permissions.HasAdmin(requester) {
		return apperr.Forbidden("not allowed, contact Administrator")
	}
	return s.users.Delete(ctx, id)
}

// UploadImage stores a profile image on the object store and saves its
// public URL on the user document. Only the owner may upload; the content
// type must be JPEG, PNG or WEBP.
func (s *UserService) UploadImage(ctx context.Context, requester *models.User, id primitive.ObjectID, contentType string, content io.Reader) (string, error) {
	if !permissions.Owns(requester, id) {
		return "", apperr.Forbidden("not allowed, contact Administrator")
	}

	ext, ok := imageContentTypes[contentType]
	if !ok {
		return "", apperr.Validation("unsupported image type %q", contentType)
	}

	key := path.Join("users", id.Hex(), fmt.Sprintf("%d%s", time.Now().UnixNano(), ext))
	if err := s.disk.Put(ctx, key, content); err != nil {
		return "", err
	}

	url := s.disk.URL(key)
	if err := s.users.UpdateFields(ctx, id, bson.M{"image_url": url}); err != nil {
		return "", err
	}

	return url, nil
}
