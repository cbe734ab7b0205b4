package services

import (
	"context"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"

	"github.com/wanderlust-travel/api/internal/helpers"
)

// CloudinaryUploader stores listing images in Cloudinary.
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cld *cloudinary.Cloudinary) *CloudinaryUploader {
	return &CloudinaryUploader{
		cld:    cld,
		folder: helpers.ListingFolder,
	}
}

func (u *CloudinaryUploader) Upload(ctx context.Context, file io.Reader) (string, string, error) {
	return helpers.UploadImage(ctx, u.cld, file, u.folder)
}

func (u *CloudinaryUploader) Destroy(ctx context.Context, filename string) error {
	return helpers.DestroyImage(ctx, u.cld, filename)
}
