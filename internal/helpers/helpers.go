package helpers

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const ListingFolder = "wanderlust_listings"

// UploadImage stores a single file stream and returns its (url, filename)
// pair as served by the storage provider.
func UploadImage(ctx context.Context, cld *cloudinary.Cloudinary, file io.Reader, folder string) (string, string, error) {
	uploadResult, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder: folder,
		Tags:   []string{"wanderlust"},
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload image: %v", err)
	}
	return uploadResult.SecureURL, uploadResult.PublicID, nil
}

// DestroyImage removes a previously uploaded file by its stored filename.
func DestroyImage(ctx context.Context, cld *cloudinary.Cloudinary, filename string) error {
	_, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: filename})
	if err != nil {
		return fmt.Errorf("failed to destroy image: %v", err)
	}
	return nil
}

// TitleCaseCountry turns a hyphenated slug such as "united-states" into
// the stored country form "United States".
func TitleCaseCountry(countrySlug string) string {
	words := strings.Split(countrySlug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		first, size := utf8.DecodeRuneInString(w)
		words[i] = strings.ToUpper(string(first)) + w[size:]
	}
	return strings.Join(words, " ")
}
