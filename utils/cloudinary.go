package utils

import (
	"context"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/localkart/core-api/config"
)

// UploadImage pushes an image to Cloudinary and returns the secure URL.
// Portfolio images are resized to a thumbnail on upload.
func UploadImage(ctx context.Context, cfg *config.Config, file interface{}, publicID, folder string) (string, error) {
	cld, err := cloudinary.NewFromParams(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return "", err
	}

	resp, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         folder,
		UploadPreset:   cfg.CloudinaryUploadPreset,
		Transformation: "c_limit,w_1200,h_1200",
	})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
