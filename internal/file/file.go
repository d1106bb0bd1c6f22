package file

import (
	"context"
	"errors"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// KYC documents are PDFs as often as images, so they are stored as raw assets.
const cloudinaryResourceType = "raw"

// FileUploader keeps documents in Cloudinary. References are Cloudinary public ids.
type FileUploader struct {
	cld *cloudinary.Cloudinary
}

func New(cloudName, apiKey, apiSecret string) (*FileUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}

	return &FileUploader{cld: cld}, nil
}

func (f *FileUploader) Put(ctx context.Context, key string, r io.Reader) (string, error) {
	uploadResult, err := f.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:     key,
		ResourceType: cloudinaryResourceType,
	})
	if err != nil {
		return "", err
	}

	if uploadResult.Error.Message != "" {
		return "", errors.New(uploadResult.Error.Message)
	}

	return uploadResult.PublicID, nil
}

func (f *FileUploader) Delete(ctx context.Context, ref string) error {
	destroyResult, err := f.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     ref,
		ResourceType: cloudinaryResourceType,
	})
	if err != nil {
		return err
	}

	if destroyResult.Error.Message != "" {
		return errors.New(destroyResult.Error.Message)
	}

	return nil
}
