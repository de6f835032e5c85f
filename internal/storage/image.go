// AngelaMos | 2026
// image.go

package storage

import (
	"database/sql/driver"
	"time"

	"github.com/carterperez-dev/lifehacking-api/internal/core"
)

// Image is the metadata of an uploaded object. It is stored as a JSON
// document column on the rows that reference it.
type Image struct {
	URL              string    `json:"url"`
	StoragePath      string    `json:"storagePath"`
	OriginalFileName string    `json:"originalFileName"`
	ContentType      string    `json:"contentType"`
	SizeBytes        int64     `json:"sizeBytes"`
	UploadedAt       time.Time `json:"uploadedAt"`
}

func (i *Image) Scan(src any) error {
	return core.ScanDocument(src, i)
}

func (i Image) Value() (driver.Value, error) {
	return core.DocumentValue(i)
}

func (i *Image) IsZero() bool {
	return i == nil || i.URL == ""
}

type ImageDTO struct {
	ImageURL         string    `json:"imageUrl"         validate:"required,url,max=2048"`
	ImageStoragePath string    `json:"imageStoragePath" validate:"required,max=512"`
	OriginalFileName string    `json:"originalFileName" validate:"required,max=255"`
	ContentType      string    `json:"contentType"      validate:"required,oneof=image/jpeg image/png image/gif image/webp"`
	FileSizeBytes    int64     `json:"fileSizeBytes"    validate:"gt=0,lte=5242880"`
	UploadedAt       time.Time `json:"uploadedAt"       validate:"required"`
}

func (d *ImageDTO) ToImage() *Image {
	if d == nil {
		return nil
	}
	return &Image{
		URL:              d.ImageURL,
		StoragePath:      d.ImageStoragePath,
		OriginalFileName: d.OriginalFileName,
		ContentType:      d.ContentType,
		SizeBytes:        d.FileSizeBytes,
		UploadedAt:       d.UploadedAt,
	}
}

func ToDTO(img *Image) *ImageDTO {
	if img.IsZero() {
		return nil
	}
	return &ImageDTO{
		ImageURL:         img.URL,
		ImageStoragePath: img.StoragePath,
		OriginalFileName: img.OriginalFileName,
		ContentType:      img.ContentType,
		FileSizeBytes:    img.SizeBytes,
		UploadedAt:       img.UploadedAt,
	}
}
