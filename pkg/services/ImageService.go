package services

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/nfnt/resize"
)

type ImageServicer interface {
	Resize(binary []byte, contentType string, maxSize uint) ([]byte, error)
}

type ImageService struct {
}

func NewImageService() ImageService {
	return ImageService{}
}

/*
Resize scales the longest edge of a JPEG or PNG image down to maxSize.
Images already within bounds, and any other content type, are returned
unchanged.
*/
func (s ImageService) Resize(binary []byte, contentType string, maxSize uint) ([]byte, error) {
	var (
		err error
		img image.Image
		buf bytes.Buffer
	)

	if maxSize == 0 || (contentType != "image/jpeg" && contentType != "image/png") {
		return binary, nil
	}

	if img, _, err = image.Decode(bytes.NewReader(binary)); err != nil {
		return nil, fmt.Errorf("error decoding image: %w", err)
	}

	bounds := img.Bounds()

	if uint(bounds.Dx()) <= maxSize && uint(bounds.Dy()) <= maxSize {
		return binary, nil
	}

	resized := s.resize(img, maxSize)

	if contentType == "image/png" {
		err = png.Encode(&buf, resized)
	} else {
		err = jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85})
	}

	if err != nil {
		return nil, fmt.Errorf("error encoding resized image: %w", err)
	}

	return buf.Bytes(), nil
}

func (s ImageService) resize(img image.Image, maxSize uint) image.Image {
	/*
	 * Determine which dimension to resize based on the longest edge
	 */
	bounds := img.Bounds()
	width := uint(bounds.Dx())
	height := uint(bounds.Dy())

	var newWidth, newHeight uint
	if width > height {
		// Landscape orientation
		newWidth = maxSize
		newHeight = uint(float64(height) * (float64(maxSize) / float64(width)))
	} else {
		// Portrait orientation or square
		newHeight = maxSize
		newWidth = uint(float64(width) * (float64(maxSize) / float64(height)))
	}

	return resize.Resize(newWidth, newHeight, img, resize.Lanczos3)
}
