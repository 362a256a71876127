package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	"image/png"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"blogsite/internal/config"
	"blogsite/internal/middleware"
	"blogsite/internal/models"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultImageUploadDir       = "public/images"
	DefaultImageMaxUploadSizeMB = 5
	DefaultImageMaxEdge         = 1600
	JPEGQuality                 = 85
	WebPQuality                 = 80

	// ImagePathPrefix is the public URL prefix stored on users and posts.
	ImagePathPrefix = "/images/"
)

type UploadImageInput struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ImageService validates uploaded pictures and stores them on local disk.
type ImageService struct {
	uploadDir          string
	maxUploadSizeBytes int64
	maxEdge            int
}

func NewImageService(cfg *config.Config) *ImageService {
	uploadDir := DefaultImageUploadDir
	maxUploadSizeMB := DefaultImageMaxUploadSizeMB
	maxEdge := DefaultImageMaxEdge

	if cfg != nil {
		if cfg.UploadDir != "" {
			uploadDir = cfg.UploadDir
		}
		if cfg.ImageMaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.ImageMaxUploadSizeMB
		}
		if cfg.ImageMaxEdge > 0 {
			maxEdge = cfg.ImageMaxEdge
		}
	}

	return &ImageService{
		uploadDir:          uploadDir,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
		maxEdge:            maxEdge,
	}
}

// UploadDir is where stored pictures live on disk.
func (s *ImageService) UploadDir() string {
	return s.uploadDir
}

// MaxUploadSizeBytes is the largest accepted upload.
func (s *ImageService) MaxUploadSizeBytes() int64 {
	return s.maxUploadSizeBytes
}

// Store validates the upload, downscales it when an edge exceeds the limit, and
// writes it under a random name. It returns the public path /images/<filename>.
func (s *ImageService) Store(ctx context.Context, in UploadImageInput) (string, error) {
	if len(in.Content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := normalizeContentType(http.DetectContentType(in.Content))
	if !isAllowedImageMIME(detectedType) {
		return "", models.NewValidationError("Invalid image type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}

	if provided := normalizeContentType(in.ContentType); strings.HasPrefix(provided, "image/") && !isMatchingContentType(provided, decodedFormatToMime(format)) {
		return "", models.NewValidationError("Image content type mismatch")
	}

	data := in.Content
	ext := extensionFor(format)

	b := decoded.Bounds()
	if b.Dx() > s.maxEdge || b.Dy() > s.maxEdge {
		resized := resizeToFit(decoded, s.maxEdge, s.maxEdge)
		data, ext, err = encodeResized(resized, format)
		if err != nil {
			return "", models.NewInternalError(err)
		}
	}

	filename := uuid.NewString() + ext
	if err := writeBytesToFile(filepath.Join(s.uploadDir, filename), data); err != nil {
		return "", models.NewInternalError(err)
	}

	middleware.Logger.InfoContext(ctx, "stored picture",
		"filename", filename,
		"original", in.Filename,
		"bytes", len(data),
	)
	return ImagePathPrefix + filename, nil
}

// Remove deletes a picture previously returned by Store. Unknown paths are ignored.
func (s *ImageService) Remove(publicPath string) {
	name := strings.TrimPrefix(publicPath, ImagePathPrefix)
	if name == publicPath || name == "" || strings.ContainsAny(name, `/\`) {
		return
	}
	_ = os.Remove(filepath.Join(s.uploadDir, name))
}

func encodeResized(img image.Image, format string) ([]byte, string, error) {
	buf := bytes.NewBuffer(nil)
	switch format {
	case "jpeg":
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), ".jpg", nil
	case "webp":
		if err := webp.Encode(buf, img, &webp.Options{Quality: float32(WebPQuality)}); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), ".webp", nil
	default:
		// PNG keeps transparency for PNG and GIF sources.
		if err := png.Encode(buf, img); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), ".png", nil
	}
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func extensionFor(format string) string {
	switch format {
	case "jpeg":
		return ".jpg"
	case "png":
		return ".png"
	case "gif":
		return ".gif"
	case "webp":
		return ".webp"
	default:
		return ""
	}
}

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}

func isMatchingContentType(provided, detected string) bool {
	p := normalizeContentType(provided)
	d := normalizeContentType(detected)
	if p == d {
		return true
	}
	return (p == "image/jpg" && d == "image/jpeg") || (p == "image/jpeg" && d == "image/jpg")
}

func decodedFormatToMime(format string) string {
	switch format {
	case "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return ""
	}
}

func writeBytesToFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
