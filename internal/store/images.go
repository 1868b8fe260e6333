package store

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/agenthands/chronicle/internal/core/model"
)

// imageExtensions is also the probe order when looking an image up.
var imageExtensions = []string{"png", "jpg", "webp"}

var imageIDPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// ExtensionFor maps a MIME type to the stored file extension.
func ExtensionFor(mime string) string {
	m := strings.ToLower(mime)
	switch {
	case strings.Contains(m, "jpeg"), strings.Contains(m, "jpg"):
		return "jpg"
	case strings.Contains(m, "webp"):
		return "webp"
	default:
		return "png"
	}
}

// MIMEFor maps a stored file extension back to a MIME type.
func MIMEFor(ext string) string {
	switch ext {
	case "jpg":
		return "image/jpeg"
	case "webp":
		return "image/webp"
	default:
		return "image/png"
	}
}

// DecodeBase64 decodes leniently: characters outside the base64 alphabet,
// padding included, are skipped, and a trailing group too short to carry a
// byte is dropped. A "data:<mime>;base64," prefix is stripped and its MIME
// type returned.
func DecodeBase64(payload string) ([]byte, string) {
	var mime string
	if rest, ok := strings.CutPrefix(payload, "data:"); ok {
		if head, body, ok := strings.Cut(rest, ","); ok {
			mime, _, _ = strings.Cut(head, ";")
			payload = body
		}
	}

	clean := make([]byte, 0, len(payload))
	for i := 0; i < len(payload); i++ {
		c := payload[i]
		if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '+' || c == '/' {
			clean = append(clean, c)
		}
	}
	if len(clean)%4 == 1 {
		clean = clean[:len(clean)-1]
	}
	out := make([]byte, base64.RawStdEncoding.DecodedLen(len(clean)))
	n, _ := base64.RawStdEncoding.Decode(out, clean)
	return out[:n], mime
}

func validateImageKey(category, id string) error {
	err := validation.Errors{
		"category": validation.Validate(category, validation.Required, validation.In(stringsToAny(model.ImageCategories)...)),
		"id":       validation.Validate(id, validation.Required, validation.Match(imageIDPattern)),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func stringsToAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func imageFile(category, id, ext string) string {
	return DirImages + "/" + category + "/" + id + "." + ext
}

// SaveImage decodes a base64 payload and stores it as
// images/<category>/<id>.<ext>, replacing any earlier image for the same id.
// It returns the campaign-relative path.
func (s *Store) SaveImage(category, id, payload, mime string) (string, error) {
	if err := validateImageKey(category, id); err != nil {
		return "", err
	}
	data, dataMIME := DecodeBase64(payload)
	if len(data) == 0 {
		return "", invalid("image payload is empty")
	}
	if mime == "" {
		mime = dataMIME
	}
	ext := ExtensionFor(mime)
	rel := imageFile(category, id, ext)

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, other := range imageExtensions {
		if other == ext {
			continue
		}
		if err := s.driver.RemoveAll(s.path(imageFile(category, id, other))); err != nil {
			return "", fmt.Errorf("failed to remove stale image: %w", err)
		}
	}
	if err := s.driver.WriteFile(s.path(rel), data); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}
	s.logger.Info("image saved", "category", category, "id", id, "bytes", len(data))
	return rel, nil
}

// ImagePath returns the campaign-relative path of a stored image, probing
// png, jpg and webp in that order.
func (s *Store) ImagePath(category, id string) (string, bool) {
	if validateImageKey(category, id) != nil {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.imagePath(category, id)
}

func (s *Store) imagePath(category, id string) (string, bool) {
	for _, ext := range imageExtensions {
		rel := imageFile(category, id, ext)
		if s.driver.Exists(s.path(rel)) {
			return rel, true
		}
	}
	return "", false
}

// ImageExists reports whether any image is stored for the id.
func (s *Store) ImageExists(category, id string) bool {
	_, ok := s.ImagePath(category, id)
	return ok
}

// ReadImage returns the bytes and MIME type of a stored image.
func (s *Store) ReadImage(category, id string) ([]byte, string, error) {
	if err := validateImageKey(category, id); err != nil {
		return nil, "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rel, ok := s.imagePath(category, id)
	if !ok {
		return nil, "", notFound("image", category+"/"+id)
	}
	data, err := s.driver.ReadFile(s.path(rel))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	return data, MIMEFor(rel[strings.LastIndexByte(rel, '.')+1:]), nil
}

// DeleteImage removes every stored image for the id. Removing nothing is not
// an error.
func (s *Store) DeleteImage(category, id string) error {
	if err := validateImageKey(category, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteImage(category, id)
}

func (s *Store) deleteImage(category, id string) error {
	for _, ext := range imageExtensions {
		if err := s.driver.RemoveAll(s.path(imageFile(category, id, ext))); err != nil {
			return fmt.Errorf("failed to delete image: %w", err)
		}
	}
	return nil
}
