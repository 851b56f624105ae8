package handler

import (
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "shopx/internal/errors"
)

// maxUploadImages caps how many files a single multipart request may attach.
const maxUploadImages = 5

// saveUploadedImages persists the files sent in the multipart "images"
// field under dir and returns their public /uploads paths. A request
// without files returns an empty slice and no error.
func saveUploadedImages(c echo.Context, dir string) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// not a multipart request; no images attached
		return nil, nil
	}
	files := form.File["images"]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > maxUploadImages {
		files = files[:maxUploadImages]
	}

	paths := make([]string, 0, len(files))
	for _, file := range files {
		name := uuid.New().String() + safeExt(file.Filename)
		if err := saveFile(file, filepath.Join(dir, name)); err != nil {
			return nil, apperrors.Server("Failed to store uploaded file", err)
		}
		paths = append(paths, "/uploads/"+name)
	}
	return paths, nil
}

func saveFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

func safeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg":
		return ext
	default:
		return ""
	}
}

// formField returns a pointer to the form field's value when the field was
// present in the request, nil otherwise. Used for selective updates where
// an absent field must not overwrite the stored value.
func formField(params url.Values, name string) *string {
	if vs, ok := params[name]; ok && len(vs) > 0 {
		v := vs[0]
		return &v
	}
	return nil
}

// formTags reads the repeated "tags" field, accepting either repeated
// fields or a single comma-separated value.
func formTags(params url.Values) ([]string, bool) {
	vs, ok := params["tags"]
	if !ok {
		return nil, false
	}
	if len(vs) == 1 && strings.Contains(vs[0], ",") {
		vs = strings.Split(vs[0], ",")
	}
	tags := make([]string, 0, len(vs))
	for _, v := range vs {
		if t := strings.TrimSpace(v); t != "" {
			tags = append(tags, t)
		}
	}
	return tags, true
}
