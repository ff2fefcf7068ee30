package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const PostImageFolder = "posts_images"

var allowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp"}

func MediaRoot() string {
	if root := viper.GetString("media.root"); len(root) > 0 {
		return root
	}
	return "uploads"
}

func MediaURL(name string) string {
	prefix := viper.GetString("media.url")
	if len(prefix) == 0 {
		prefix = "/media"
	}
	return strings.TrimRight(prefix, "/") + "/" + filepath.ToSlash(name)
}

// NewImagePath allocates a storage name for an uploaded post image. It
// returns the name stored on the post and the path the file should be
// written to.
func NewImagePath(filename string) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !lo.Contains(allowedImageExtensions, ext) {
		return "", "", fmt.Errorf("upload a valid image, %q is not an image file", filename)
	}

	folder := filepath.Join(MediaRoot(), PostImageFolder)
	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", "", fmt.Errorf("unable to prepare media folder: %v", err)
	}

	name := filepath.Join(PostImageFolder, uuid.NewString()+ext)
	return filepath.ToSlash(name), filepath.Join(MediaRoot(), name), nil
}
