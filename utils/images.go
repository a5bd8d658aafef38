package utils

import "strings"

// ImageDelimiter separates image references in a single text field
const ImageDelimiter = "|"

// SplitImages splits a "|"-separated image list, dropping empty references
func SplitImages(raw string) []string {
	parts := strings.Split(raw, ImageDelimiter)
	images := make([]string, 0, len(parts))
	for _, part := range parts {
		if ref := strings.TrimSpace(part); ref != "" {
			images = append(images, ref)
		}
	}
	return images
}
