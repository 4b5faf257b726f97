package controllers

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func albumCacheKey(albumID string) string {
	return "album:" + albumID
}
