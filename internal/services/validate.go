package services

import (
	"net/mail"
	"net/url"
	"strings"
	"unicode"

	"github.com/phyn2-2/veritas-phase1/internal/dto"
	"github.com/phyn2-2/veritas-phase1/internal/models"
)

// NormalizeUsername lowercases and validates a username: 3-50 chars,
// alphanumeric plus underscore.
func NormalizeUsername(username string) (string, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if len(username) < 3 || len(username) > 50 {
		return "", validationErr("username must be 3-50 characters")
	}
	for _, r := range username {
		if r != '_' && !unicode.IsLower(r) && !unicode.IsDigit(r) {
			return "", validationErr("username must be alphanumeric (underscores allowed)")
		}
	}
	return username, nil
}

func ValidateEmail(email string) error {
	if email == "" || len(email) > 255 {
		return validationErr("valid email required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return validationErr("valid email required")
	}
	return nil
}

// ValidatePassword enforces the minimum strength rules: at least 8 characters
// with an uppercase letter, a lowercase letter and a digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return validationErr("password must be at least 8 characters")
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		return validationErr("password must contain an uppercase letter")
	}
	if !lower {
		return validationErr("password must contain a lowercase letter")
	}
	if !digit {
		return validationErr("password must contain a digit")
	}
	return nil
}

func validateSubmission(req *dto.CreateSubmissionRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return validationErr("title is required")
	}
	if len(req.Title) > 200 {
		return validationErr("title must be at most 200 characters")
	}

	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		return validationErr("description is required")
	}
	if len(req.Description) > 10000 {
		return validationErr("description must be at most 10000 characters")
	}

	switch req.Type {
	case models.TypeIdea, models.TypeWork, models.TypeAsset:
	default:
		return validationErr("type must be one of: idea, work, asset")
	}

	if req.FileURL != nil {
		raw := strings.TrimSpace(*req.FileURL)
		if raw == "" {
			req.FileURL = nil
			return nil
		}
		if len(raw) > 500 {
			return validationErr("file_url must be at most 500 characters")
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme != "https" || u.Host == "" {
			return validationErr("file_url must be a valid https URL")
		}
		req.FileURL = &raw
	}
	return nil
}
