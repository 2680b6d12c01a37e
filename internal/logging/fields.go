package logging

import "log/slog"

// Common field names for consistent logging across the relay.
const (
	FieldService    = "service"
	FieldRepository = "repository"
	FieldImageTag   = "image_tag"
	FieldSubject    = "subject"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
)

// Service returns a slog attribute for the service name.
func Service(name string) slog.Attr {
	return slog.String(FieldService, name)
}

// Repository returns a slog attribute for a repository name.
func Repository(repo string) slog.Attr {
	return slog.String(FieldRepository, repo)
}

// ImageTag returns a slog attribute for an image tag.
func ImageTag(tag string) slog.Attr {
	return slog.String(FieldImageTag, tag)
}

// Error returns a slog attribute for an error.
func Error(err error) slog.Attr {
	return slog.String(FieldError, err.Error())
}

// Duration returns a slog attribute for duration in milliseconds.
func Duration(ms int64) slog.Attr {
	return slog.Int64(FieldDuration, ms)
}
