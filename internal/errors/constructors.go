package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *PublishError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *PublishError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Change detection errors

func HistoryUnavailable(revision string, cause error) *PublishError {
	return Wrap(cause, CategoryGit, SeverityFatal, "commit history unavailable; fetch full history before publishing").
		WithContext("revision", revision)
}

func RevisionNotFound(revision string, cause error) *PublishError {
	return Wrap(cause, CategoryGit, SeverityFatal, "revision could not be resolved").
		WithContext("revision", revision)
}

// Per-package publish errors

func PackageBuildFailed(pkg string, cause error) *PublishError {
	return Wrap(cause, CategoryBuild, SeverityError, "package build failed").
		WithContext("package", pkg)
}

func PackageUploadFailed(pkg string, cause error) *PublishError {
	return Wrap(cause, CategoryUpload, SeverityError, "package upload failed").
		WithContext("package", pkg)
}

func UploadAuthFailed(pkg string, cause error) *PublishError {
	return Wrap(cause, CategoryAuth, SeverityError, "upload authentication failed").
		WithContext("package", pkg)
}

func UploadNetworkError(pkg string, cause error) *PublishError {
	return WrapRetryable(cause, CategoryNetwork, SeverityWarning, "upload network error").
		WithContext("package", pkg)
}

// Staging errors

func StagingConflict(path string) *PublishError {
	return New(CategoryStaging, SeverityFatal, "staging location already occupied; staging state can no longer be trusted").
		WithContext("path", path)
}
