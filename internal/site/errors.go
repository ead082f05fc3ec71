package site

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

var (
	// ErrDomainRequired indicates no domain was supplied to the service.
	ErrDomainRequired = errors.New("site: domain is required")
	// ErrSourceMissing indicates the domain's source tree does not exist.
	ErrSourceMissing = errors.New("site: domain source path does not exist")
	// ErrConverterRequired indicates the service was wired without a converter.
	ErrConverterRequired = errors.New("site: markdown converter is required")
)

const (
	codeSourceMissing = "SITE_SOURCE_MISSING"
	codeConfigInvalid = "SITE_CONFIG_INVALID"
	codePublishFailed = "SITE_PUBLISH_FAILED"
)

// wrapNotFound tags missing-input failures so the CLI can surface them as a
// distinct, user-visible condition (exit code 2).
func wrapNotFound(err error, msg string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryNotFound, msg).
		WithTextCode(codeSourceMissing)
}

// wrapValidation tags configuration problems (bad settings, broken template
// overrides) distinctly from I/O failures.
func wrapValidation(err error, msg string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, msg).
		WithTextCode(codeConfigInvalid)
}

// wrapOperation tags write/copy failures against the destination tree.
func wrapOperation(err error, msg string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryOperation, msg).
		WithTextCode(codePublishFailed)
}
