package sitecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-sitegen/internal/site"
)

const (
	buildSiteMessageType = "sitegen.site.build"
	cleanSiteMessageType = "sitegen.site.clean"
)

// BuildCallback receives build results. The callback is optional and is
// invoked synchronously from the handler when a BuildResult is available.
type BuildCallback func(BuildEnvelope)

// BuildEnvelope captures the outcome of a build command execution.
type BuildEnvelope struct {
	Result   *site.BuildResult
	Metadata map[string]any
}

// CleanCallback receives clean results.
type CleanCallback func(CleanEnvelope)

// CleanEnvelope captures the outcome of a clean command execution.
type CleanEnvelope struct {
	Result   *site.CleanResult
	Metadata map[string]any
}

// BuildSiteCommand generates the static site for one domain.
type BuildSiteCommand struct {
	Domain         string        `json:"domain"`
	Force          bool          `json:"force,omitempty"`
	CleanFirst     bool          `json:"clean_first,omitempty"`
	ResultCallback BuildCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate ensures the command targets a domain.
func (m BuildSiteCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.Domain) == "" {
		errs["domain"] = validation.NewError("sitegen.site.build.domain_required", "domain must not be empty")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CleanSiteCommand clears generated artifacts for one domain.
type CleanSiteCommand struct {
	Domain         string        `json:"domain"`
	ResultCallback CleanCallback `json:"-"`
}

// Type implements command.Message.
func (CleanSiteCommand) Type() string { return cleanSiteMessageType }

// Validate ensures the command targets a domain.
func (m CleanSiteCommand) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(m.Domain) == "" {
		errs["domain"] = validation.NewError("sitegen.site.clean.domain_required", "domain must not be empty")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
