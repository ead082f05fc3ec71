package sitecmd

import (
	"context"

	"github.com/goliatone/go-sitegen/internal/commands"
	"github.com/goliatone/go-sitegen/internal/logging"
	"github.com/goliatone/go-sitegen/internal/site"
	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

// BuildSiteHandler orchestrates site builds using the shared command handler foundation.
type BuildSiteHandler struct {
	inner *commands.Handler[BuildSiteCommand]
}

// NewBuildSiteHandler constructs a handler wired to the provided site service.
func NewBuildSiteHandler(service site.Service, logger interfaces.Logger, opts ...commands.HandlerOption[BuildSiteCommand]) *BuildSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg BuildSiteCommand) error {
		if service == nil {
			return site.ErrConverterRequired
		}

		result, err := service.Build(ctx, site.BuildOptions{
			CleanFirst: msg.CleanFirst,
			Force:      msg.Force,
		})
		invokeBuildCallback(msg.ResultCallback, BuildEnvelope{
			Result: result,
			Metadata: map[string]any{
				"operation": "build",
				"domain":    msg.Domain,
			},
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[BuildSiteCommand]{
		commands.WithLogger[BuildSiteCommand](baseLogger),
		commands.WithOperation[BuildSiteCommand]("site.build"),
		commands.WithMessageFields(func(msg BuildSiteCommand) map[string]any {
			fields := map[string]any{
				"domain": msg.Domain,
			}
			if msg.Force {
				fields["force"] = true
			}
			if msg.CleanFirst {
				fields["clean_first"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[BuildSiteCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildSiteHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[BuildSiteCommand].
func (h *BuildSiteHandler) Execute(ctx context.Context, msg BuildSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CleanSiteHandler clears generated artifacts.
type CleanSiteHandler struct {
	inner *commands.Handler[CleanSiteCommand]
}

// NewCleanSiteHandler constructs a handler that cleans the domain destination tree.
func NewCleanSiteHandler(service site.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CleanSiteCommand]) *CleanSiteHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg CleanSiteCommand) error {
		if service == nil {
			return site.ErrConverterRequired
		}

		result, err := service.Clean(ctx)
		invokeCleanCallback(msg.ResultCallback, CleanEnvelope{
			Result: result,
			Metadata: map[string]any{
				"operation": "clean",
				"domain":    msg.Domain,
			},
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[CleanSiteCommand]{
		commands.WithLogger[CleanSiteCommand](baseLogger),
		commands.WithOperation[CleanSiteCommand]("site.clean"),
		commands.WithMessageFields(func(msg CleanSiteCommand) map[string]any {
			return map[string]any{
				"domain": msg.Domain,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[CleanSiteCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CleanSiteHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CleanSiteCommand].
func (h *CleanSiteHandler) Execute(ctx context.Context, msg CleanSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}

func invokeBuildCallback(cb BuildCallback, envelope BuildEnvelope) {
	if cb == nil {
		return
	}
	cb(envelope)
}

func invokeCleanCallback(cb CleanCallback, envelope CleanEnvelope) {
	if cb == nil {
		return
	}
	cb(envelope)
}
