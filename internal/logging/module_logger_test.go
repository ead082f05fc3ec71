package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-sitegen/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "sitegen.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	// Ensure chained operations do not panic.
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	logger := ModuleLogger(provider, siteModule)

	if len(provider.requested) != 1 || provider.requested[0] != siteModule {
		t.Fatalf("expected module %s, got %v", siteModule, provider.requested)
	}

	if len(rec.fields) != 1 {
		t.Fatalf("expected module fields to be applied once, got %d", len(rec.fields))
	}

	if got, ok := rec.fields[0]["module"]; !ok || got != siteModule {
		t.Fatalf("expected module field %s, got %v", siteModule, rec.fields[0]["module"])
	}

	logger.Info("with provider")
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestWithSiteContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}

	WithSiteContext(rec, "notes/todo.md", "", "  ")

	if len(rec.fields) != 1 {
		t.Fatalf("expected one fields application, got %d", len(rec.fields))
	}
	fields := rec.fields[0]
	if fields[fieldSitePath] != "notes/todo.md" {
		t.Fatalf("expected source path field, got %v", fields)
	}
	if _, ok := fields[fieldSiteDomain]; ok {
		t.Fatalf("empty domain must be omitted: %v", fields)
	}
	if _, ok := fields[fieldSiteAction]; ok {
		t.Fatalf("blank action must be omitted: %v", fields)
	}
}

func TestWithFieldsIgnoresNonFieldsLoggers(t *testing.T) {
	logger := WithFields(NoOp(), nil)
	if logger == nil {
		t.Fatal("expected logger, got nil")
	}
}
