package sitecmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-sitegen/internal/site"
)

type stubService struct {
	buildCalls  int
	cleanCalls  int
	lastOptions site.BuildOptions
	buildResult *site.BuildResult
	cleanResult *site.CleanResult
	buildErr    error
	cleanErr    error
}

func (s *stubService) Build(ctx context.Context, opts site.BuildOptions) (*site.BuildResult, error) {
	s.buildCalls++
	s.lastOptions = opts
	return s.buildResult, s.buildErr
}

func (s *stubService) Clean(ctx context.Context) (*site.CleanResult, error) {
	s.cleanCalls++
	return s.cleanResult, s.cleanErr
}

func TestBuildSiteHandlerInvokesService(t *testing.T) {
	svc := &stubService{buildResult: &site.BuildResult{BuildID: "b1", PagesBuilt: 3}}
	var envelope BuildEnvelope

	h := NewBuildSiteHandler(svc, nil)
	err := h.Execute(context.Background(), BuildSiteCommand{
		Domain:     "example.com",
		Force:      true,
		CleanFirst: true,
		ResultCallback: func(e BuildEnvelope) {
			envelope = e
		},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if svc.buildCalls != 1 {
		t.Fatalf("build calls = %d", svc.buildCalls)
	}
	if !svc.lastOptions.Force || !svc.lastOptions.CleanFirst {
		t.Fatalf("options not propagated: %+v", svc.lastOptions)
	}
	if envelope.Result == nil || envelope.Result.BuildID != "b1" {
		t.Fatalf("callback envelope = %+v", envelope)
	}
	if envelope.Metadata["domain"] != "example.com" {
		t.Fatalf("metadata = %v", envelope.Metadata)
	}
}

func TestBuildSiteHandlerRequiresDomain(t *testing.T) {
	svc := &stubService{}
	h := NewBuildSiteHandler(svc, nil)

	err := h.Execute(context.Background(), BuildSiteCommand{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if svc.buildCalls != 0 {
		t.Fatal("service should not run on invalid message")
	}
}

func TestBuildSiteHandlerPropagatesServiceError(t *testing.T) {
	svc := &stubService{buildErr: errors.New("disk full")}
	h := NewBuildSiteHandler(svc, nil)

	err := h.Execute(context.Background(), BuildSiteCommand{Domain: "example.com"})
	if err == nil {
		t.Fatal("expected build error")
	}
}

func TestCleanSiteHandlerInvokesService(t *testing.T) {
	svc := &stubService{cleanResult: &site.CleanResult{Removed: []string{"a.html"}}}
	var envelope CleanEnvelope

	h := NewCleanSiteHandler(svc, nil)
	err := h.Execute(context.Background(), CleanSiteCommand{
		Domain: "example.com",
		ResultCallback: func(e CleanEnvelope) {
			envelope = e
		},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if svc.cleanCalls != 1 {
		t.Fatalf("clean calls = %d", svc.cleanCalls)
	}
	if envelope.Result == nil || len(envelope.Result.Removed) != 1 {
		t.Fatalf("callback envelope = %+v", envelope)
	}
}

func TestCleanSiteHandlerRequiresDomain(t *testing.T) {
	h := NewCleanSiteHandler(&stubService{}, nil)
	if err := h.Execute(context.Background(), CleanSiteCommand{}); err == nil {
		t.Fatal("expected validation error")
	}
}
