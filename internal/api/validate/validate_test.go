package validate

import (
	"errors"
	"testing"

	"github.com/partypulse/partygen/internal/model"
)

func validRequest() *model.GenerationRequest {
	return &model.GenerationRequest{
		Mode:        model.ModeTruth,
		Style:       "搞笑",
		Locale:      "zh-CN",
		Count:       1,
		AudienceAge: "adult",
		Intensity:   "medium",
		Seed:        7,
	}
}

func TestRequest_Valid(t *testing.T) {
	if err := Request(validRequest()); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
}

func TestRequest_CountBoundaries(t *testing.T) {
	for _, n := range []int{1, 20} {
		req := validRequest()
		req.Count = n
		if err := Request(req); err != nil {
			t.Fatalf("count=%d should be accepted: %v", n, err)
		}
	}
	for _, n := range []int{0, 21, -1} {
		req := validRequest()
		req.Count = n
		err := Request(req)
		assertKind(t, err, model.InvalidCount)
	}
}

func TestRequest_ErrorKinds(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*model.GenerationRequest)
		kind   string
	}{
		{"bad mode", func(r *model.GenerationRequest) { r.Mode = "trivia" }, model.InvalidMode},
		{"empty mode", func(r *model.GenerationRequest) { r.Mode = "" }, model.InvalidMode},
		{"empty style", func(r *model.GenerationRequest) { r.Style = "" }, model.InvalidStyle},
		{"bad locale", func(r *model.GenerationRequest) { r.Locale = "fr-FR" }, model.InvalidLocale},
		{"bad audience", func(r *model.GenerationRequest) { r.AudienceAge = "senior" }, model.InvalidAudience},
		{"bad intensity", func(r *model.GenerationRequest) { r.Intensity = "extreme" }, model.InvalidIntensity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(req)
			assertKind(t, Request(req), tc.kind)
		})
	}
}

func assertKind(t *testing.T, err error, kind string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	var ve *model.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if ve.Kind != kind {
		t.Fatalf("expected kind %s, got %s", kind, ve.Kind)
	}
}
