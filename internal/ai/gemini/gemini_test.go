package gemini

import (
	"errors"
	"testing"

	"github.com/ydaher97/code-crafter/internal/common"

	"google.golang.org/api/googleapi"
)

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"score": 80}`, `{"score": 80}`},
		{"```json\n{\"score\": 80}\n```", `{"score": 80}`},
		{"```\n{\"score\": 80}\n```", `{"score": 80}`},
		{"  {\"score\": 80}  ", `{"score": 80}`},
	}
	for _, tc := range cases {
		if got := stripCodeFences(tc.in); got != tc.want {
			t.Errorf("stripCodeFences(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"503", &googleapi.Error{Code: 503, Message: "overloaded"}, common.ErrUpstreamUnavailable},
		{"429", &googleapi.Error{Code: 429, Message: "rate limited"}, common.ErrUpstreamUnavailable},
		{"500", &googleapi.Error{Code: 500, Message: "internal"}, common.ErrUpstreamError},
		{"text overloaded", errors.New("the model is overloaded"), common.ErrUpstreamUnavailable},
		{"opaque", errors.New("connection reset"), common.ErrUpstreamError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := classify(tc.err); !errors.Is(got, tc.want) {
				t.Fatalf("classify(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
