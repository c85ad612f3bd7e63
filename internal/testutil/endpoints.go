package testutil

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
)

// GenerateHandler answers generateContent requests with a single candidate
// holding text.
func GenerateHandler(text string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"role":  "model",
						"parts": []any{map[string]any{"text": text}},
					},
				},
			},
		})
	})
}

// FailFirst fails the first n requests with status, then delegates to next.
// Requests are counted starting at 1.
type FailFirst struct {
	N      int32
	Status int
	Next   http.Handler

	count atomic.Int32
}

func (f *FailFirst) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f.count.Add(1) <= f.N {
		w.WriteHeader(f.Status)
		return
	}
	f.Next.ServeHTTP(w, r)
}

// Requests returns how many requests have been served.
func (f *FailFirst) Requests() int32 {
	return f.count.Load()
}
