package explain

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tanmay-g/prepdrill/internal/llm"
	"github.com/tanmay-g/prepdrill/internal/qset"
)

func testQuestion(t *testing.T) qset.Question {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "q1.png")
	if err := os.WriteFile(path, []byte("fake image bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	return qset.Question{
		ImageFilename: "q1.png",
		ImagePath:     path,
		Correct:       "C",
	}
}

func waitForResult(t *testing.T, svc *Service, id string) *Result {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if result, ok := svc.Consume(id); ok {
			return result
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("no result before deadline")
	return nil
}

func TestService_GeneratesExplanation(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddResponse("Step 1: read the problem.")
	svc := NewService(mock)

	q := testQuestion(t)
	id, err := svc.Request(t.Context(), q)
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}

	result := waitForResult(t, svc, id)
	if result.Err != nil {
		t.Fatalf("result error = %v", result.Err)
	}
	if result.Text != "Step 1: read the problem." {
		t.Errorf("Text = %q", result.Text)
	}

	calls := mock.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	if string(calls[0].Image) != "fake image bytes" {
		t.Error("image bytes not passed to provider")
	}
	if calls[0].ImageMIME != "image/png" {
		t.Errorf("ImageMIME = %q, want image/png", calls[0].ImageMIME)
	}
	if calls[0].CorrectAnswer != "C" {
		t.Errorf("CorrectAnswer = %q, want C", calls[0].CorrectAnswer)
	}
}

func TestService_ConsumeClearsResult(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := NewService(mock)

	id, err := svc.Request(t.Context(), testQuestion(t))
	if err != nil {
		t.Fatal(err)
	}
	waitForResult(t, svc, id)

	if _, ok := svc.Consume(id); ok {
		t.Error("second Consume should return false")
	}
}

func TestService_ProviderErrorSurfaces(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddError(&llm.ErrProviderUnavailable{Err: errors.New("down")})
	svc := NewService(mock)

	id, err := svc.Request(t.Context(), testQuestion(t))
	if err != nil {
		t.Fatal(err)
	}

	result := waitForResult(t, svc, id)
	if result.Err == nil {
		t.Error("expected provider error in result")
	}
}

func TestService_MissingImage(t *testing.T) {
	svc := NewService(llm.NewMockProvider())

	q := qset.Question{ImagePath: filepath.Join(t.TempDir(), "gone.png"), Correct: "A"}
	id, err := svc.Request(t.Context(), q)
	if err != nil {
		t.Fatal(err)
	}

	result := waitForResult(t, svc, id)
	if result.Err == nil {
		t.Error("expected error for missing image")
	}
}

func TestService_NewRequestAbandonsOld(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.AddResponse("stale")
	mock.AddResponse("fresh")
	svc := NewService(mock)

	q := testQuestion(t)
	oldID, err := svc.Request(t.Context(), q)
	if err != nil {
		t.Fatal(err)
	}
	newID, err := svc.Request(t.Context(), q)
	if err != nil {
		t.Fatal(err)
	}

	waitForResult(t, svc, newID)

	// The abandoned request must never surface, even after its
	// goroutine has had plenty of time to finish.
	time.Sleep(100 * time.Millisecond)
	if _, ok := svc.Consume(oldID); ok {
		t.Error("abandoned request produced a result")
	}
}

func TestService_CancelDropsResult(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := NewService(mock)

	id, err := svc.Request(t.Context(), testQuestion(t))
	if err != nil {
		t.Fatal(err)
	}
	svc.Cancel(id)

	time.Sleep(100 * time.Millisecond)
	if _, ok := svc.Consume(id); ok {
		t.Error("cancelled request produced a result")
	}
}

func TestService_NotAvailable(t *testing.T) {
	svc := NewService(nil)
	if svc.Available() {
		t.Error("Available() = true with nil provider")
	}
	if _, err := svc.Request(t.Context(), qset.Question{}); err == nil {
		t.Error("Request() should fail without provider")
	}
}

func TestImageMIME(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"q.png", "image/png"},
		{"q.jpg", "image/jpeg"},
		{"q.JPEG", "image/jpeg"},
		{"q.gif", "image/gif"},
		{"q.webp", "image/webp"},
		{"q", "image/png"},
	}
	for _, tt := range tests {
		if got := imageMIME(tt.path); got != tt.want {
			t.Errorf("imageMIME(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
