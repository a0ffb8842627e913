package exports

import (
	"errors"
	"testing"
)

func TestParseRequest(t *testing.T) {
	r, err := ParseRequest([]byte(`{"userId":"user-1","targetEmail":"a@b.c"}`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if r.UserID != "user-1" || r.TargetEmail != "a@b.c" {
		t.Fatalf("got %+v", r)
	}

	for _, body := range []string{`not json`, `{}`, `{"userId":"user-1"}`, `{"targetEmail":"a@b.c"}`} {
		if _, err := ParseRequest([]byte(body)); !errors.Is(err, ErrBadRequest) {
			t.Fatalf("%s: want ErrBadRequest, got %v", body, err)
		}
	}
}
