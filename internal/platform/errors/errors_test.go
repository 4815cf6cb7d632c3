package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{New(CodeInvalidFilter, "bad filter"), http.StatusBadRequest},
		{fmt.Errorf("handler: %w", New(CodeNotFound, "missing")), http.StatusNotFound},
		{New(CodeMethodNotAllowed, "post only"), http.StatusMethodNotAllowed},
		{New(CodeStorageUnavailable, "locked"), http.StatusServiceUnavailable},
		{stderrors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestErrorIsMatchesCode(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(CodeExportFailed, "write csv", cause)
	if !stderrors.Is(err, New(CodeExportFailed, "")) {
		t.Fatal("expected code match")
	}
	if stderrors.Is(err, New(CodeNotFound, "")) {
		t.Fatal("expected code mismatch")
	}
	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	if err.Error() != "write csv: disk full" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(stderrors.New("x")); got != CodeUnknown {
		t.Fatalf("expected unknown, got %s", got)
	}
	if got := CodeOf(WithMetadata(CodeInvalidColumn, "hide", map[string]string{"Column": "name"})); got != CodeInvalidColumn {
		t.Fatalf("expected invalid column, got %s", got)
	}
}
