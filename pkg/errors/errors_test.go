package errors

import (
	"net/http"
	"testing"

	stderrors "errors"
)

func TestHTTPStatusCodeMapsAppErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{LanguageNotSupported("klingon"), http.StatusBadRequest},
		{InvalidSchemaType("array"), http.StatusBadRequest},
		{InvalidDocSchema("title must be text"), http.StatusBadRequest},
		{InvalidProperty("author.age"), http.StatusBadRequest},
		{InvalidQueryParams("unknown operator"), http.StatusBadRequest},
		{DocIdDoesNotExist("abc"), http.StatusNotFound},
		{IndexRemovalFailure("missing from text index"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.err); got != c.want {
			t.Errorf("HTTPStatusCode(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestAppErrorUnwrapsToSentinel(t *testing.T) {
	err := DocIdDoesNotExist("abc")
	if !stderrors.Is(err, ErrDocIdDoesNotExist) {
		t.Fatal("expected errors.Is to match the sentinel")
	}
}

func TestHTTPStatusCodeDefaultsToInternal(t *testing.T) {
	if got := HTTPStatusCode(stderrors.New("boom")); got != http.StatusInternalServerError {
		t.Fatalf("got %d, want 500", got)
	}
}
