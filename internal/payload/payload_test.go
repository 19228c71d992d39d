// file: internal/payload/payload_test.go

package payload

import (
	"bytes"
	"errors"
	"testing"
)

func TestCanonicalizeExactBytes(t *testing.T) {
	// The reference scenario: the signer-side serializer must produce the
	// identical byte string for this triple.
	got, err := Canonicalize("POST", "/admin/reset", []byte(`{"x":1}`))
	if err != nil {
		t.Fatalf("Canonicalize() error = %v", err)
	}

	want := `{"method":"post","uri":"/admin/reset","body":"{\"x\":1}"}`
	if string(got) != want {
		t.Errorf("Canonicalize() = %s, want %s", got, want)
	}
}

func TestCanonicalizeLowercasesMethod(t *testing.T) {
	tests := []string{"GET", "get", "Get", "gEt"}

	var first []byte
	for _, method := range tests {
		got, err := Canonicalize(method, "/", nil)
		if err != nil {
			t.Fatalf("Canonicalize(%q) error = %v", method, err)
		}
		if first == nil {
			first = got
			continue
		}
		if !bytes.Equal(got, first) {
			t.Errorf("Canonicalize(%q) = %s, want %s", method, got, first)
		}
	}
}

func TestCanonicalizeDeterministic(t *testing.T) {
	a, err := Canonicalize("put", "/api/v1/config?force=true", []byte("payload text"))
	if err != nil {
		t.Fatalf("Canonicalize() error = %v", err)
	}
	b, err := Canonicalize("put", "/api/v1/config?force=true", []byte("payload text"))
	if err != nil {
		t.Fatalf("Canonicalize() error = %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("repeated canonicalization differs: %s vs %s", a, b)
	}
}

func TestCanonicalizeDistinguishesInputs(t *testing.T) {
	base, _ := Canonicalize("post", "/admin/reset", []byte(`{"x":1}`))

	tests := []struct {
		name   string
		method string
		uri    string
		body   string
	}{
		{"different uri", "post", "/admin/reset2", `{"x":1}`},
		{"different body", "post", "/admin/reset", `{"x":2}`},
		{"different method", "delete", "/admin/reset", `{"x":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Canonicalize(tt.method, tt.uri, []byte(tt.body))
			if err != nil {
				t.Fatalf("Canonicalize() error = %v", err)
			}
			if bytes.Equal(got, base) {
				t.Errorf("Canonicalize() collided with base payload: %s", got)
			}
		})
	}
}

func TestCanonicalizeNoHTMLEscaping(t *testing.T) {
	got, err := Canonicalize("post", "/admin?a=1&b=2", []byte(`<tag> & "quotes"`))
	if err != nil {
		t.Fatalf("Canonicalize() error = %v", err)
	}

	want := `{"method":"post","uri":"/admin?a=1&b=2","body":"<tag> & \"quotes\""}`
	if string(got) != want {
		t.Errorf("Canonicalize() = %s, want %s", got, want)
	}
}

func TestCanonicalizeEmptyBody(t *testing.T) {
	got, err := Canonicalize("get", "/", nil)
	if err != nil {
		t.Fatalf("Canonicalize() error = %v", err)
	}

	want := `{"method":"get","uri":"/","body":""}`
	if string(got) != want {
		t.Errorf("Canonicalize() = %s, want %s", got, want)
	}
}

func TestCanonicalizeRejectsInvalidUTF8(t *testing.T) {
	_, err := Canonicalize("post", "/", []byte{0xff, 0xfe, 0xfd})
	if !errors.Is(err, ErrBodyNotUTF8) {
		t.Errorf("Canonicalize() error = %v, want ErrBodyNotUTF8", err)
	}
}
