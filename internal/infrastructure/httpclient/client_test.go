package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
)

type recNotifier struct {
	mu   sync.Mutex
	msgs []string
}

func (n *recNotifier) Notify(level ports.Level, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, string(level)+":"+msg)
}

func newTestClient(t *testing.T, h http.HandlerFunc, token string) (*Client, *recNotifier) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	n := &recNotifier{}
	c := New(srv.URL+"/api", func() string { return token }, n, zerolog.Nop(), WithHTTPClient(srv.Client()))
	return c, n
}

func TestDo_JSONWithBearer(t *testing.T) {
	var gotAuth, gotType, gotPath string
	var gotBody map[string]any
	c, n := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"message":"ok","value":7}`))
	}, "tok-1")

	var out struct{ Value int }
	err := c.Do(context.Background(), http.MethodPost, "/cart", Options{Body: map[string]any{"productId": "p1", "quantity": 1}}, &out)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if gotAuth != "Bearer tok-1" || gotType != "application/json" || gotPath != "/api/cart" {
		t.Fatalf("unexpected request: auth=%q type=%q path=%q", gotAuth, gotType, gotPath)
	}
	if gotBody["productId"] != "p1" || out.Value != 7 {
		t.Fatalf("unexpected body/out: %v / %+v", gotBody, out)
	}
	if len(n.msgs) != 0 {
		t.Fatalf("success must not notify, got %v", n.msgs)
	}
}

func TestDo_SkipAuthAndNoToken(t *testing.T) {
	var auths []string
	h := func(w http.ResponseWriter, r *http.Request) {
		auths = append(auths, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	}

	c, _ := newTestClient(t, h, "tok")
	_ = c.Do(context.Background(), http.MethodGet, "/products", Options{SkipAuth: true}, nil)

	anon, _ := newTestClient(t, h, "")
	_ = anon.Do(context.Background(), http.MethodGet, "/products", Options{}, nil)

	if auths[0] != "" || auths[1] != "" {
		t.Fatalf("expected no credential, got %v", auths)
	}
}

func TestDo_FailureMessage(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"backend message", http.StatusBadRequest, `{"message":"Insufficient stock"}`, "Insufficient stock"},
		{"blank message", http.StatusUnauthorized, `{"message":"  "}`, domain.DefaultFailureMessage},
		{"non json", http.StatusBadGateway, `<html>bad gateway</html>`, domain.DefaultFailureMessage},
		{"empty", http.StatusInternalServerError, ``, domain.DefaultFailureMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, n := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, "")

			err := c.Do(context.Background(), http.MethodGet, "/cart", Options{}, nil)

			var rf *domain.RequestFailedError
			if !errors.As(err, &rf) || !errors.Is(err, domain.ErrRequestFailed) {
				t.Fatalf("expected RequestFailedError, got %v", err)
			}
			if rf.Status != tt.status || rf.Message != tt.wantMsg {
				t.Fatalf("unexpected error %+v", rf)
			}
			if len(n.msgs) != 1 || n.msgs[0] != "error:"+tt.wantMsg {
				t.Fatalf("expected exactly one error toast, got %v", n.msgs)
			}
		})
	}
}

func TestDo_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	n := &recNotifier{}
	c := New(url+"/api", nil, n, zerolog.Nop())
	err := c.Do(context.Background(), http.MethodGet, "/products", Options{}, nil)

	var rf *domain.RequestFailedError
	if !errors.As(err, &rf) || rf.Status != 0 || rf.Err == nil {
		t.Fatalf("expected transport RequestFailedError, got %#v", err)
	}
	if len(n.msgs) != 1 {
		t.Fatalf("expected one toast, got %v", n.msgs)
	}
}

func TestDo_UndecodableSuccessBody(t *testing.T) {
	c, n := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}, "")

	var out map[string]any
	err := c.Do(context.Background(), http.MethodGet, "/products", Options{}, &out)
	if !errors.Is(err, domain.ErrRequestFailed) || len(n.msgs) != 1 {
		t.Fatalf("expected request failure with toast, got %v / %v", err, n.msgs)
	}
}

func TestDo_Multipart(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	var fields map[string]string
	var fileType, fileName string
	var fileData []byte

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mt, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mt != "multipart/form-data" || params["boundary"] == "" {
			http.Error(w, `{"message":"bad content type"}`, http.StatusBadRequest)
			return
		}
		mr := multipart.NewReader(r.Body, params["boundary"])
		fields = map[string]string{}
		for {
			p, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				http.Error(w, `{"message":"bad part"}`, http.StatusBadRequest)
				return
			}
			data, _ := io.ReadAll(p)
			if p.FileName() != "" {
				fileName, fileType, fileData = p.FileName(), p.Header.Get("Content-Type"), data
				continue
			}
			fields[p.FormName()] = string(data)
		}
		_, _ = w.Write([]byte(`{"message":"Product created"}`))
	}, "tok")

	body := NewMultipart().
		Field("name", "Lamp").
		Field("price", "12.5").
		File("image", "lamp.png", strings.NewReader(string(png)))
	if err := c.Do(context.Background(), http.MethodPost, "/products", Options{Body: body}, nil); err != nil {
		t.Fatalf("do: %v", err)
	}
	if fields["name"] != "Lamp" || fields["price"] != "12.5" {
		t.Fatalf("unexpected fields %v", fields)
	}
	if fileName != "lamp.png" || fileType != "image/png" || string(fileData) != string(png) {
		t.Fatalf("unexpected file part %q %q %d bytes", fileName, fileType, len(fileData))
	}
}

func TestMultipart_NilFileIgnored(t *testing.T) {
	body := NewMultipart().Field("name", "x").File("image", "a.png", nil)
	r, ct, err := body.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	raw, _ := io.ReadAll(r)
	if strings.Contains(string(raw), "filename=") || !strings.HasPrefix(ct, "multipart/form-data; boundary=") {
		t.Fatalf("unexpected encoding %q / %q", ct, raw)
	}
}

func TestRoute(t *testing.T) {
	cases := map[string]string{
		"/products?category=home":      "/products",
		"/products/seller/my-products": "/products/seller/my-products",
		"/products/64fa1c":             "/products/:id",
		"/cart/line-9":                 "/cart/:id",
		"/auth/become-seller":          "/auth/become-seller",
		"/orders":                      "/orders",
	}
	for in, want := range cases {
		if got := Route(in); got != want {
			t.Errorf("Route(%q) = %q, want %q", in, got, want)
		}
	}
}
