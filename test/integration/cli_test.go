package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/unitworks/switchboard/cmd/switchboard/app"
)

// service is a minimal endpoint-catalog service: it publishes a catalog
// document, accepts form sign-ins, reports the signed-in unit, and echoes
// the path of every other request.
type service struct {
	mu       sync.Mutex
	signIns  int
	signOuts int

	srv *httptest.Server
}

func newService(t *testing.T) *service {
	t.Helper()

	s := &service{}
	mux := http.NewServeMux()

	mux.HandleFunc("/catalog.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"auth-url": %q,
			"signout-url": %q,
			"current-user-unit": %q,
			"unit-members": %q
		}`,
			s.srv.URL+"/login",
			s.srv.URL+"/logout",
			s.srv.URL+"/me/unit",
			s.srv.URL+"/units/{unit}/members")
	})

	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.signIns++
		s.mu.Unlock()

		if r.PostFormValue("password") != "hunter2" {
			// Wrong credentials answer 200 with the sign-in page again
			fmt.Fprint(w, "<html>sign in</html>")
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "s1", Path: "/"})
		w.Header().Set("Etag", `"session"`)
		fmt.Fprint(w, "ok")
	})

	mux.HandleFunc("/logout", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		s.signOuts++
		s.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("/me/unit", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"message": "56030"}`)
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"path": %q}`, r.URL.Path)
	})

	s.srv = httptest.NewServer(mux)
	t.Cleanup(s.srv.Close)
	return s
}

func (s *service) counts() (signIns, signOuts int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signIns, s.signOuts
}

func newApp(t *testing.T, s *service) *app.App {
	t.Helper()

	application, err := app.New("test", "test", "test", "test", app.WithConfig(&app.Config{
		CatalogURL: s.srv.URL + "/catalog.json",
		Username:   "ava",
		Password:   "hunter2",
		LogFormat:  "json",
		LogOutput:  "discard",
	}))
	if err != nil {
		t.Fatalf("app.New() failed: %v", err)
	}
	return application
}

// TestEndpointsCommand lists a remote catalog end to end.
func TestEndpointsCommand(t *testing.T) {
	s := newService(t)
	application := newApp(t, s)

	var out bytes.Buffer
	cmd := application.CreateEndpointsCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--format", "json"})

	if err := cmd.ExecuteContext(t.Context()); err != nil {
		t.Fatalf("endpoints command failed: %v", err)
	}

	var views []struct {
		Name   string   `json:"name"`
		Params []string `json:"params"`
	}
	if err := json.Unmarshal(out.Bytes(), &views); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}

	names := make([]string, len(views))
	for i, v := range views {
		names[i] = v.Name
	}
	want := []string{"auth-url", "current-user-unit", "signout-url", "unit-members"}
	if len(names) != len(want) {
		t.Fatalf("endpoints = %v, want %v", names, want)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("endpoints[%d] = %q, want %q", i, names[i], name)
		}
	}

	// Listing the catalog must not sign in
	if signIns, _ := s.counts(); signIns != 0 {
		t.Errorf("endpoints command signed in %d times", signIns)
	}
}

// TestCallCommand performs a full sign-in, call, sign-out cycle.
func TestCallCommand(t *testing.T) {
	s := newService(t)
	application := newApp(t, s)

	var out bytes.Buffer
	cmd := application.CreateCallCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"unit-members"})

	if err := cmd.ExecuteContext(t.Context()); err != nil {
		t.Fatalf("call command failed: %v", err)
	}

	// The session unit fills the template parameter
	if !strings.Contains(out.String(), `"/units/56030/members"`) {
		t.Errorf("output = %q, want the echoed unit path", out.String())
	}

	signIns, signOuts := s.counts()
	if signIns != 1 {
		t.Errorf("signIns = %d, want 1", signIns)
	}
	if signOuts != 1 {
		t.Errorf("signOuts = %d, want 1", signOuts)
	}
}

// TestCallCommand_BadCredentials surfaces authentication failures.
func TestCallCommand_BadCredentials(t *testing.T) {
	s := newService(t)

	application, err := app.New("test", "test", "test", "test", app.WithConfig(&app.Config{
		CatalogURL: s.srv.URL + "/catalog.json",
		Username:   "ava",
		Password:   "wrong",
		LogFormat:  "json",
		LogOutput:  "discard",
	}))
	if err != nil {
		t.Fatalf("app.New() failed: %v", err)
	}

	var out bytes.Buffer
	cmd := application.CreateCallCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"unit-members"})

	if err := cmd.ExecuteContext(t.Context()); err == nil {
		t.Fatal("call command succeeded with bad credentials")
	}

	if _, signOuts := s.counts(); signOuts != 0 {
		t.Errorf("signOuts = %d, want 0 (nothing to sign out)", signOuts)
	}
}
