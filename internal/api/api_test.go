package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/furnet/instance-server/internal/api"
	"github.com/furnet/instance-server/internal/config"
	"github.com/furnet/instance-server/internal/domain"
	"github.com/furnet/instance-server/internal/metrics"
	"github.com/furnet/instance-server/internal/peer"
	"github.com/furnet/instance-server/internal/service"
	"github.com/furnet/instance-server/internal/storage/memory"
)

// testServer creates a test server with in-memory storage.
type testServer struct {
	handler http.Handler
	store   *memory.Store
	cfg     *config.Config
}

func newTestServer(trustedDomain string) *testServer {
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 8000},
		Instance: config.InstanceConfig{
			InstanceURL:   "http://localhost:8000",
			TrustedDomain: trustedDomain,
		},
		Animal: config.AnimalConfig{
			Name:        "Rusty",
			Species:     "Red Panda",
			Description: "A curious and playful red panda who loves to explore",
			Emoji:       "🐼",
		},
	}

	store := memory.New()
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	client := peer.NewClient()

	// localID matches cfg: host "localhost", name "Rusty".
	friendService := service.NewFriendService(store, client, "localhost:rusty", trustedDomain, m)
	healthService := service.NewHealthService(client, m)

	handler := api.NewRouter(cfg, store, friendService, healthService, registry)

	return &testServer{handler: handler, store: store, cfg: cfg}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody io.Reader
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewReader(jsonBytes)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// newPeerServer starts a fake FurNet peer whose /identity endpoint reports
// the given animal. When id or instanceURL are empty they default to values
// derived from the server's own address.
func newPeerServer(t *testing.T, name, id, instanceURL string) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/identity" {
			http.NotFound(w, r)
			return
		}
		reportedURL := instanceURL
		if reportedURL == "" {
			reportedURL = srv.URL
		}
		reportedID := id
		if reportedID == "" {
			reportedID = "127.0.0.1:" + name
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(&domain.Animal{
			ID:          reportedID,
			Name:        name,
			Species:     "Arctic Fox",
			InstanceURL: reportedURL,
			Emoji:       "🦊",
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthProbes(t *testing.T) {
	ts := newTestServer("")

	for path, want := range map[string]string{
		"/health":       "healthy",
		"/health/live":  "alive",
		"/health/ready": "ready",
	} {
		rr := ts.request("GET", path, nil)
		if rr.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, rr.Code)
		}
		var resp map[string]string
		_ = json.Unmarshal(rr.Body.Bytes(), &resp)
		if resp["status"] != want {
			t.Errorf("GET %s status field = %q, want %q", path, resp["status"], want)
		}
	}
}

func TestGetIdentity(t *testing.T) {
	ts := newTestServer("")

	rr := ts.request("GET", "/identity", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("GET /identity status = %d, want 200", rr.Code)
	}

	var animal domain.Animal
	if err := json.Unmarshal(rr.Body.Bytes(), &animal); err != nil {
		t.Fatalf("decoding identity: %v", err)
	}
	if animal.ID != "localhost:rusty" {
		t.Errorf("identity.ID = %q, want %q", animal.ID, "localhost:rusty")
	}
	if animal.Name != "Rusty" || animal.Species != "Red Panda" {
		t.Errorf("identity = %s/%s, want Rusty/Red Panda", animal.Name, animal.Species)
	}
	if animal.InstanceURL != "http://localhost:8000" {
		t.Errorf("identity.InstanceURL = %q, want configured URL", animal.InstanceURL)
	}
}

func TestFriendDirectLifecycle(t *testing.T) {
	ts := newTestServer("furnet.example.com")

	// Empty directory serializes as [].
	rr := ts.request("GET", "/friends", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("GET /friends status = %d, want 200", rr.Code)
	}
	if body := rr.Body.String(); body != "[]\n" {
		t.Errorf("GET /friends body = %q, want empty array", body)
	}

	create := domain.CreateFriendRequest{
		UniqueID: "buddy.furnet.example.com:buddy",
		DNSName:  "buddy.furnet.example.com",
		Name:     "Buddy",
	}
	rr = ts.request("POST", "/friends", create)
	if rr.Code != http.StatusCreated {
		t.Fatalf("POST /friends status = %d, want 201: %s", rr.Code, rr.Body.String())
	}
	var link domain.FriendLink
	if err := json.Unmarshal(rr.Body.Bytes(), &link); err != nil {
		t.Fatalf("decoding friend link: %v", err)
	}
	if link.ConnectedAt.IsZero() {
		t.Error("link.ConnectedAt is zero, want a timestamp")
	}

	// Duplicate unique_id is a 400 regardless of other fields.
	rr = ts.request("POST", "/friends", domain.CreateFriendRequest{
		UniqueID: create.UniqueID,
		DNSName:  "other.furnet.example.com",
		Name:     "Other",
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("duplicate POST /friends status = %d, want 400", rr.Code)
	}

	// Untrusted host is a 403.
	rr = ts.request("POST", "/friends", domain.CreateFriendRequest{
		UniqueID: "evil.com:mallory",
		DNSName:  "evil.com",
		Name:     "Mallory",
	})
	if rr.Code != http.StatusForbidden {
		t.Errorf("untrusted POST /friends status = %d, want 403", rr.Code)
	}

	rr = ts.request("GET", "/friends", nil)
	var friends []domain.FriendLink
	if err := json.Unmarshal(rr.Body.Bytes(), &friends); err != nil {
		t.Fatalf("decoding friends: %v", err)
	}
	if len(friends) != 1 {
		t.Errorf("GET /friends returned %d links, want 1", len(friends))
	}
}

func TestAddFriendByURL(t *testing.T) {
	ts := newTestServer("")
	srv := newPeerServer(t, "buddy", "", "")

	rr := ts.request("POST", "/friends/add", domain.AddFriendRequest{InstanceURL: srv.URL})
	if rr.Code != http.StatusCreated {
		t.Fatalf("POST /friends/add status = %d, want 201: %s", rr.Code, rr.Body.String())
	}

	var link domain.FriendLink
	if err := json.Unmarshal(rr.Body.Bytes(), &link); err != nil {
		t.Fatalf("decoding friend link: %v", err)
	}
	if link.UniqueID != "127.0.0.1:buddy" {
		t.Errorf("link.UniqueID = %q, want %q", link.UniqueID, "127.0.0.1:buddy")
	}
	if link.DNSName != "127.0.0.1" {
		t.Errorf("link.DNSName = %q, want %q", link.DNSName, "127.0.0.1")
	}

	// Registering the same peer again is a duplicate.
	rr = ts.request("POST", "/friends/add", domain.AddFriendRequest{InstanceURL: srv.URL})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("duplicate POST /friends/add status = %d, want 400", rr.Code)
	}
}

func TestAddFriendByURL_SelfRejected(t *testing.T) {
	ts := newTestServer("")
	// The peer reports this instance's own id.
	srv := newPeerServer(t, "rusty", "localhost:rusty", "")

	rr := ts.request("POST", "/friends/add", domain.AddFriendRequest{InstanceURL: srv.URL})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("self POST /friends/add status = %d, want 400: %s", rr.Code, rr.Body.String())
	}

	var apiErr domain.APIError
	_ = json.Unmarshal(rr.Body.Bytes(), &apiErr)
	if apiErr.Reason != domain.ErrCodeSelfFriend {
		t.Errorf("reason = %q, want %q", apiErr.Reason, domain.ErrCodeSelfFriend)
	}

	rr = ts.request("GET", "/friends", nil)
	var friends []domain.FriendLink
	_ = json.Unmarshal(rr.Body.Bytes(), &friends)
	if len(friends) != 0 {
		t.Errorf("directory has %d links after rejected self-friend, want 0", len(friends))
	}
}

func TestAddFriendByURL_UntrustedDomain(t *testing.T) {
	ts := newTestServer("furnet.example.com")
	// Reachable peer whose reported instance_url is outside the allowlist.
	srv := newPeerServer(t, "mallory", "evil.com:mallory", "https://evil.com")

	rr := ts.request("POST", "/friends/add", domain.AddFriendRequest{InstanceURL: srv.URL})
	if rr.Code != http.StatusForbidden {
		t.Fatalf("untrusted POST /friends/add status = %d, want 403: %s", rr.Code, rr.Body.String())
	}
}

func TestAddFriendByURL_PeerUnreachable(t *testing.T) {
	ts := newTestServer("")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	rr := ts.request("POST", "/friends/add", domain.AddFriendRequest{InstanceURL: url})
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("unreachable POST /friends/add status = %d, want 502: %s", rr.Code, rr.Body.String())
	}
}

func TestAddFriendByURL_MissingURL(t *testing.T) {
	ts := newTestServer("")

	rr := ts.request("POST", "/friends/add", map[string]string{})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("POST /friends/add without instance_url status = %d, want 400", rr.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer("")
	good := newPeerServer(t, "buddy", "", "")

	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	rr := ts.request("POST", "/health-check", domain.HealthCheckRequest{
		InstanceURLs: []string{good.URL + "/", deadURL},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("POST /health-check status = %d, want 200: %s", rr.Code, rr.Body.String())
	}

	var results []domain.HealthResult
	if err := json.Unmarshal(rr.Body.Bytes(), &results); err != nil {
		t.Fatalf("decoding results: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	if !results[0].IsAlive {
		t.Errorf("results[0].IsAlive = false, want true")
	}
	if results[0].Name == nil || *results[0].Name != "buddy" {
		t.Errorf("results[0].Name = %v, want buddy", results[0].Name)
	}
	if results[0].InstanceURL != good.URL {
		t.Errorf("results[0].InstanceURL = %q, want normalized %q", results[0].InstanceURL, good.URL)
	}

	if results[1].IsAlive {
		t.Errorf("results[1].IsAlive = true, want false")
	}
	if results[1].Error == nil {
		t.Error("results[1].Error is nil, want a failure code")
	}
	if results[1].Name != nil {
		t.Errorf("results[1].Name = %v, want nil", results[1].Name)
	}
}

func TestHealthCheck_EmptyList(t *testing.T) {
	ts := newTestServer("")

	rr := ts.request("POST", "/health-check", domain.HealthCheckRequest{})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("POST /health-check with empty list status = %d, want 400", rr.Code)
	}
}

func TestItemCRUD(t *testing.T) {
	ts := newTestServer("")

	rr := ts.request("POST", "/items", domain.CreateItemRequest{Name: "Item 1", Description: "First item"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("POST /items status = %d, want 201: %s", rr.Code, rr.Body.String())
	}
	var item domain.Item
	if err := json.Unmarshal(rr.Body.Bytes(), &item); err != nil {
		t.Fatalf("decoding item: %v", err)
	}
	if item.ID == "" {
		t.Error("item.ID is empty, want a generated id")
	}

	rr = ts.request("GET", "/items/"+item.ID, nil)
	if rr.Code != http.StatusOK {
		t.Errorf("GET /items/{id} status = %d, want 200", rr.Code)
	}

	rr = ts.request("GET", "/items", nil)
	var items []domain.Item
	_ = json.Unmarshal(rr.Body.Bytes(), &items)
	if len(items) != 1 {
		t.Errorf("GET /items returned %d items, want 1", len(items))
	}

	rr = ts.request("DELETE", "/items/"+item.ID, nil)
	if rr.Code != http.StatusOK {
		t.Errorf("DELETE /items/{id} status = %d, want 200", rr.Code)
	}

	rr = ts.request("GET", "/items/"+item.ID, nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("GET deleted item status = %d, want 404", rr.Code)
	}
}

func TestItemCreate_MissingName(t *testing.T) {
	ts := newTestServer("")

	rr := ts.request("POST", "/items", domain.CreateItemRequest{Description: "no name"})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("POST /items without name status = %d, want 400", rr.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer("")

	rr := ts.request("GET", "/metrics", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("GET /metrics status = %d, want 200", rr.Code)
	}
}
