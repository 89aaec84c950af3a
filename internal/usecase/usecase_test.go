package usecase

import (
	"net/http"
	"net/http/httptest"
	stdsync "sync"
	"testing"
	"time"

	"resto-client/internal/data/entity"
	"resto-client/internal/data/repository"
	"resto-client/internal/dto/request"
	"resto-client/internal/session"
	"resto-client/internal/stub"
	"resto-client/internal/sync"
	"resto-client/pkg/restapi"
	"resto-client/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const testAdminSecret = "secret"

// fakeNotifier records the toasts a flow would show.
type fakeNotifier struct {
	mu        stdsync.Mutex
	successes []string
	errors    []string
}

func (n *fakeNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, message)
}

func (n *fakeNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, message)
}

func (n *fakeNotifier) errorCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.errors)
}

// countingHandler tallies requests per method and per path so tests can
// assert that a flow did or did not hit the network.
type countingHandler struct {
	next http.Handler

	mu         stdsync.Mutex
	counts     map[string]int
	pathCounts map[string]int
}

func (h *countingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.counts[r.Method]++
	h.pathCounts[r.Method+" "+r.URL.Path]++
	h.mu.Unlock()
	h.next.ServeHTTP(w, r)
}

func (h *countingHandler) count(method string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.counts[method]
}

// pathCount takes a "METHOD /path" key.
func (h *countingHandler) pathCount(key string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pathCounts[key]
}

func (h *countingHandler) total() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	sum := 0
	for _, c := range h.counts {
		sum += c
	}
	return sum
}

type testEnv struct {
	service  *Service
	sess     *session.Store
	stub     *stub.Store
	notifier *fakeNotifier
	requests *countingHandler
}

// newTestEnv wires the full client stack against an in-process server.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := zap.NewNop()
	store := stub.NewStore(testAdminSecret)
	requests := &countingHandler{
		next:       stub.NewServer(store, log),
		counts:     make(map[string]int),
		pathCounts: make(map[string]int),
	}
	srv := httptest.NewServer(requests)
	t.Cleanup(srv.Close)

	config := &utils.Config{
		API: utils.APIConfig{BaseURL: srv.URL, Timeout: 5 * time.Second},
		Sync: utils.SyncConfig{
			UserOrdersRefresh:  50 * time.Millisecond,
			AdminOrdersRefresh: 50 * time.Millisecond,
			DashboardRefresh:   50 * time.Millisecond,
		},
	}

	api := restapi.NewClient(config.API.BaseURL, config.API.Timeout, log)
	repo := repository.NewRepository(api, log)
	sess := session.NewStore(t.TempDir(), log)
	notifier := &fakeNotifier{}
	service := NewService(repo, config, sync.NewStore(log), sess, notifier, log)

	return &testEnv{
		service:  service,
		sess:     sess,
		stub:     store,
		notifier: notifier,
		requests: requests,
	}
}

func (e *testEnv) loginDefault(t *testing.T) *entity.User {
	t.Helper()
	user, err := e.service.Auth.Login(t.Context(), &request.LoginRequest{
		Name:      "Dina",
		Cellphone: "081234567890",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return user
}

func (e *testEnv) loginAdmin(t *testing.T) *entity.User {
	t.Helper()
	admin, err := e.service.Auth.CreateAdmin(t.Context(), &request.CreateAdminRequest{
		Name:        "Boss",
		Cellphone:   "089876543210",
		AdminSecret: testAdminSecret,
	})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if err := e.sess.Login(admin); err != nil {
		t.Fatalf("persist admin session: %v", err)
	}
	return admin
}

func (e *testEnv) seedProduct(t *testing.T, name, price string, available bool) *entity.Product {
	t.Helper()
	return e.stub.CreateProduct(&request.CreateProductRequest{
		Name:        name,
		Description: name,
		Price:       decimal.RequireFromString(price),
		Category:    "Main",
		Available:   available,
	})
}
