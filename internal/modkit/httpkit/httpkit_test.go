package httpkit

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "cobrify/internal/platform/errors"
	pnet "cobrify/internal/platform/net"
	phttp "cobrify/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type startReq struct {
	Mode string `json:"mode" validate:"required,oneof=foreground background"`
}

func TestMountAPIV1_CommonStack(t *testing.T) {
	root := phttp.AdaptChi(chi.NewRouter())
	root.Use(RootStack()...)
	MountAPIV1(root, CommonStack(StackOptions{}), func(api Router) {
		Get(api, "/capture/status", func(*http.Request) (any, error) {
			return map[string]bool{"listening": true}, nil
		})
		Post(api, "/capture/stop", func(*http.Request) (any, error) { return nil, nil })
		PostJSON(api, "/capture/start", func(_ *http.Request, in startReq) (any, error) { return in, nil })
		PutJSON(api, "/listener", func(_ *http.Request, in startReq) (any, error) { return in, nil })
		AcceptJSON(api, "/notifications", func(_ *http.Request, in startReq) (any, error) { return nil, nil })
		Delete(api, "/identity", func(*http.Request) (any, error) { return nil, perr.NotFoundf("none") })
		api.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("x") })
	})

	cases := []struct {
		method, path, body string
		status             int
	}{
		{http.MethodGet, "/api/v1/capture/status", "", 200},
		{http.MethodPost, "/api/v1/capture/stop", "", 200},
		{http.MethodPost, "/api/v1/capture/start", `{"mode":"background"}`, 200},
		{http.MethodPost, "/api/v1/capture/start", `{"mode":"sideways"}`, 400},
		{http.MethodPut, "/api/v1/listener", `{"mode":"foreground"}`, 200},
		{http.MethodPost, "/api/v1/notifications", `{"mode":"foreground"}`, 202},
		{http.MethodDelete, "/api/v1/identity", "", 404},
		{http.MethodGet, "/api/v1/boom", "", 500},
		{http.MethodGet, "/health", "", 200},
	}
	for _, c := range cases {
		rr := httptest.NewRecorder()
		root.Mux().ServeHTTP(rr, httptest.NewRequest(c.method, c.path, strings.NewReader(c.body)))
		if rr.Code != c.status {
			t.Fatalf("%s %s: %d want %d (%s)", c.method, c.path, rr.Code, c.status, rr.Body.String())
		}
		if c.status == http.StatusInternalServerError && rr.Header().Get("X-Request-Id") == "" {
			t.Fatalf("%s: request id not mirrored on panic", c.path)
		}
	}
}

func TestHandleAndRespondError(t *testing.T) {
	h := Handle(func(*http.Request) Response { return Accepted(map[string]string{"id": "e1"}) })
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodPost, "/", nil))
	if rr.Code != http.StatusAccepted {
		t.Fatalf("status %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	RespondError(rr, httptest.NewRequest(http.MethodGet, "/", nil), perr.New(perr.ErrorCodePermission, "listener not granted"))
	var w pnet.Wire
	body, _ := io.ReadAll(rr.Body)
	if err := json.Unmarshal(body, &w); err != nil || rr.Code != http.StatusForbidden || w.Code != perr.ErrorCodePermission {
		t.Fatalf("status=%d wire=%+v err=%v", rr.Code, w, err)
	}

	if NoContent().Status != http.StatusNoContent || OK(1).Status != http.StatusOK || Error(perr.Internalf("x")).Body == nil {
		t.Fatalf("alias constructors broken")
	}
}
