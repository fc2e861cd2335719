package http

import (
	"io"
	stdhttp "net/http"
	"strings"
	"testing"
)

func TestPageDefaultTitle(t *testing.T) {
	ts, _ := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("page request failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "<h1>Websocket Counter</h1>") {
		t.Fatalf("default title missing from page: %s", body)
	}
}

func TestPageTrickHostTitle(t *testing.T) {
	ts, _ := startTestServer(t)

	req, err := stdhttp.NewRequest(stdhttp.MethodGet, ts.URL+"/", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Host = "trick.example.com"

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("page request failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "<h1>Trick or Treater Counter</h1>") {
		t.Fatalf("trick title missing from page: %s", body)
	}
}
