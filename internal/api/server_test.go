package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rfallows/hearth-bridge/internal/conversation"
	"github.com/rfallows/hearth-bridge/internal/dispatch"
	"github.com/rfallows/hearth-bridge/internal/hub"
	"github.com/rfallows/hearth-bridge/internal/infrastructure/config"
	"github.com/rfallows/hearth-bridge/internal/infrastructure/logging"
	"github.com/rfallows/hearth-bridge/internal/intent"
	"github.com/rfallows/hearth-bridge/internal/suggest"
)

// fakeHub serves a fixed snapshot and counts fetches.
type fakeHub struct {
	snap    *hub.Snapshot
	fetches int
}

func (f *fakeHub) FetchStates(_ context.Context) *hub.Snapshot {
	f.fetches++
	return f.snap
}

// fakeCaller records service calls and always succeeds.
type fakeCaller struct {
	calls []string
}

func (f *fakeCaller) CallService(_ context.Context, domain, service, entityID string, _ map[string]any) bool {
	f.calls = append(f.calls, domain+"."+service+":"+entityID)
	return true
}

type testEnv struct {
	srv    *httptest.Server
	hub    *fakeHub
	caller *fakeCaller
}

func newTestEnv(t *testing.T, features config.FeatureConfig) *testEnv {
	t.Helper()

	logger := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"}, "test")

	fh := &fakeHub{snap: hub.NewSnapshot([]hub.Device{
		{EntityID: "light.kitchen", State: "on", Attributes: map[string]any{"brightness": 200.0}},
		{EntityID: "light.hall", State: "off"},
		{EntityID: "switch.fan", State: "off"},
	})}
	fc := &fakeCaller{}

	s, err := New(Deps{
		Config:       config.APIConfig{Host: "127.0.0.1", Port: 0},
		Features:     features,
		Logger:       logger,
		Hub:          fh,
		Classifier:   intent.NewRuleClassifier(),
		Dispatcher:   dispatch.New(fc, logger),
		Conversation: conversation.New(10, conversation.EchoResponder{}, logger),
		Suggester:    suggest.NewBuilder(),
		Version:      "1.0.0-test",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	srv := httptest.NewServer(s.buildRouter())
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, hub: fh, caller: fc}
}

func allEnabled() config.FeatureConfig {
	return config.FeatureConfig{Voice: true, Automations: true, ImageRecognition: true}
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshalling request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp, decodeBody(t, resp)
}

func getJSON(t *testing.T, url string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return body
}

func TestControl_ExecutesMatchingDevices(t *testing.T) {
	env := newTestEnv(t, allEnabled())

	resp, body := postJSON(t, env.srv.URL+"/api/control", map[string]string{
		"command": "turn on the lights",
	})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["command"] != "turn on the lights" {
		t.Errorf("command = %v, want echo of request", body["command"])
	}
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}

	results, ok := body["results"].([]any)
	if !ok || len(results) != 2 {
		t.Fatalf("results = %v, want two light entries", body["results"])
	}
	first, _ := results[0].(map[string]any)
	if first["entity_id"] != "light.kitchen" || first["action"] != "light.turn_on" || first["success"] != true {
		t.Errorf("first result = %v", first)
	}

	wantCalls := []string{"light.turn_on:light.kitchen", "light.turn_on:light.hall"}
	if len(env.caller.calls) != 2 || env.caller.calls[0] != wantCalls[0] || env.caller.calls[1] != wantCalls[1] {
		t.Errorf("hub calls = %v, want %v", env.caller.calls, wantCalls)
	}
}

func TestControl_EmptyCommand(t *testing.T) {
	env := newTestEnv(t, allEnabled())

	resp, body := postJSON(t, env.srv.URL+"/api/control", map[string]string{"command": ""})

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if body["error"] == "" || body["error"] == nil {
		t.Errorf("error = %v, want message", body["error"])
	}
	if env.hub.fetches != 0 {
		t.Errorf("hub fetches = %d, want 0 for rejected command", env.hub.fetches)
	}
	if len(env.caller.calls) != 0 {
		t.Errorf("hub calls = %v, want none for rejected command", env.caller.calls)
	}
}

func TestControl_UnrecognizedCommandEmptyResults(t *testing.T) {
	env := newTestEnv(t, allEnabled())

	resp, body := postJSON(t, env.srv.URL+"/api/control", map[string]string{
		"command": "play some music",
	})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["success"] != true {
		t.Errorf("success = %v, want true for no-op command", body["success"])
	}
	results, ok := body["results"].([]any)
	if !ok {
		t.Fatalf("results = %v (%T), want JSON array, not null", body["results"], body["results"])
	}
	if len(results) != 0 {
		t.Errorf("results = %v, want empty", results)
	}
}

func TestControl_InvalidJSON(t *testing.T) {
	env := newTestEnv(t, allEnabled())

	resp, err := http.Post(env.srv.URL+"/api/control", "application/json", bytes.NewReader([]byte("{not json")))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestDevices(t *testing.T) {
	env := newTestEnv(t, allEnabled())

	resp, body := getJSON(t, env.srv.URL+"/api/devices")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["count"] != 3.0 {
		t.Errorf("count = %v, want 3", body["count"])
	}

	devices, ok := body["devices"].(map[string]any)
	if !ok || len(devices) != 3 {
		t.Fatalf("devices = %v, want map of three entries", body["devices"])
	}
	kitchen, _ := devices["light.kitchen"].(map[string]any)
	if kitchen["state"] != "on" {
		t.Errorf("light.kitchen state = %v, want on", kitchen["state"])
	}

	// Devices without attributes marshal as an empty object, not null.
	hall, _ := devices["light.hall"].(map[string]any)
	if attrs, ok := hall["attributes"].(map[string]any); !ok || len(attrs) != 0 {
		t.Errorf("light.hall attributes = %v, want empty object", hall["attributes"])
	}
}

func TestAnalyze(t *testing.T) {
	env := newTestEnv(t, allEnabled())

	resp, body := postJSON(t, env.srv.URL+"/api/analyze", map[string]string{
		"entity_id": "camera.front_door",
		"prompt":    "is anyone at the door",
	})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["entity_id"] != "camera.front_door" || body["prompt"] != "is anyone at the door" {
		t.Errorf("echo fields = %v", body)
	}
	if body["analysis"] == "" || body["analysis"] == nil {
		t.Errorf("analysis = %v, want non-empty", body["analysis"])
	}
}

func TestAnalyze_ValidationBeforeFeatureGate(t *testing.T) {
	env := newTestEnv(t, config.FeatureConfig{Voice: true, Automations: true, ImageRecognition: false})

	// Missing fields win over the disabled feature.
	resp, _ := postJSON(t, env.srv.URL+"/api/analyze", map[string]string{"entity_id": "camera.front_door"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing prompt: status = %d, want 400", resp.StatusCode)
	}

	resp, body := postJSON(t, env.srv.URL+"/api/analyze", map[string]string{
		"entity_id": "camera.front_door",
		"prompt":    "is anyone there",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("disabled feature: status = %d, want 403", resp.StatusCode)
	}
	if body["error"] != "Image recognition is disabled" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestAutomationSuggest(t *testing.T) {
	env := newTestEnv(t, allEnabled())

	resp, body := postJSON(t, env.srv.URL+"/api/automation-suggest", map[string]string{
		"trigger": "motion detected",
		"action":  "turn on the hallway light",
	})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	suggestion, ok := body["suggestion"].(map[string]any)
	if !ok {
		t.Fatalf("suggestion = %v, want object", body["suggestion"])
	}
	if suggestion["name"] != "AI-Generated Automation" {
		t.Errorf("suggestion name = %v", suggestion["name"])
	}
	if yamlText, _ := suggestion["automation_yaml"].(string); yamlText == "" {
		t.Error("automation_yaml is empty")
	}
}

func TestAutomationSuggest_Gating(t *testing.T) {
	env := newTestEnv(t, config.FeatureConfig{Voice: true, Automations: false, ImageRecognition: true})

	resp, _ := postJSON(t, env.srv.URL+"/api/automation-suggest", map[string]string{"trigger": "sunset"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing action: status = %d, want 400", resp.StatusCode)
	}

	resp, body := postJSON(t, env.srv.URL+"/api/automation-suggest", map[string]string{
		"trigger": "sunset",
		"action":  "close the blinds",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
	if body["error"] != "Automation suggestions are disabled" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestConversation(t *testing.T) {
	env := newTestEnv(t, allEnabled())

	resp, body := postJSON(t, env.srv.URL+"/api/conversation", map[string]string{"message": "hello"})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["message"] != "hello" {
		t.Errorf("message = %v, want hello", body["message"])
	}
	if body["response"] != "Processing: hello" {
		t.Errorf("response = %v", body["response"])
	}
	if body["history_length"] != 2.0 {
		t.Errorf("history_length = %v, want 2", body["history_length"])
	}

	// A second exchange grows the history.
	_, body = postJSON(t, env.srv.URL+"/api/conversation", map[string]string{"message": "lights off"})
	if body["history_length"] != 4.0 {
		t.Errorf("history_length after second exchange = %v, want 4", body["history_length"])
	}
}

func TestConversation_VoiceGate(t *testing.T) {
	env := newTestEnv(t, config.FeatureConfig{Voice: false, Automations: true, ImageRecognition: true})

	resp, _ := postJSON(t, env.srv.URL+"/api/conversation", map[string]string{"message": ""})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty message: status = %d, want 400", resp.StatusCode)
	}

	resp, body := postJSON(t, env.srv.URL+"/api/conversation", map[string]string{"message": "hello"})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
	if body["error"] != "Voice control is disabled" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestStatus(t *testing.T) {
	env := newTestEnv(t, config.FeatureConfig{Voice: true, Automations: false, ImageRecognition: true})

	resp, body := getJSON(t, env.srv.URL+"/api/status")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["status"] != "running" {
		t.Errorf("status = %v, want running", body["status"])
	}
	if body["version"] != "1.0.0-test" {
		t.Errorf("version = %v", body["version"])
	}

	features, ok := body["features"].(map[string]any)
	if !ok {
		t.Fatalf("features = %v, want object", body["features"])
	}
	if features["voice_control"] != true || features["automations"] != false || features["image_recognition"] != true {
		t.Errorf("features = %v", features)
	}

	// Before any hub fetch the count is zero; a devices call updates it.
	if body["devices_count"] != 0.0 {
		t.Errorf("devices_count = %v, want 0 before any fetch", body["devices_count"])
	}

	getJSON(t, env.srv.URL+"/api/devices")
	_, body = getJSON(t, env.srv.URL+"/api/status")
	if body["devices_count"] != 3.0 {
		t.Errorf("devices_count = %v, want 3 after devices fetch", body["devices_count"])
	}
	if env.hub.fetches != 1 {
		t.Errorf("hub fetches = %d, want 1 (status must not hit the hub)", env.hub.fetches)
	}
}

func TestNew_RequiredDeps(t *testing.T) {
	logger := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"}, "test")

	if _, err := New(Deps{Logger: logger}); err == nil {
		t.Error("New() with missing deps: error = nil, want error")
	}
	if _, err := New(Deps{}); err == nil {
		t.Error("New() with no logger: error = nil, want error")
	}
}
