// Command smoketest drives a running server through a short session: it
// starts a campaign, plays a turn and checks that history, the player sheet
// and the roster respond.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/tidwall/gjson"
)

func main() {
	baseURL := os.Getenv("SMOKE_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	client := &http.Client{Timeout: 3 * time.Minute}

	fmt.Println("Starting smoke test against", baseURL)

	fmt.Println("1. Creating campaign...")
	body := mustSend(client, baseURL, "POST", "/api/campaign/new", map[string]string{
		"campaignName": fmt.Sprintf("Smoke %d", time.Now().Unix()),
		"playerName":   "Ash",
		"playerRole":   "Smuggler",
	}, http.StatusOK)
	id := gjson.Get(body, "roleplay.id").String()
	if id == "" {
		fail("campaign id missing")
	}
	fmt.Println("PASSED: campaign", id)

	fmt.Println("2. Playing a turn...")
	body = mustSend(client, baseURL, "POST", "/api/message", map[string]string{
		"message": "I step off the boat and look around the harbor.",
	}, http.StatusOK)
	if gjson.Get(body, "narrative").String() == "" {
		fail("empty narrative")
	}
	fmt.Println("PASSED: narrative, updates:", gjson.Get(body, "updates").Raw)

	fmt.Println("3. Reading history...")
	body = mustSend(client, baseURL, "GET", "/api/history", nil, http.StatusOK)
	if n := len(gjson.Parse(body).Array()); n != 1 {
		fail(fmt.Sprintf("expected 1 history entry, got %d", n))
	}
	fmt.Println("PASSED: history")

	fmt.Println("4. Adding a player note...")
	mustSend(client, baseURL, "POST", "/api/player/note", map[string]string{"note": "Smoke test was here"}, http.StatusOK)
	body = mustSend(client, baseURL, "GET", "/api/player", nil, http.StatusOK)
	fmt.Println("PASSED: player notes:", gjson.Get(body, "profile.notes").String())

	fmt.Println("5. Listing characters...")
	body = mustSend(client, baseURL, "GET", "/api/characters", nil, http.StatusOK)
	fmt.Println("PASSED: characters:", len(gjson.Parse(body).Array()))

	fmt.Println("6. Cleaning up...")
	mustSend(client, baseURL, "DELETE", "/api/roleplays/"+id, nil, http.StatusNoContent)
	fmt.Println("PASSED: smoke test")
}

func mustSend(client *http.Client, baseURL, method, endpoint string, payload any, want int) string {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fail(err.Error())
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fail(fmt.Sprintf("creating request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		fail(fmt.Sprintf("%s %s: %v", method, endpoint, err))
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != want {
		fail(fmt.Sprintf("%s %s: status %d: %s", method, endpoint, resp.StatusCode, respBody))
	}
	return string(respBody)
}

func fail(msg string) {
	fmt.Println("FAILED:", msg)
	os.Exit(1)
}
