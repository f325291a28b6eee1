// Manual smoke test against a running assistant instance.
// Usage: go run scripts/test_ai_api.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(body []byte) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := os.Getenv("ASSISTANT_TOKEN"); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{} // No timeout, LLM calls are slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("🚀 Starting Assistant API Smoke Test\n")

	sessionID := "smoke-test-session"

	// 1. Code search
	color.Yellow("\n1. Code Search")
	resp, body, err := sendRequest("POST", "/assistant/v1/search", map[string]interface{}{
		"session_id": sessionID,
		"user_input": "How do I read a CSV file?",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 2. Follow-up explanation via ordinal reference
	color.Yellow("\n2. Explain First Result")
	resp, body, err = sendRequest("POST", "/assistant/v1/explain", map[string]interface{}{
		"session_id": sessionID,
		"user_input": "explain the first one",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 3. Combined chat endpoint
	color.Yellow("\n3. Chat (intent classified server-side)")
	resp, body, err = sendRequest("POST", "/assistant/v1/chat", map[string]interface{}{
		"session_id": sessionID,
		"user_input": "Give me a better understanding of seaborn.pairplot()",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 4. Session history
	color.Yellow("\n4. Session History")
	resp, body, err = sendRequest("GET", "/assistant/v1/session/"+sessionID+"/history", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	color.Cyan("\n✅ Smoke test finished")
}
