package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

func main() {
	// Manual smoke test against a running server. Set AUTH_TOKEN to a signed
	// JWT, or leave it empty to exercise the guest flow.
	token := os.Getenv("AUTH_TOKEN")

	registration := map[string]interface{}{
		"activity_id": 1,
		"full_name":   "Test Volunteer",
		"phone":       "081-234-5678",
		"email":       "test@example.com",
		"gender":      "other",
	}

	jsonData, _ := json.Marshal(registration)

	req, err := http.NewRequest("POST", "http://localhost:8080/api/activity-registrations", bytes.NewBuffer(jsonData))
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	fmt.Printf("Status: %s\n", resp.Status)
	fmt.Printf("Response: %s\n", string(body))
}
