// Command smoke exercises a running API end to end: registration, login,
// product CRUD with ownership checks, and logout.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

type client struct {
	baseURL string
	http    *http.Client
}

type authResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

type productEnvelope struct {
	Data struct {
		ID          string  `json:"id"`
		User        string  `json:"user"`
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		CreatedAt   string  `json:"created_at"`
	} `json:"data"`
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "base URL of the API")
	flag.Parse()

	c := &client{baseURL: *baseURL, http: &http.Client{Timeout: 10 * time.Second}}
	if err := run(c); err != nil {
		fmt.Printf("✗ %v\n", err)
		os.Exit(1)
	}
	fmt.Println("\nAll checks passed")
}

func run(c *client) error {
	fmt.Println("Testing product API at", c.baseURL)
	suffix := time.Now().UnixNano()

	step("health check")
	if _, err := c.expect(http.MethodGet, "/health", "", nil, http.StatusOK, nil); err != nil {
		return err
	}

	step("register owner")
	ownerEmail := fmt.Sprintf("owner-%d@example.com", suffix)
	var owner authResponse
	if _, err := c.expect(http.MethodPost, "/v1/register", "", map[string]string{
		"name": "Owner", "email": ownerEmail, "password": "password123",
	}, http.StatusOK, &owner); err != nil {
		return err
	}

	step("login owner")
	var login authResponse
	if _, err := c.expect(http.MethodPost, "/v1/login", "", map[string]string{
		"email": ownerEmail, "password": "password123",
	}, http.StatusOK, &login); err != nil {
		return err
	}
	token := login.Token

	step("wrong password is rejected")
	if _, err := c.expect(http.MethodPost, "/v1/login", "", map[string]string{
		"email": ownerEmail, "password": "not-the-password",
	}, http.StatusUnauthorized, nil); err != nil {
		return err
	}

	step("create product")
	var created productEnvelope
	if _, err := c.expect(http.MethodPost, "/v1/products", token, map[string]interface{}{
		"name": "Lamp", "description": "Desk lamp", "price": 19.99,
	}, http.StatusCreated, &created); err != nil {
		return err
	}
	if created.Data.User != "Owner" {
		return fmt.Errorf("expected owner name %q, got %q", "Owner", created.Data.User)
	}
	productPath := "/v1/products/" + created.Data.ID

	step("list and show products")
	if _, err := c.expect(http.MethodGet, "/v1/products", token, nil, http.StatusOK, nil); err != nil {
		return err
	}
	if _, err := c.expect(http.MethodGet, productPath, token, nil, http.StatusOK, nil); err != nil {
		return err
	}

	step("partial update by owner")
	var updated productEnvelope
	if _, err := c.expect(http.MethodPatch, productPath, token, map[string]interface{}{
		"price": 25,
	}, http.StatusOK, &updated); err != nil {
		return err
	}
	if updated.Data.Price != 25 || updated.Data.Name != "Lamp" {
		return fmt.Errorf("unexpected product after update: %+v", updated.Data)
	}

	step("other users cannot delete")
	var other authResponse
	if _, err := c.expect(http.MethodPost, "/v1/register", "", map[string]string{
		"name": "Other", "email": fmt.Sprintf("other-%d@example.com", suffix), "password": "password123",
	}, http.StatusOK, &other); err != nil {
		return err
	}
	if _, err := c.expect(http.MethodDelete, productPath, other.Token, nil, http.StatusForbidden, nil); err != nil {
		return err
	}

	step("owner deletes")
	if _, err := c.expect(http.MethodDelete, productPath, token, nil, http.StatusNoContent, nil); err != nil {
		return err
	}
	if _, err := c.expect(http.MethodGet, productPath, token, nil, http.StatusNotFound, nil); err != nil {
		return err
	}

	step("logout revokes every token")
	if _, err := c.expect(http.MethodPost, "/v1/logout", token, nil, http.StatusOK, nil); err != nil {
		return err
	}
	for _, t := range []string{token, owner.Token} {
		if _, err := c.expect(http.MethodGet, "/v1/user", t, nil, http.StatusUnauthorized, nil); err != nil {
			return err
		}
	}

	return nil
}

func step(name string) {
	fmt.Printf("\n→ %s\n", name)
}

// expect performs a request, waiting out throttling, and checks the status code
func (c *client) expect(method, path, token string, body interface{}, want int, out interface{}) ([]byte, error) {
	for attempt := 0; attempt < 5; attempt++ {
		status, header, raw, err := c.do(method, path, token, body)
		if err != nil {
			return nil, err
		}

		if status == http.StatusTooManyRequests {
			wait, _ := strconv.Atoi(header.Get("Retry-After"))
			if wait < 1 {
				wait = 1
			}
			fmt.Printf("  throttled, retrying in %ds\n", wait)
			time.Sleep(time.Duration(wait) * time.Second)
			continue
		}

		if status != want {
			return raw, fmt.Errorf("%s %s: expected status %d, got %d: %s", method, path, want, status, raw)
		}
		if out != nil {
			if err := json.Unmarshal(raw, out); err != nil {
				return raw, fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
			}
		}
		fmt.Printf("  ✓ %s %s -> %d\n", method, path, status)
		return raw, nil
	}
	return nil, fmt.Errorf("%s %s: still throttled after retries", method, path)
}

func (c *client) do(method, path, token string, body interface{}) (int, http.Header, []byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, err
	}
	return resp.StatusCode, resp.Header, raw, nil
}
