package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const defaultChatCompletionsURL = "https://api.openai.com/v1/chat/completions"

// OpenAI talks to any OpenAI-compatible chat completions endpoint. The
// endpoint, token and auth scheme come from the environment so corporate
// gateways with OAuth-style headers work without code changes.
type OpenAI struct {
	client *http.Client
}

// NewOpenAI returns a new OpenAI-compatible provider.
func NewOpenAI() *OpenAI {
	return &OpenAI{
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

// DescribePage sends the prompt plus the page image and returns the text
// completion.
func (o *OpenAI) DescribePage(ctx context.Context, config Config) (string, error) {
	token := apiToken()
	if token == "" {
		return "", fmt.Errorf("NMR_API_TOKEN or OPENAI_API_KEY environment variable not set")
	}

	url := os.Getenv("NMR_API_URL")
	if url == "" {
		url = defaultChatCompletionsURL
	}

	dataURL, err := readAsDataURL(config.ImagePath)
	if err != nil {
		return "", err
	}

	requestBody, err := json.Marshal(map[string]interface{}{
		"model": config.Model,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type": "text",
						"text": config.Prompt,
					},
					{
						"type": "image_url",
						"image_url": map[string]string{
							"url": dataURL,
						},
					},
				},
			},
		},
		"temperature": config.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	scheme := os.Getenv("NMR_AUTH_SCHEME")
	if scheme == "" {
		scheme = "Bearer"
	}
	req.Header.Set("Authorization", scheme+" "+token)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(body))
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from the model endpoint")
	}

	return response.Choices[0].Message.Content, nil
}
