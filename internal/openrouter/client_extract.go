package openrouter

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/duosplit/receipt-split-service/internal/domain"
)

// systemPrompt pins the model to the compact receipt JSON shape. Any
// deviation is rejected during parsing, so the prompt insists on JSON
// only.
const systemPrompt = `You are a groceries receipt data extraction assistant. Extract every line item from the receipt image.

Respond with a valid JSON object of exactly this shape:
{
  "t": "123.45",
  "i": [
    { "l": "Item label as printed", "p": "12.34" }
  ]
}

Rules:
- "t" is the total amount of the receipt, without currency, always using a dot as decimal separator, e.g. "123.45".
- "l" is the label of one item, e.g. "Milk".
- "p" is the price of that item, without currency, always using a dot, e.g. "12.34".
- Keep the items in the order they appear on the receipt.
- Do not include any other text in your response, only the JSON.`

// ExtractFromImageURL asks the model to extract a receipt from an image
// reachable at url.
func (c *Client) ExtractFromImageURL(ctx context.Context, url string) (domain.Receipt, error) {
	return c.extract(ctx, url)
}

// ExtractFromImageData asks the model to extract a receipt from inline
// PNG image bytes, passed as a base64 data URL.
func (c *Client) ExtractFromImageData(ctx context.Context, pngData []byte) (domain.Receipt, error) {
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngData)
	return c.extract(ctx, dataURL)
}

func (c *Client) extract(ctx context.Context, imageURL string) (domain.Receipt, error) {
	if c.apiKey == "" {
		return domain.Receipt{}, &Error{
			Op:  "validate_configuration",
			Err: fmt.Errorf("OpenRouter API key is not configured, set OPENROUTER_API_KEY"),
		}
	}

	type imageRef struct {
		URL string `json:"url"`
	}
	type content struct {
		Type     string    `json:"type"`
		Text     string    `json:"text,omitempty"`
		ImageURL *imageRef `json:"image_url,omitempty"`
	}
	type message struct {
		Role    string    `json:"role"`
		Content []content `json:"content"`
	}

	payload := map[string]interface{}{
		"model": c.modelID,
		"messages": []message{
			{
				Role:    "system",
				Content: []content{{Type: "text", Text: systemPrompt}},
			},
			{
				Role: "user",
				Content: []content{
					{Type: "text", Text: "Extract the data in this groceries receipt"},
					{Type: "image_url", ImageURL: &imageRef{URL: imageURL}},
				},
			},
		},
	}

	requestData, err := json.Marshal(payload)
	if err != nil {
		return domain.Receipt{}, &Error{
			Op:  "marshal_request",
			Err: fmt.Errorf("failed to marshal request payload: %w", err),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(requestData))
	if err != nil {
		return domain.Receipt{}, &Error{
			Op:  "create_extract_request",
			Err: fmt.Errorf("failed to create request: %w", err),
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Receipt{}, &Error{
			Op:  "send_extract_request",
			Err: fmt.Errorf("failed to send request: %w", err),
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Receipt{}, &Error{
			Op:  "read_response",
			Err: fmt.Errorf("failed to read response body: %w", err),
		}
	}

	if resp.StatusCode != http.StatusOK {
		return domain.Receipt{}, &Error{
			Op:  "check_api_response",
			Err: fmt.Errorf("API error: %s - %s", resp.Status, string(respBody)),
		}
	}

	return parseExtractionResponse(respBody)
}
