package openrouter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/duosplit/receipt-split-service/internal/domain"
)

// parseExtractionResponse pulls the receipt JSON out of a chat
// completions response. Models sometimes wrap the JSON in markdown
// fences or prose, so the content is trimmed down to the outermost
// object before decoding. A receipt with malformed numeric strings is
// an error; amounts are never coerced to zero.
func parseExtractionResponse(respBody []byte) (domain.Receipt, error) {
	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &response); err != nil {
		return domain.Receipt{}, &Error{
			Op:  "parse_response_json",
			Err: fmt.Errorf("failed to unmarshal response: %w", err),
		}
	}
	if len(response.Choices) == 0 {
		return domain.Receipt{}, &Error{
			Op:  "check_response_choices",
			Err: fmt.Errorf("no choices in response"),
		}
	}

	content, err := extractJSONObject(response.Choices[0].Message.Content)
	if err != nil {
		return domain.Receipt{}, &Error{Op: "extract_json_object", Err: err}
	}

	receipt, err := domain.ParseReceipt([]byte(content))
	if err != nil {
		return domain.Receipt{}, &Error{Op: "parse_receipt", Err: err}
	}
	return receipt, nil
}

// extractJSONObject strips markdown code fences and surrounding prose,
// returning the outermost {...} block of the content.
func extractJSONObject(content string) (string, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	if start == -1 {
		return "", fmt.Errorf("no JSON object found in model response")
	}
	end := strings.LastIndex(content, "}")
	if end == -1 || end < start {
		return "", fmt.Errorf("invalid JSON object in model response")
	}
	return content[start : end+1], nil
}
