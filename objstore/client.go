package objstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/atelier-moveis/atelier-backend/util/common"

	"github.com/goccy/go-json"
)

// Client talks to a bucket-style storage HTTP API. Objects live under
// /object/{bucket}/{key} and are served publicly from
// /object/public/{bucket}/{key}.
type Client struct {
	baseURL string
	bucket  string
	key     string
	http    *http.Client
}

func NewClient(baseURL, bucket, key string) *Client {
	return &Client{
		baseURL: baseURL,
		bucket:  bucket,
		key:     key,
		// Uploads of multi-megabyte images need more headroom than the
		// auth calls get.
		http: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) objectURL(key string) string {
	return fmt.Sprintf("%s/object/%s/%s", c.baseURL, c.bucket, key)
}

// PublicURL returns the public serving URL of the blob under key.
func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", c.baseURL, c.bucket, key)
}

func (c *Client) send(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.key)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var perr struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(body, &perr); err == nil {
			if perr.Message != "" {
				return nil, common.NewError(perr.Message)
			}
			if perr.Error != "" {
				return nil, common.NewError(perr.Error)
			}
		}
		return nil, common.NewErrorf("object store returned status %d", resp.StatusCode)
	}
	return body, nil
}

func (c *Client) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.objectURL(key), bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)

	if _, err := c.send(req); err != nil {
		return "", err
	}
	return c.PublicURL(key), nil
}

func (c *Client) Delete(ctx context.Context, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.objectURL(key), nil)
	if err != nil {
		return err
	}
	_, err = c.send(req)
	return err
}

func (c *Client) List(ctx context.Context, prefix string) ([]Object, error) {
	payload, err := json.Marshal(map[string]string{"prefix": prefix})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/object/list/%s", c.baseURL, c.bucket)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.send(req)
	if err != nil {
		return nil, err
	}

	var entries []struct {
		Name      string    `json:"name"`
		UpdatedAt time.Time `json:"updated_at"`
		Metadata  struct {
			Size int64 `json:"size"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, err
	}

	objects := make([]Object, 0, len(entries))
	for _, e := range entries {
		objects = append(objects, Object{
			Key:       e.Name,
			Size:      e.Metadata.Size,
			UpdatedAt: e.UpdatedAt,
		})
	}
	return objects, nil
}
