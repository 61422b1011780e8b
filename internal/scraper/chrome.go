package scraper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Muditha98/LaptopInsights/config"
	"github.com/Muditha98/LaptopInsights/logger"
)

// Renderer fetches product pages through an external headless Chrome
// service. Storefront pages build their price blocks client-side, so a
// plain GET often returns a skeleton document without prices.
type Renderer struct {
	addr   string
	cfg    config.ScrapeConfig
	client *http.Client
}

// NewRenderer creates a renderer against a Chrome service address
func NewRenderer(addr string, cfg config.ScrapeConfig) *Renderer {
	// The HTTP timeout bounds the whole render round trip: navigation
	// timeout plus settle delay plus overhead.
	clientTimeout := cfg.Timeout + cfg.SettleDelay + 10*time.Second

	renderer := &Renderer{
		addr: addr,
		cfg:  cfg,
		client: &http.Client{
			Timeout: clientTimeout,
		},
	}

	// Check the Chrome service connection on initialization
	checkClient := &http.Client{Timeout: 5 * time.Second}
	resp, err := checkClient.Get(addr)
	if err != nil {
		logger.Warn("Chrome service connection check failed: %v (addr: %s)", err, addr)
	} else {
		logger.Info("Chrome service reachable at %s, status: %d", addr, resp.StatusCode)
		resp.Body.Close()
	}

	return renderer
}

// renderScript drives the page load inside the Chrome service. The
// fixed settle wait after navigation lets client-side price blocks
// finish rendering before the content snapshot.
const renderScript = `module.exports = async ({ page, context }) => {
	await page.setViewport({ width: 1920, height: 1080 });
	await page.setUserAgent(context.userAgent);

	await page.goto(context.url, { waitUntil: context.waitStrategy, timeout: context.timeoutMs });
	await page.waitForTimeout(context.settleMs);
	return await page.content();
}`

// FetchRendered renders url and returns the resulting HTML. Any
// failure here means the page could not be loaded at all and is fatal
// for this product's scrape.
func (r *Renderer) FetchRendered(url string) (io.Reader, error) {
	waitStrategy := r.cfg.WaitStrategy
	// Puppeteer names the idle strategy differently
	if waitStrategy == "networkidle" {
		waitStrategy = "networkidle0"
	}

	payload := map[string]interface{}{
		"code": renderScript,
		"context": map[string]interface{}{
			"url":          url,
			"userAgent":    r.cfg.UserAgent,
			"waitStrategy": waitStrategy,
			"timeoutMs":    r.cfg.Timeout.Milliseconds(),
			"settleMs":     r.cfg.SettleDelay.Milliseconds(),
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal render payload: %w", err)
	}

	req, err := http.NewRequest("POST", r.addr+"/function", bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("chrome service returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read rendered content: %w", err)
	}

	content := string(bodyBytes)

	// Some Chrome services wrap the content in a JSON envelope
	if strings.HasPrefix(strings.TrimSpace(content), "{") {
		var result map[string]interface{}
		if json.Unmarshal(bodyBytes, &result) == nil {
			if data, ok := result["data"].(string); ok && data != "" {
				content = data
			} else if data, ok := result["result"].(string); ok && data != "" {
				content = data
			}
		}
	}

	if !strings.Contains(content, "<html") && !strings.Contains(content, "<body") {
		return nil, fmt.Errorf("chrome service returned no document for %s", url)
	}

	return strings.NewReader(content), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
