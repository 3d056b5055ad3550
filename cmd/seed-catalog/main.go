// Command seed-catalog loads the demo catalog into a running instance
// over HTTP, optionally padded with generated suppliers for larger
// staging datasets.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/planora/planora/internal/catalogseed"
	"github.com/planora/planora/internal/domain/model"
)

const (
	defaultTimeout = 10 * time.Second
	defaultExtra   = 0
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		extra   = flag.Int("extra", defaultExtra, "Number of generated suppliers beyond the demo set")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	ctx := context.Background()
	client := &http.Client{Timeout: *timeout}

	if err := run(ctx, client, *baseURL, *extra); err != nil {
		os.Stderr.WriteString("seed failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(ctx context.Context, client *http.Client, baseURL string, extra int) error {
	suppliers := catalogseed.Suppliers()
	suppliers = append(suppliers, catalogseed.Generate(extra)...)

	for _, sup := range suppliers {
		if err := post(ctx, client, baseURL+"/suppliers", supplierPayload(sup)); err != nil {
			return fmt.Errorf("supplier %q: %w", sup.Name, err)
		}
	}

	for _, e := range catalogseed.Events() {
		if err := post(ctx, client, baseURL+"/events", eventPayload(e)); err != nil {
			return fmt.Errorf("event %q: %w", e.Name, err)
		}
	}

	fmt.Printf("seeded %d suppliers and %d events into %s\n",
		len(suppliers), len(catalogseed.Events()), baseURL)
	return nil
}

func post(ctx context.Context, client *http.Client, url string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}

// supplierPayload shapes a supplier the way the create endpoint expects.
func supplierPayload(s *model.Supplier) map[string]any {
	return map[string]any{
		"name":         s.Name,
		"category":     s.Category,
		"description":  s.Description,
		"rating":       s.Rating,
		"reviews":      s.Reviews,
		"location":     s.Location,
		"price":        s.Price,
		"availability": s.Availability,
		"tags":         s.Tags,
		"services":     s.Services,
		"email":        s.Contact.Email,
		"phone":        s.Contact.Phone,
		"website":      s.Contact.Website,
	}
}

func eventPayload(e *model.Event) map[string]any {
	return map[string]any{
		"name":        e.Name,
		"date":        e.Date,
		"time":        e.Time,
		"location":    e.Location,
		"budget":      e.Budget,
		"attendees":   e.Attendees,
		"status":      string(e.Status),
		"description": e.Description,
		"type":        e.Type,
		"progress":    e.Progress,
	}
}
