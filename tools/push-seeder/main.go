// push-seeder posts fake image-push events to a tagwatch relay webhook.
// Useful for exercising the relay pipeline end to end in development.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

var (
	relayURL = flag.String("relay-url", "http://localhost:8096", "relay webhook URL")
	token    = flag.String("token", "", "webhook bearer token (optional)")
	count    = flag.Int("count", 20, "number of events to send")
	interval = flag.Duration("interval", 250*time.Millisecond, "interval between events")
	missing  = flag.Float64("missing-rate", 0.1, "fraction of events with a missing repository or tag")
)

type eventDetail struct {
	Repository string `json:"repository,omitempty"`
	ImageTag   string `json:"imageTag,omitempty"`
}

type pushEvent struct {
	Source     string      `json:"source"`
	DetailType string      `json:"detail-type"`
	Time       string      `json:"time"`
	Detail     eventDetail `json:"detail"`
}

func main() {
	flag.Parse()

	gofakeit.Seed(time.Now().UnixNano())

	log.Printf("Seeding %d push events to %s (interval: %v)", *count, *relayURL, *interval)

	client := &http.Client{Timeout: 10 * time.Second}
	successCount := 0
	failCount := 0

	for i := 0; i < *count; i++ {
		event := fakeEvent()
		if err := send(client, event); err != nil {
			failCount++
			log.Printf("send failed: %v", err)
		} else {
			successCount++
		}
		time.Sleep(*interval)
	}

	log.Printf("Done: %d sent, %d failed", successCount, failCount)
}

func fakeEvent() pushEvent {
	detail := eventDetail{
		Repository: fmt.Sprintf("%s-%s", gofakeit.Word(), gofakeit.Word()),
		ImageTag:   fmt.Sprintf("%s-%s", time.Now().Format("20060102-1504"), gofakeit.LetterN(7)),
	}

	// Exercise the relay's "unknown" defaulting path.
	if gofakeit.Float64Range(0, 1) < *missing {
		if gofakeit.Bool() {
			detail.Repository = ""
		} else {
			detail.ImageTag = ""
		}
	}

	return pushEvent{
		Source:     "push-seeder",
		DetailType: "Image Push",
		Time:       time.Now().UTC().Format(time.RFC3339),
		Detail:     detail,
	}
}

func send(client *http.Client, event pushEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, *relayURL+"/api/v1/events", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if *token != "" {
		req.Header.Set("Authorization", "Bearer "+*token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("relay returned status %d", resp.StatusCode)
	}
	return nil
}
