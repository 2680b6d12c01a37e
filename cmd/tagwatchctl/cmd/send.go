package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/tagwatch/tagwatch/internal/models"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a push event",
	Long:  "Send a single image-push event to the relay webhook",
	Example: `  tagwatchctl send --repository sample-app-repo --tag 20250101-1200-abc123
  tagwatchctl send --repository sample-app-repo --tag latest --relay-url http://relay:8096`,
	RunE: func(cmd *cobra.Command, args []string) error {
		repository, _ := cmd.Flags().GetString("repository")
		tag, _ := cmd.Flags().GetString("tag")
		relayURL, _ := cmd.Flags().GetString("relay-url")
		token, _ := cmd.Flags().GetString("token")

		event := models.PushEvent{
			Source:     "tagwatchctl",
			DetailType: "Image Push",
			Time:       time.Now().UTC().Format(time.RFC3339),
			Detail: models.EventDetail{
				Repository: repository,
				ImageTag:   tag,
			},
		}

		body, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal event: %w", err)
		}

		req, err := http.NewRequest(http.MethodPost, relayURL+"/api/v1/events", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		client := &http.Client{Timeout: 10 * time.Second}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("send event: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusAccepted {
			payload, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("relay returned status %d: %s", resp.StatusCode, payload)
		}

		var result struct {
			Status string             `json:"status"`
			Record models.ImageRecord `json:"record"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}

		output, _ := cmd.Flags().GetString("output")
		return printRecord(cmd.OutOrStdout(), &result.Record, output)
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringP("repository", "r", "", "repository name (defaults to \"unknown\" at the relay)")
	sendCmd.Flags().StringP("tag", "t", "", "image tag (defaults to \"unknown\" at the relay)")
	sendCmd.Flags().String("relay-url", "http://localhost:8096", "relay service URL")
	sendCmd.Flags().String("token", "", "webhook bearer token")
}
