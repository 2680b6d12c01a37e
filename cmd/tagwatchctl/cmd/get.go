package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tagwatch/tagwatch/internal/models"
	"github.com/tagwatch/tagwatch/internal/store"
)

var getCmd = &cobra.Command{
	Use:   "get <tag>",
	Short: "Read the stored record for an image tag",
	Long:  "Read the persisted push record for an image tag directly from the record store",
	Args:  cobra.ExactArgs(1),
	Example: `  tagwatchctl get 20250101-1200-abc123
  tagwatchctl get latest --redis-url redis://redis:6379/0 -o yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		redisURL, _ := cmd.Flags().GetString("redis-url")
		prefix, _ := cmd.Flags().GetString("key-prefix")

		s, err := store.NewRedisStore(redisURL, prefix)
		if err != nil {
			return fmt.Errorf("connect store: %w", err)
		}
		defer s.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		rec, err := s.Get(ctx, args[0])
		if err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				return fmt.Errorf("no record for tag %q", args[0])
			}
			return fmt.Errorf("read record: %w", err)
		}

		output, _ := cmd.Flags().GetString("output")
		return printRecord(cmd.OutOrStdout(), rec, output)
	},
}

func printRecord(w io.Writer, rec *models.ImageRecord, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(rec)
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().String("redis-url", "redis://localhost:6379/0", "record store Redis URL")
	getCmd.Flags().String("key-prefix", "tagwatch", "record store key prefix")
}
