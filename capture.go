package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/HugoJF/boxbox/internal/client"
	"github.com/HugoJF/boxbox/internal/helpers"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"os"
	"time"
)

var (
	captureServer  string
	captureToken   string
	captureBox     string
	captureImage   string
	captureTimeout time.Duration
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Create an item from a photo and let the model fill in its details",
	Long: `Create an item from a photo file. The item is stored right away with
placeholder text, then the photo is analyzed and the item updated.

Examples:
  boxbox capture --box 3f2a... --image drill.jpg
  boxbox capture --server https://boxes.example.com --token $TOKEN --box 3f2a... --image drill.jpg`,
	RunE: runCapture,
}

func init() {
	captureCmd.Flags().StringVar(&captureServer, "server", "http://localhost:3000", "BoxBox server URL")
	captureCmd.Flags().StringVar(&captureToken, "token", os.Getenv("BOXBOX_TOKEN"), "API bearer token")
	captureCmd.Flags().StringVar(&captureBox, "box", "", "box to put the item in")
	captureCmd.Flags().StringVar(&captureImage, "image", "", "photo file")
	captureCmd.Flags().DurationVar(&captureTimeout, "timeout", 2*time.Minute, "how long to wait for the analysis")
	_ = captureCmd.MarkFlagRequired("image")
	rootCmd.AddCommand(captureCmd)
}

func runCapture(command *cobra.Command, args []string) error {
	raw, err := os.ReadFile(captureImage)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	log := logrus.New()
	log.SetOutput(command.ErrOrStderr())

	cache, err := client.NewQueryCache(client.DefaultCacheSize)
	if err != nil {
		return err
	}
	store := client.NewStore(client.New(captureServer, client.WithToken(captureToken)), cache, client.NewTaskRegistry())
	flow := client.NewCaptureFlow(store, client.LogNotifier{Log: log})

	ctx, cancel := context.WithTimeout(command.Context(), captureTimeout)
	defer cancel()

	item, err := flow.Capture(ctx, captureBox, helpers.ToDataURL(raw))
	if err != nil {
		return err
	}
	log.WithField("item", item.ID).Info("Item created, analyzing photo")

	if err := store.Tasks().Wait(ctx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("analysis still running after %s, item %s keeps its placeholder text", captureTimeout, item.ID)
		}
		return err
	}

	final, err := store.Client().GetItem(ctx, item.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(command.OutOrStdout(), "%s\t%s\tx%d\t%s\n", final.ID, final.Name, final.Quantity, final.Description)
	return nil
}
