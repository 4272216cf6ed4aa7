package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/benela/benela_backend/config"
	"github.com/spf13/cobra"
)

func newTopicCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topic",
		Short: "Create the notification Pub/Sub topic if missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			topic := config.NotificationTopic()
			if topic == "" {
				return errors.New("NOTIFICATION_TOPIC is not set")
			}
			ctx := context.Background()
			client, err := config.GetClient(ctx)
			if err != nil {
				return err
			}
			defer client.Close()
			if _, err := config.CreateTopicIfNotExists(ctx, client, topic); err != nil {
				return err
			}
			fmt.Printf("Topic %s ready.\n", topic)
			return nil
		},
	}
}
