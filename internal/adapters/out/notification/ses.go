package notification

import (
	"context"
	"fmt"

	"fulfillment/internal/core/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailClient is the part of *sesv2.Client the gateway uses.
type EmailClient interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SESGateway e-mails customers about order status changes. Orders placed without a
// contact e-mail are skipped. Agents are not reachable by e-mail, so NotifyAgent is a no-op.
type SESGateway struct {
	client    EmailClient
	fromEmail string
}

// NewSESClient loads credentials from the environment for region.
func NewSESClient(ctx context.Context, region string) (*sesv2.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return sesv2.NewFromConfig(cfg), nil
}

func NewSESGateway(client EmailClient, fromEmail string) *SESGateway {
	return &SESGateway{client: client, fromEmail: fromEmail}
}

func (g *SESGateway) NotifyOrder(ctx context.Context, n ports.OrderNotification) error {
	if n.ContactEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("Your order %s is %s", n.OrderID, n.Status)
	body := fmt.Sprintf("%s\n\nOrder: %s\nStatus: %s\nUpdated: %s\n",
		n.Message, n.OrderID, n.Status, n.Timestamp.UTC().Format("2006-01-02 15:04 MST"))

	_, err := g.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(g.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{n.ContactEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(body),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	})
	return err
}

func (g *SESGateway) NotifyAgent(context.Context, ports.AgentNotification) error {
	return nil
}
