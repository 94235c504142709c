package maxAPI

import (
	"context"
	"strconv"

	maxbot "github.com/max-messenger/max-bot-api-client-go"

	"campusAssistant/config"
	"campusAssistant/logger"
)

// Sender доставляет уведомления через мессенджер MAX.
// Единственная реализация исходящего порта планировщика.
type Sender struct {
	api    *maxbot.Api
	logger *logger.Logger
}

func NewSender(cfg *config.MaxConfig, log *logger.Logger, ctx context.Context) (*Sender, error) {
	api, err := maxbot.New(cfg.Token)
	if err != nil && err.Error() != "" {
		log.Errorf("failed to create max api: %v", err)
		return nil, err
	}

	if _, err := api.Bots.GetBot(ctx); err != nil && err.Error() != "" {
		log.Errorf("failed to get bot info: %v", err)
		return nil, err
	}

	return &Sender{api: api, logger: log}, nil
}

func (s *Sender) SendMessage(ctx context.Context, userID string, text string) error {
	maxUserID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return err
	}

	_, err = s.api.Messages.Send(ctx, maxbot.NewMessage().
		SetUser(maxUserID).
		SetText(text).
		SetFormat("markdown"))
	if err != nil && err.Error() != "" {
		return err
	}
	return nil
}
