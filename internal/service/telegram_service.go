package service

import (
	"fmt"
	"strings"

	"hotel/internal/domain"
	"hotel/internal/events"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// TelegramService posts reservation and catalog changes to the front desk chat.
type TelegramService struct {
	bot    domain.TelegramSender
	chatID int64
	logger *zerolog.Logger
}

func NewTelegramService(bot domain.TelegramSender, chatID int64, logger *zerolog.Logger) *TelegramService {
	return &TelegramService{
		bot:    bot,
		chatID: chatID,
		logger: logger,
	}
}

// Subscribe attaches the notifier to the event types staff care about.
func (s *TelegramService) Subscribe(bus *events.EventBus) {
	for _, eventType := range []string{
		events.EventReservationCreated,
		events.EventReservationStatusChanged,
		events.EventRoomCreated,
		events.EventRoomDeleted,
	} {
		bus.Subscribe(eventType, s.Handle)
	}
}

func (s *TelegramService) Handle(event *events.Event) error {
	text, err := formatEvent(event)
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	if _, err := s.SendMarkdown(text); err != nil {
		return fmt.Errorf("telegram notify %s: %w", event.Type, err)
	}
	s.logger.Debug().Str("event_id", event.ID).Str("event_type", event.Type).Msg("telegram notification sent")
	return nil
}

func (s *TelegramService) SendMessage(text string) (tgbotapi.Message, error) {
	return s.bot.Send(tgbotapi.NewMessage(s.chatID, text))
}

func (s *TelegramService) SendMarkdown(text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(s.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	return s.bot.Send(msg)
}

func formatEvent(event *events.Event) (string, error) {
	esc := func(s string) string { return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s) }

	switch event.Type {
	case events.EventReservationCreated, events.EventReservationStatusChanged:
		var p events.ReservationEventPayload
		if err := event.Decode(&p); err != nil {
			return "", err
		}
		var b strings.Builder
		if event.Type == events.EventReservationCreated {
			b.WriteString("*New reservation*\n")
		} else {
			fmt.Fprintf(&b, "*Reservation %s*\n", strings.ToLower(esc(p.Status)))
		}
		fmt.Fprintf(&b, "Guest: %s (%d)\n", esc(p.GuestName), p.Guests)
		if p.RoomNumber != "" {
			fmt.Fprintf(&b, "Room: %s\n", esc(p.RoomNumber))
		}
		fmt.Fprintf(&b, "Stay: %s - %s\n", p.CheckIn, p.CheckOut)
		fmt.Fprintf(&b, "Total: $%.2f\n", p.TotalPrice)
		if p.PreviousStatus != "" {
			fmt.Fprintf(&b, "Status: %s -> %s\n", esc(p.PreviousStatus), esc(p.Status))
		}
		fmt.Fprintf(&b, "ID: `%s`", p.ReservationID)
		return b.String(), nil

	case events.EventRoomCreated, events.EventRoomDeleted:
		var p events.RoomEventPayload
		if err := event.Decode(&p); err != nil {
			return "", err
		}
		verb := "added"
		if event.Type == events.EventRoomDeleted {
			verb = "removed"
		}
		return fmt.Sprintf("Room %s %s", esc(p.Number), verb), nil
	}
	return "", nil
}
