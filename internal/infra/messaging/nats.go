package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/mverdi/insurance-crm/internal/config"
	"github.com/mverdi/insurance-crm/internal/domain/entity"
)

// NATSClient publishes customer change events to a JetStream stream. A nil
// client (no URL configured) is valid and publishes nothing.
type NATSClient struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	cfg  config.NATS
}

func NewNATS(ctx context.Context, cfg config.NATS) (*NATSClient, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	if cfg.Stream == "" || cfg.ChangeSubject == "" {
		return nil, errors.New("nats: stream and change_subject are required")
	}

	conn, err := nats.Connect(cfg.URL, nats.Name("insurance-crm"))
	if err != nil {
		return nil, err
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ensureStream(ctx, js, cfg); err != nil {
		conn.Close()
		return nil, err
	}

	return &NATSClient{conn: conn, js: js, cfg: cfg}, nil
}

func (c *NATSClient) Close() {
	if c == nil || c.conn == nil {
		return
	}
	c.conn.Close()
}

// PublishChangeEvent forwards one change-capture row. The row id doubles as
// the JetStream message id, so redelivery after a crashed ack deduplicates.
func (c *NATSClient) PublishChangeEvent(ctx context.Context, event entity.ChangeEvent) error {
	if c == nil {
		return nil
	}
	if c.js == nil {
		return errors.New("nats: jetstream not initialized")
	}

	payload := struct {
		RowID      int64     `json:"row_id"`
		CustomerID int64     `json:"customer_id"`
		FirstName  string    `json:"first_name"`
		LastName   string    `json:"last_name"`
		Action     string    `json:"action"`
		IsUpdate   bool      `json:"is_update"`
		RecordedAt time.Time `json:"recorded_at"`
	}{
		RowID:      event.RowID,
		CustomerID: event.CustomerID,
		FirstName:  event.FirstName,
		LastName:   event.LastName,
		Action:     event.Action,
		IsUpdate:   event.IsUpdate,
		RecordedAt: event.RecordedAt,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := nats.NewMsg(c.cfg.ChangeSubject)
	msg.Data = data
	msg.Header.Set(nats.MsgIdHdr, fmt.Sprintf("change-%d", event.RowID))
	_, err = c.js.PublishMsg(msg, nats.Context(ctx))
	return err
}

func ensureStream(ctx context.Context, js nats.JetStreamContext, cfg config.NATS) error {
	_, err := js.StreamInfo(cfg.Stream, nats.Context(ctx))
	if err == nil {
		return nil
	}
	if errors.Is(err, nats.ErrStreamNotFound) {
		_, err = js.AddStream(&nats.StreamConfig{
			Name:      cfg.Stream,
			Subjects:  []string{cfg.ChangeSubject},
			Storage:   nats.FileStorage,
			Retention: nats.LimitsPolicy,
		}, nats.Context(ctx))
		return err
	}
	return err
}
