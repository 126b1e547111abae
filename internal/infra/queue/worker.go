package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ReplyPayload is what the external reply collector publishes when a
// prospect answers an outreach email.
type ReplyPayload struct {
	LeadID  string `json:"lead_id"` // internal lead id
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
}

// ReplyIngestor stores an inbound reply as a received thread message.
type ReplyIngestor interface {
	IngestReply(ctx context.Context, payload ReplyPayload) error
}

type Worker struct {
	Channel  *amqp.Channel
	Ingestor ReplyIngestor
}

func NewWorker(ch *amqp.Channel, ingestor ReplyIngestor) *Worker {
	return &Worker{
		Channel:  ch,
		Ingestor: ingestor,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload ReplyPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("[WORKER] invalid reply JSON: %s", err)
				// Malformed message. Reject without requeue so it does not
				// clog the queue.
				d.Nack(false, false)
				continue
			}

			if err := w.Ingestor.IngestReply(context.Background(), payload); err != nil {
				log.Printf("[WORKER] failed to ingest reply for lead %s: %s", payload.LeadID, err)
				d.Nack(false, false)
			} else {
				log.Printf("[WORKER] stored reply for lead %s", payload.LeadID)
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Reply worker waiting on queue '%s'", queueName)
	<-forever
}
