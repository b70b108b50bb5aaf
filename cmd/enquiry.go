package cmd

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"design-folio/common/constant"
	jetstreamCommon "design-folio/common/jetstream"
	"design-folio/inbound/event"
	emailOutbound "design-folio/outbound/email"
)

func runQueueEnquiryCmd(ctx context.Context) {
	cfg := newCfg("env")

	natsConn := newNats(cfg)
	defer natsConn.Close()

	js := newJs(natsConn)
	jetstreamCommon.CreateQueueStream(ctx, js)

	st, err := js.Stream(ctx, constant.QueueStreamName)
	if err != nil {
		log.Fatalln("failed to get stream", err)
	}

	outbound := &emailOutbound.EmailOutbound{Cfg: cfg}
	outbound.Init()

	enquiryEvent := event.EnquiryEvent{
		EmailOutbound:  outbound,
		NotifyTo:       cfg.GetString("email.notify_to"),
		PriceFormatter: message.NewPrinter(language.English),
		Timeout:        cfg.GetDuration("queue.enquiry.timeout"),
	}

	cons, err := st.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		Durable:       "consumer:enquiry",
		FilterSubject: constant.EnquiryWildcard,
		MaxDeliver:    cfg.GetInt("queue.enquiry.max_deliver"),
		AckWait:       cfg.GetDuration("queue.enquiry.ack_wait"),
	})
	if err != nil {
		log.Fatalln("failed to create consumer", err)
	}

	iter, err := cons.Messages()
	if err != nil {
		panic(err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
				msg, err := iter.Next()
				if err != nil && err != jetstream.ErrMsgIteratorClosed {
					slog.ErrorContext(ctx, "Error fetching message", slog.Any(constant.LogFieldErr, err))
					continue
				}

				if msg == nil {
					continue
				}

				var eventErr error
				switch msg.Subject() {
				case constant.SubjectEnquiryReceived:
					eventErr = enquiryEvent.ReceivedHandler(ctx, msg.Data())
				}

				if eventErr != nil {
					msg.NakWithDelay(1 * time.Second)
					continue
				}

				if err := msg.Ack(); err != nil {
					slog.ErrorContext(ctx, "Error acknowledging message",
						slog.Any(constant.LogFieldErr, err),
						slog.Any(constant.LogFieldPayload, string(msg.Data())),
						slog.String("subject", msg.Subject()),
					)
					continue
				}
			}
		}
	}()

	slog.InfoContext(ctx, "enquiry queue consumer started")

	<-ctx.Done()

	iter.Stop()

	slog.InfoContext(ctx, "enquiry queue consumer stopped")
}
