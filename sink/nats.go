package sink

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// NATS publishes each record's line on a subject.
type NATS struct {
	nc      *nats.Conn
	subject string
}

// ConnectNATS connects to url, retrying with backoff up to attempts times.
func ConnectNATS(ctx context.Context, url, subject string, attempts uint) (*NATS, error) {
	logger := zerolog.Ctx(ctx)
	nc, err := retry.DoWithData(
		func() (*nats.Conn, error) {
			return nats.Connect(url, nats.Name("wordcover"))
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn().Err(err).Uint("n", n).Msg("nats-connect-retry")
		}),
	)
	if err != nil {
		return nil, err
	}
	return &NATS{nc: nc, subject: subject}, nil
}

func (n *NATS) Write(r Record) error {
	return n.nc.Publish(n.subject, []byte(r.Line()))
}

func (n *NATS) Close() error {
	defer n.nc.Close()
	return n.nc.Flush()
}

// Abort drops anything still buffered and closes the connection.
func (n *NATS) Abort() error {
	n.nc.Close()
	return nil
}
