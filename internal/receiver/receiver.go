// Package receiver reads DIS datagrams from UDP and hands decoded PDUs to a
// handler. It also owns the matching UDP sender.
package receiver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/danmuck/disctl/internal/capture"
	"github.com/danmuck/disctl/internal/logging"
	"github.com/danmuck/disctl/internal/observability"
	"github.com/danmuck/disctl/internal/protocol/pdu"
	"github.com/danmuck/disctl/internal/protocol/wire"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"
)

var ErrInvalidReadBuffer = errors.New("receiver: invalid read buffer")

type Config struct {
	Listen string
	// Exercise drops PDUs from other exercises; 0 accepts all.
	Exercise   uint8
	ReadBuffer int
	Limits     wire.Limits
}

// Delivery is one decoded PDU with its datagram context.
type Delivery struct {
	// CaptureID is set when the datagram was captured.
	CaptureID ksuid.KSUID
	Source    string
	Received  time.Time
	Pdu       *pdu.Pdu
}

// Handler runs on the read loop goroutine.
type Handler func(Delivery)

// Appender persists raw datagrams.
type Appender interface {
	Append(capture.Entry) (ksuid.KSUID, error)
}

type Stats struct {
	Datagrams uint64
	Pdus      uint64
	Filtered  uint64
	Dropped   uint64
}

type Receiver struct {
	cfg      Config
	decoder  *pdu.Decoder
	handler  Handler
	capture  Appender
	registry *pdu.Registry
	log      zerolog.Logger

	datagrams atomic.Uint64
	pdus      atomic.Uint64
	filtered  atomic.Uint64
	dropped   atomic.Uint64
}

type Option func(*Receiver)

func WithCapture(a Appender) Option {
	return func(r *Receiver) { r.capture = a }
}

func WithRegistry(reg *pdu.Registry) Option {
	return func(r *Receiver) { r.registry = reg }
}

func New(cfg Config, handler Handler, opts ...Option) (*Receiver, error) {
	if cfg.ReadBuffer < pdu.HeaderSize || cfg.ReadBuffer > 65535 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidReadBuffer, cfg.ReadBuffer)
	}
	if handler == nil {
		handler = func(Delivery) {}
	}
	r := &Receiver{cfg: cfg, handler: handler, log: logging.Component("receiver")}
	for _, opt := range opts {
		opt(r)
	}
	r.decoder = pdu.NewDecoder(r.registry, cfg.Limits)
	return r, nil
}

// Listen binds cfg.Listen and serves until ctx is cancelled.
func (r *Receiver) Listen(ctx context.Context) error {
	conn, err := net.ListenPacket("udp", r.cfg.Listen)
	if err != nil {
		return fmt.Errorf("receiver: listen %s: %w", r.cfg.Listen, err)
	}
	return r.Serve(ctx, conn)
}

// Serve reads from conn until ctx is cancelled or a read fails. It closes
// conn before returning. Cancellation is not an error.
func (r *Receiver) Serve(ctx context.Context, conn net.PacketConn) error {
	r.log.Info().Str("addr", conn.LocalAddr().String()).Uint8("exercise", r.cfg.Exercise).Msg("receiver listening")

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		_ = conn.Close()
	}()

	buf := make([]byte, r.cfg.ReadBuffer)
	for {
		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil {
				r.log.Info().Msg("receiver stopped")
				return nil
			}
			return fmt.Errorf("receiver: read: %w", err)
		}
		source := ""
		if addr != nil {
			source = addr.String()
		}
		r.Handle(source, buf[:n], time.Now())
	}
}

// Handle processes one datagram. The datagram is copied before it is
// retained by the capture store or any decoded PDU.
func (r *Receiver) Handle(source string, datagram []byte, at time.Time) {
	r.datagrams.Add(1)
	observability.RecordDatagram(len(datagram))

	var id ksuid.KSUID
	if r.capture != nil {
		raw := append([]byte(nil), datagram...)
		captured, err := r.capture.Append(capture.Entry{Received: at, Source: source, Datagram: raw})
		if err != nil {
			r.log.Warn().Err(err).Str("source", source).Msg("capture append failed")
		} else {
			id = captured
		}
	}

	pdus, err := r.decoder.DecodeStream(datagram)
	if err != nil {
		r.dropped.Add(1)
		observability.RecordDecodeError(err)
		r.log.Debug().Err(err).Str("source", source).Int("bytes", len(datagram)).Int("decoded", len(pdus)).Msg("datagram dropped")
	}
	for _, p := range pdus {
		if r.cfg.Exercise != 0 && p.Header.ExerciseID != r.cfg.Exercise {
			r.filtered.Add(1)
			continue
		}
		r.pdus.Add(1)
		observability.RecordDecoded(p.Header)
		r.handler(Delivery{CaptureID: id, Source: source, Received: at, Pdu: p})
	}
}

func (r *Receiver) Stats() Stats {
	return Stats{
		Datagrams: r.datagrams.Load(),
		Pdus:      r.pdus.Load(),
		Filtered:  r.filtered.Load(),
		Dropped:   r.dropped.Load(),
	}
}
