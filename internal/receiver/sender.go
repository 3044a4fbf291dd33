package receiver

import (
	"fmt"
	"net"

	"github.com/danmuck/disctl/internal/observability"
	"github.com/danmuck/disctl/internal/protocol/pdu"
)

// Sender writes PDUs to one UDP destination, one PDU per datagram.
type Sender struct {
	conn net.Conn
}

func Dial(addr string) (*Sender, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("sender: dial %s: %w", addr, err)
	}
	return &Sender{conn: conn}, nil
}

// Send stamps and marshals p, then writes it as a single datagram.
func (s *Sender) Send(p *pdu.Pdu) error {
	b, err := pdu.Marshal(p)
	if err != nil {
		return err
	}
	if _, err := s.conn.Write(b); err != nil {
		return fmt.Errorf("sender: write %s: %w", p.Header.PduType, err)
	}
	observability.RecordEncoded(p.Header.PduType, len(b))
	return nil
}

func (s *Sender) Close() error {
	return s.conn.Close()
}
